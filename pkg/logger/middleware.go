package logger

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// RequestIDHeader is the HTTP header and gRPC metadata key carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// NewRequestID returns id unless it is empty, in which case a fresh UUID is generated.
func NewRequestID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

// RequestIDInterceptor is a gRPC interceptor that adds a request ID to the context
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		var incoming string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(RequestIDHeader); len(ids) > 0 {
				incoming = ids[0]
			}
		}

		return handler(WithRequestID(ctx, NewRequestID(incoming)), req)
	}
}
