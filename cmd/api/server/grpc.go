package server

import (
	"decorator-user-service/internal/adapter/grpc/middleware"
	"decorator-user-service/pkg/logger"

	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// UserServiceName is the health check service name reported for user lookups.
const UserServiceName = "user.UserService"

// SetupGRPC creates the gRPC server exposing the standard health service.
func SetupGRPC(rateLimiter *middleware.RateLimiter) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
			rateLimiter.UnaryInterceptor(),
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus(UserServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, hs)

	return grpcServer, hs
}
