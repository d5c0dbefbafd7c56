package user

import (
	"context"

	domain "decorator-user-service/internal/domain/user"
	"decorator-user-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoggingService decorates a Usecase with structured logging around each lookup.
// Results and errors from the wrapped Usecase are returned untouched.
type LoggingService struct {
	next Usecase
	log  *zap.Logger
}

// NewLoggingService wraps next with logging.
func NewLoggingService(next Usecase, log *zap.Logger) *LoggingService {
	return &LoggingService{next: next, log: log}
}

// GetUser logs the request, delegates to the wrapped Usecase and logs the outcome.
func (s *LoggingService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	l := logger.WithContext(ctx, s.log)

	l.Info("fetching user", zap.String("id", id.String()))

	u, err := s.next.GetUser(ctx, id)
	switch {
	case err != nil:
		l.Error("failed to fetch user", zap.String("id", id.String()), zap.Error(err))
	case u != nil:
		l.Info("successfully fetched user", zap.String("name", u.Name), zap.String("email", u.Email))
	default:
		l.Warn("user was not found", zap.String("id", id.String()))
	}

	return u, err
}
