package user

import (
	"context"

	domain "decorator-user-service/internal/domain/user"

	"github.com/google/uuid"
)

// Service is the base Usecase implementation.
// It delegates every lookup to the repository without adding behavior.
type Service struct {
	repo Repository
}

// New creates a new Service backed by the provided repository.
func New(r Repository) *Service {
	return &Service{repo: r}
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}
