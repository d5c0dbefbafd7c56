package user

import (
	"context"

	domain "decorator-user-service/internal/domain/user"

	"github.com/google/uuid"
)

// Usecase defines the interface for user business logic operations.
// A nil user with a nil error means the user does not exist.
type Usecase interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (e.g., in-memory, cached) to be used interchangeably.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) // Retrieve user by ID, nil if absent
}
