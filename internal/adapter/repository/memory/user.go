package memory

import (
	"context"

	domain "decorator-user-service/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserRepository implements user.Repository over a Store.
type UserRepository struct {
	store *Store
	log   *zap.Logger
}

// NewUserRepository creates a new repository reading from store.
func NewUserRepository(store *Store, log *zap.Logger) *UserRepository {
	return &UserRepository{store: store, log: log}
}

// GetByID scans the store for a user with the given ID.
// It returns nil without an error when no user matches.
func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}

	r.log.Debug("user not found in store", zap.String("id", id.String()))
	return nil, nil
}
