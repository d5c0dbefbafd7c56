package cached

import (
	"context"

	"decorator-user-service/internal/adapter/cache"
	domain "decorator-user-service/internal/domain/user"
	"decorator-user-service/internal/usecase/user"
	pkgerrors "decorator-user-service/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// UserRepository implements user.Repository with caching support.
// It wraps another repository and a cache implementation.
// Only found users are cached; absence always reaches the wrapped repository.
type UserRepository struct {
	next  user.Repository
	cache cache.UserCache
	log   *zap.Logger
	group singleflight.Group
}

// NewUserRepository creates a new instance of UserRepository.
// If c is nil, caching is disabled and every call is delegated.
func NewUserRepository(next user.Repository, c cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		next:  next,
		cache: c,
		log:   log,
	}
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if r.cache == nil {
		return r.next.GetByID(ctx, id)
	}

	cachedUser, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to repository",
			zap.String("id", id.String()),
			zap.Stringer("code", pkgerrors.Code(err)),
			zap.Error(err),
		)
	} else if cachedUser != nil {
		r.log.Debug("user retrieved from cache", zap.String("id", id.String()))
		return cachedUser, nil
	}

	// Cache miss - use single-flight to prevent stampede.
	// The flight is shared, so one caller going away must not fail the others.
	flightCtx := context.WithoutCancel(ctx)
	result, err, _ := r.group.Do(cache.Key(id), func() (any, error) {
		u, err := r.next.GetByID(flightCtx, id)
		if err != nil || u == nil {
			return u, err
		}

		if err := r.cache.Set(flightCtx, u); err != nil {
			r.log.Warn("failed to cache user", zap.String("id", id.String()), zap.Error(err))
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}

	u, _ := result.(*domain.User)
	if u == nil {
		return nil, nil
	}

	// Callers sharing a flight must not share the pointer.
	out := *u
	return &out, nil
}
