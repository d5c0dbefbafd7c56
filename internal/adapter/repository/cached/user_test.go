package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"decorator-user-service/internal/adapter/cache"
	domain "decorator-user-service/internal/domain/user"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// MockRepository is a mock implementation of user.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var (
	aliceID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	ghostID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func alice() *domain.User {
	return &domain.User{ID: aliceID, Name: "Alice Smith", Email: "alice@example.com"}
}

func setupCachedRepo(t *testing.T) (*UserRepository, *MockRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() {
		_ = client.Close()
	})

	logger := zaptest.NewLogger(t)
	mockRepo := new(MockRepository)
	repo := NewUserRepository(mockRepo, cache.NewRedisUserCache(client, time.Minute, logger), logger)
	return repo, mockRepo, mr
}

func TestUserRepository_CacheMissThenHit(t *testing.T) {
	repo, mockRepo, mr := setupCachedRepo(t)
	ctx := context.Background()

	mockRepo.On("GetByID", mock.Anything, aliceID).Return(alice(), nil).Once()

	first, err := repo.GetByID(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, alice(), first)
	assert.True(t, mr.Exists(cache.Key(aliceID)))

	second, err := repo.GetByID(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, alice(), second)

	mockRepo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestUserRepository_AbsentIsNotCached(t *testing.T) {
	repo, mockRepo, mr := setupCachedRepo(t)
	ctx := context.Background()

	mockRepo.On("GetByID", mock.Anything, ghostID).Return(nil, nil)

	for i := 0; i < 2; i++ {
		u, err := repo.GetByID(ctx, ghostID)
		require.NoError(t, err)
		assert.Nil(t, u)
	}

	assert.False(t, mr.Exists(cache.Key(ghostID)))
	mockRepo.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestUserRepository_PropagatesError(t *testing.T) {
	repo, mockRepo, _ := setupCachedRepo(t)
	repoErr := errors.New("boom")

	mockRepo.On("GetByID", mock.Anything, aliceID).Return(nil, repoErr)

	u, err := repo.GetByID(context.Background(), aliceID)
	assert.ErrorIs(t, err, repoErr)
	assert.Nil(t, u)
}

func TestUserRepository_CacheDownFallsBack(t *testing.T) {
	repo, mockRepo, mr := setupCachedRepo(t)
	mr.Close()

	mockRepo.On("GetByID", mock.Anything, aliceID).Return(alice(), nil)

	u, err := repo.GetByID(context.Background(), aliceID)
	require.NoError(t, err)
	assert.Equal(t, alice(), u)
}

func TestUserRepository_CorruptEntryFallsBackAndRepairs(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() {
		_ = client.Close()
	})

	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)
	mockRepo := new(MockRepository)
	repo := NewUserRepository(mockRepo, cache.NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t)), log)

	require.NoError(t, mr.Set(cache.Key(aliceID), "not-json"))
	mockRepo.On("GetByID", mock.Anything, aliceID).Return(alice(), nil).Once()

	u, err := repo.GetByID(context.Background(), aliceID)
	require.NoError(t, err)
	assert.Equal(t, alice(), u)

	entries := logs.FilterMessage("cache get error, falling back to repository").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Internal", entries[0].ContextMap()["code"])
	cause, ok := entries[0].ContextMap()["error"].(string)
	require.True(t, ok)
	assert.Contains(t, cause, "corrupt cache entry")

	// The store's copy overwrote the bad entry.
	u, err = repo.GetByID(context.Background(), aliceID)
	require.NoError(t, err)
	assert.Equal(t, alice(), u)
	mockRepo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestUserRepository_CanceledCallerDoesNotCancelFlight(t *testing.T) {
	repo, mockRepo, mr := setupCachedRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	mockRepo.On("GetByID", live, aliceID).Return(alice(), nil).Once()

	u, err := repo.GetByID(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, alice(), u)
	assert.True(t, mr.Exists(cache.Key(aliceID)))
	mockRepo.AssertExpectations(t)
}

func TestUserRepository_NilCacheDelegates(t *testing.T) {
	mockRepo := new(MockRepository)
	repo := NewUserRepository(mockRepo, nil, zaptest.NewLogger(t))

	mockRepo.On("GetByID", mock.Anything, aliceID).Return(alice(), nil).Twice()

	for i := 0; i < 2; i++ {
		u, err := repo.GetByID(context.Background(), aliceID)
		require.NoError(t, err)
		assert.Equal(t, alice(), u)
	}
	mockRepo.AssertExpectations(t)
}
