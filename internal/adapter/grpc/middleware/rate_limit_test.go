package middleware

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

// mockHandler is a simple handler that returns a fixed response
func mockHandler(ctx context.Context, req any) (any, error) {
	return "success", nil
}

func newFrozenLimiter(t *testing.T, client *redis.Client, cfg RateLimiterConfig) (*RateLimiter, *time.Time) {
	rl := NewRateLimiter(client, cfg, zaptest.NewLogger(t))
	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func peerContext() context.Context {
	addr, _ := net.ResolveTCPAddr("tcp", "127.0.0.1:12345")
	return peer.NewContext(context.Background(), &peer.Peer{Addr: addr})
}

var info = &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

func TestRateLimiter_WithinLimit(t *testing.T) {
	client, _ := setupTestRedis(t)
	rl, _ := newFrozenLimiter(t, client, RateLimiterConfig{RequestsPerSecond: 10, BurstCapacity: 10, Enabled: true})
	interceptor := rl.UnaryInterceptor()

	for i := 0; i < 5; i++ {
		resp, err := interceptor(peerContext(), nil, info, mockHandler)
		require.NoError(t, err)
		assert.Equal(t, "success", resp)
	}
}

func TestRateLimiter_ExceedLimit(t *testing.T) {
	client, _ := setupTestRedis(t)
	rl, _ := newFrozenLimiter(t, client, RateLimiterConfig{RequestsPerSecond: 5, BurstCapacity: 3, Enabled: true})
	interceptor := rl.UnaryInterceptor()

	for i := 0; i < 3; i++ {
		_, err := interceptor(peerContext(), nil, info, mockHandler)
		require.NoError(t, err)
	}

	resp, err := interceptor(peerContext(), nil, info, mockHandler)
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestRateLimiter_Refill(t *testing.T) {
	client, _ := setupTestRedis(t)
	rl, now := newFrozenLimiter(t, client, RateLimiterConfig{RequestsPerSecond: 1, BurstCapacity: 1, Enabled: true})

	assert.True(t, rl.Allow(context.Background(), "k"))
	assert.False(t, rl.Allow(context.Background(), "k"))

	*now = now.Add(time.Second)
	assert.True(t, rl.Allow(context.Background(), "k"))
}

func TestRateLimiter_SlowRefillOutlivesIdleKey(t *testing.T) {
	client, mr := setupTestRedis(t)
	rl, now := newFrozenLimiter(t, client, RateLimiterConfig{RequestsPerSecond: 0.01, BurstCapacity: 1, Enabled: true})
	ctx := context.Background()

	assert.True(t, rl.Allow(ctx, "slow"))
	assert.False(t, rl.Allow(ctx, "slow"))
	assert.Equal(t, 101*time.Second, mr.TTL("slow"))

	// 0.61 tokens after 61s: the bucket must still be there and still empty.
	*now = now.Add(61 * time.Second)
	mr.FastForward(61 * time.Second)
	require.True(t, mr.Exists("slow"))
	assert.False(t, rl.Allow(ctx, "slow"))

	*now = now.Add(40 * time.Second)
	mr.FastForward(40 * time.Second)
	assert.True(t, rl.Allow(ctx, "slow"))
}

func TestRateLimiter_BucketTTL(t *testing.T) {
	tests := []struct {
		name string
		cfg  RateLimiterConfig
		want int64
	}{
		{name: "fast refill", cfg: RateLimiterConfig{RequestsPerSecond: 10, BurstCapacity: 20}, want: 3},
		{name: "sub-second refill", cfg: RateLimiterConfig{RequestsPerSecond: 100, BurstCapacity: 1}, want: 2},
		{name: "slow refill", cfg: RateLimiterConfig{RequestsPerSecond: 0.5, BurstCapacity: 100}, want: 201},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(nil, tt.cfg, zaptest.NewLogger(t))
			assert.Equal(t, tt.want, rl.bucketTTL())
		})
	}
}

func TestRateLimiter_SeparateClients(t *testing.T) {
	client, _ := setupTestRedis(t)
	rl, _ := newFrozenLimiter(t, client, RateLimiterConfig{RequestsPerSecond: 1, BurstCapacity: 1, Enabled: true})
	interceptor := rl.UnaryInterceptor()

	first := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-forwarded-for", "10.0.0.1"))
	second := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-real-ip", "10.0.0.2"))

	_, err := interceptor(first, nil, info, mockHandler)
	require.NoError(t, err)
	_, err = interceptor(second, nil, info, mockHandler)
	require.NoError(t, err)

	_, err = interceptor(first, nil, info, mockHandler)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestRateLimiter_Disabled(t *testing.T) {
	client, _ := setupTestRedis(t)
	rl, _ := newFrozenLimiter(t, client, RateLimiterConfig{RequestsPerSecond: 1, BurstCapacity: 1, Enabled: false})

	for i := 0; i < 10; i++ {
		assert.True(t, rl.Allow(context.Background(), "k"))
	}
}

func TestRateLimiter_NilLimiterAllows(t *testing.T) {
	var rl *RateLimiter
	assert.True(t, rl.Allow(context.Background(), "k"))
}

func TestRateLimiter_RedisDownFailsOpen(t *testing.T) {
	client, mr := setupTestRedis(t)
	rl, _ := newFrozenLimiter(t, client, RateLimiterConfig{RequestsPerSecond: 1, BurstCapacity: 1, Enabled: true})
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(context.Background(), "k"))
	}
}
