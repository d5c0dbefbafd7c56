package di

import (
	"context"
	"fmt"
	"time"

	"decorator-user-service/cmd/api/infrastructure"
	"decorator-user-service/internal/adapter/cache"
	ginhandler "decorator-user-service/internal/adapter/gin/handler"
	ginrouter "decorator-user-service/internal/adapter/gin/router"
	"decorator-user-service/internal/adapter/grpc/middleware"
	"decorator-user-service/internal/adapter/repository/cached"
	"decorator-user-service/internal/adapter/repository/memory"
	"decorator-user-service/internal/config"
	"decorator-user-service/internal/usecase/user"
	redisclient "decorator-user-service/pkg/redis"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	RedisClient *redisclient.Client
	UserUC      user.Usecase
	RateLimiter *middleware.RateLimiter
	GinHandler  *ginhandler.UserHandler
	Routes      []ginrouter.RegisterFunc
}

// NewContainer creates and wires all application dependencies.
// This is the only place concrete implementations are chosen.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Repository: seeded in-memory store, optionally behind the cache
	var repo user.Repository = memory.NewUserRepository(memory.NewSeedStore(), l)
	if rdb != nil {
		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewUserRepository(repo, userCache, l)
	}

	// Use case: base service decorated with logging
	var userUC user.Usecase = user.New(repo)
	userUC = user.NewLoggingService(userUC, l)

	var rateLimiter *middleware.RateLimiter
	if rdb != nil {
		rateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	ginHandler := ginhandler.NewUserHandler(userUC, l)

	routes := []ginrouter.RegisterFunc{
		ginHandler.RegisterRoutes,
	}
	if cfg.App.IsDevelopment() {
		routes = append(routes, ginhandler.RegisterOpenAPIRoutes)
	}

	return &Container{
		Config:      cfg,
		Logger:      l,
		RedisClient: rdb,
		UserUC:      userUC,
		RateLimiter: rateLimiter,
		GinHandler:  ginHandler,
		Routes:      routes,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}
