package di

import (
	"context"
	"fmt"
	"time"

	"user-admin-service/cmd/api/infrastructure"
	"user-admin-service/internal/adapter/cache"
	"user-admin-service/internal/adapter/db/postgres"
	ginhandler "user-admin-service/internal/adapter/gin/handler"
	"user-admin-service/internal/adapter/gin/middleware"
	"user-admin-service/internal/adapter/repository/cached"
	"user-admin-service/internal/config"
	"user-admin-service/internal/controller"
	"user-admin-service/internal/directory"
	"user-admin-service/internal/notifier"
	"user-admin-service/internal/usecase/user"
	redisclient "user-admin-service/pkg/redis"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	RedisClient   *redisclient.Client
	UserUC        user.Usecase
	Directory     directory.UserDirectory
	Notifications *notifier.Memory
	Controller    *controller.UserListController
	RateLimiter   *middleware.RateLimiter
	UserHandler   *ginhandler.UserHandler
	ScreenHandler *ginhandler.ScreenHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	userCache := cache.NewRedisUserCache(
		rdb.Client,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		l,
	)

	dbRepo := postgres.NewUserRepoPG(db, l)
	repo := cached.NewCachedUserRepository(dbRepo, userCache, l)

	userUC := user.New(repo, userCache, l)

	// Screen wiring: the controller drives the in-process directory and
	// mirrors its toasts to in-memory subscribers and the Redis channel.
	dir := directory.NewService(userUC, l)
	memory := notifier.NewMemory(l)
	channel := notifier.Fanout(
		memory,
		notifier.NewRedis(rdb.Client, cfg.Redis.NotifyChannel, l),
	)

	ctrl, err := controller.New(ctx, dir, l,
		controller.WithNotifyDelay(time.Duration(cfg.Screen.NotifyDelayMs)*time.Millisecond),
		controller.WithChannel(channel),
	)
	if err != nil {
		// The screen renders empty until the next refresh succeeds.
		l.Warn("initial user list refresh failed", zap.Error(err))
	}

	rateLimiter := middleware.NewRateLimiter(
		rdb.Client,
		middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		},
		l,
	)

	return &Container{
		Config:        cfg,
		Logger:        l,
		DB:            db,
		RedisClient:   rdb,
		UserUC:        userUC,
		Directory:     dir,
		Notifications: memory,
		Controller:    ctrl,
		RateLimiter:   rateLimiter,
		UserHandler:   ginhandler.NewUserHandler(userUC, l),
		ScreenHandler: ginhandler.NewScreenHandler(ctrl, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.Controller != nil {
		c.Controller.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
