package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yatube-dev/yatube/internal/config"
	"github.com/yatube-dev/yatube/internal/handler"
	"github.com/yatube-dev/yatube/internal/jwt"
	"github.com/yatube-dev/yatube/internal/logger"
	"github.com/yatube-dev/yatube/internal/markdown"
	"github.com/yatube-dev/yatube/internal/middleware"
	"github.com/yatube-dev/yatube/internal/middleware/ratelimiter"
	"github.com/yatube-dev/yatube/internal/pagecache"
	"github.com/yatube-dev/yatube/internal/service"
	"github.com/yatube-dev/yatube/internal/storage/fs"
	"github.com/yatube-dev/yatube/internal/storage/pg"
	"github.com/yatube-dev/yatube/internal/validation"
)

const (
	redisKeyPrefix       = "yatube"
	rateLimitExpiration  = time.Hour
	rateLimitCleanupTick = 10 * time.Minute
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Cache          pagecache.Cache
	AuthLimiter    *ratelimiter.UserRateLimiter
	WriteLimiter   *ratelimiter.UserRateLimiter

	redis  *redis.Client
	cancel context.CancelFunc
}

// SetupDependencies initializes all dependencies required for the application.
// Background workers stop when Close is called.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	ctx, cancel := context.WithCancel(context.Background())
	deps := &Dependencies{Config: cfg, cancel: cancel}

	store, err := pg.New(cfg.Private.Pg)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	deps.Storage = store

	media, err := fs.New(cfg.Public.MediaPath)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to initialize media storage: %w", err)
	}

	if err := deps.setupCache(ctx); err != nil {
		deps.Close()
		return nil, err
	}

	templates, err := handler.LoadTemplates(cfg.Public.TemplatesPath, markdown.New())
	if err != nil {
		deps.Close()
		return nil, err
	}

	jwtSvc := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	deps.AuthMiddleware = middleware.NewAuth(jwtSvc, cfg.Public.SecureCookies)

	rl := cfg.Public.RateLimit
	deps.AuthLimiter = ratelimiter.PerMinute(rl.AuthPerMinute, rl.AuthBurst, rateLimitExpiration)
	deps.WriteLimiter = ratelimiter.PerMinute(rl.WritesPerMinute, rl.WritesBurst, rateLimitExpiration)
	deps.AuthLimiter.StartCleanup(ctx, rateLimitCleanupTick)
	deps.WriteLimiter.StartCleanup(ctx, rateLimitCleanupTick)

	validator := validation.New(validation.Limits{
		PostTextMaxLen:        cfg.Public.PostTextMaxLen,
		CommentTextMaxLen:     cfg.Public.CommentTextMaxLen,
		PasswordMinLen:        cfg.Public.PasswordMinLen,
		MaxImageSize:          cfg.Public.MaxImageSize,
		AllowedImageMimeTypes: cfg.Public.AllowedImageMimeTypes,
	})

	deps.Handler = handler.New(handler.Services{
		Auth:    service.NewAuth(store, jwtSvc),
		Feed:    service.NewFeed(store, cfg.Public.PostsPerPage),
		Post:    service.NewPost(store, media),
		Comment: service.NewComment(store),
		Follow:  service.NewFollow(store),
		Group:   service.NewGroup(store),
		Health:  store,
	}, templates, validator, deps.Cache, deps.AuthMiddleware, cfg.Public)

	return deps, nil
}

func (d *Dependencies) setupCache(ctx context.Context) error {
	cacheCfg := d.Config.Public.Cache
	switch cacheCfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cacheCfg.RedisAddr, DB: cacheCfg.RedisDB})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return fmt.Errorf("failed to connect to redis at %s: %w", cacheCfg.RedisAddr, err)
		}
		d.redis = client
		d.Cache = pagecache.NewRedis(client, redisKeyPrefix)
	default:
		memory := pagecache.NewMemory()
		memory.StartBackgroundCleanup(ctx, cacheCfg.SweepInterval)
		d.Cache = memory
	}
	logger.Log.Info("page cache ready", "backend", cacheCfg.Backend)
	return nil
}

// Close stops background workers and releases connections.
func (d *Dependencies) Close() {
	d.cancel()
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			logger.Log.Warn("failed to close redis client", "error", err)
		}
	}
	if d.Storage != nil {
		if err := d.Storage.Cleanup(); err != nil {
			logger.Log.Warn("failed to close database", "error", err)
		}
	}
}
