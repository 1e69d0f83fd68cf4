// Package app wires configuration, storage, services and transport into the
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres/audit"
	briefrepo "github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres/brief"
	commentrepo "github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres/comment"
	profilerepo "github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres/profile"
	recipientrepo "github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres/recipient"
	"github.com/heartmarshall/briefdesk-backend/internal/adapter/redis/profilecache"
	"github.com/heartmarshall/briefdesk-backend/internal/auth"
	"github.com/heartmarshall/briefdesk-backend/internal/config"
	"github.com/heartmarshall/briefdesk-backend/internal/service/brief"
	"github.com/heartmarshall/briefdesk-backend/internal/service/identity"
	"github.com/heartmarshall/briefdesk-backend/internal/transport/middleware"
	"github.com/heartmarshall/briefdesk-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL (and Redis when configured), builds the services and serves
// HTTP until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	var cache *profilecache.Cache
	if cfg.Redis.Enabled() {
		cache, err = profilecache.Open(ctx, cfg.Redis.URL, cfg.Redis.ProfileTTL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer cache.Close()
		logger.Info("profile cache enabled", slog.Duration("ttl", cfg.Redis.ProfileTTL))
	}

	handler, cleanup := wire(cfg, logger, pool, cache)
	defer cleanup()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx is done or the listener fails, then drains
// in-flight requests within shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("http server stopped")
	return nil
}

// wire builds repositories, services and the HTTP handler on top of pool.
// cache may be nil. The returned cleanup stops background workers.
func wire(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, cache *profilecache.Cache) (http.Handler, func()) {
	txm := postgres.NewTxManager(pool)
	briefs := briefrepo.New(pool)
	recipients := recipientrepo.New(pool)
	comments := commentrepo.New(pool)
	audit := auditrepo.New(pool)
	profiles := profilerepo.New(pool)

	// Interfaces must stay untyped nil when the cache is off.
	var (
		dir         *identity.Directory
		cachePinger interface{ Ping(context.Context) error }
	)
	if cache != nil {
		dir = identity.NewDirectory(logger, profiles, cache)
		cachePinger = cache
	} else {
		dir = identity.NewDirectory(logger, profiles, nil)
	}

	briefService := brief.NewService(logger, briefs, recipients, comments, audit, txm, dir, brief.Options{
		DefaultPageSize: cfg.Briefs.DefaultPageSize,
		MaxPageSize:     cfg.Briefs.MaxPageSize,
	})
	identityService := identity.NewService(logger, dir, briefService)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.ClockSkew)
	limiter := middleware.NewRateLimiter(time.Minute)

	handler := newHandler(handlerDeps{
		cfg:       *cfg,
		logger:    logger,
		validator: jwtManager,
		limiter:   limiter,
		health:    rest.NewHealthHandler(pool, cachePinger, BuildVersion()),
		briefs:    rest.NewBriefHandler(briefService, cfg.Server.MaxBodyBytes, logger),
		me:        rest.NewMeHandler(identityService, logger),
	})

	return handler, limiter.Stop
}
