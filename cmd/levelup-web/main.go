package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/terra-clan/levelup-web/internal/api"
	"github.com/terra-clan/levelup-web/internal/catalog"
	"github.com/terra-clan/levelup-web/internal/config"
	"github.com/terra-clan/levelup-web/internal/session"
	"github.com/terra-clan/levelup-web/internal/warmup"
	"github.com/terra-clan/levelup-web/pkg/client"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting levelup-web",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"backend", cfg.Backend.URL,
		"session", cfg.Session.Backend,
	)

	if err := run(cfg); err != nil {
		slog.Error("levelup-web stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("levelup-web stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := client.NewClient(cfg.Backend.URL,
		client.WithTimeout(cfg.Backend.Timeout),
		client.WithLogger(slog.Default().With("component", "backend")),
	)

	cat, err := catalog.Load(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	sessions, closeSessions, err := newSessionProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	var warmer *warmup.Warmer
	if cfg.Warmup.Enabled {
		warmer = warmup.NewWarmer(backend, cfg.Warmup.Path, cfg.Warmup.Interval)
	}

	server, err := api.NewServer(cfg.Server, backend, cat, sessions, warmer)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if warmer != nil {
		g.Go(func() error {
			return warmer.Run(gctx)
		})
	}

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newSessionProvider builds the configured session storage. The returned
// func releases it.
func newSessionProvider(ctx context.Context, cfg *config.Config) (session.Provider, func(), error) {
	noop := func() {}

	switch cfg.Session.Backend {
	case config.SessionRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Address, err)
		}
		slog.Info("redis connected", "addr", cfg.Redis.Address)

		return session.RedisProvider{Client: rdb, Secure: cfg.Session.Secure}, func() {
			if err := rdb.Close(); err != nil {
				slog.Error("redis close error", "error", err)
			}
		}, nil

	case config.SessionMemory:
		slog.Warn("memory sessions are shared by every browser; use for local development only")
		return session.SharedProvider{Shared: session.NewMemoryBackend()}, noop, nil

	default:
		return session.CookieProvider{Secure: cfg.Session.Secure, Prefix: cfg.Session.CookiePrefix}, noop, nil
	}
}
