// Command server runs the user directory API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"userdir/internal/audit"
	"userdir/internal/auth"
	"userdir/internal/jwttoken"
	"userdir/internal/platform/config"
	"userdir/internal/platform/httpserver"
	"userdir/internal/platform/logger"
	"userdir/internal/platform/metrics"
	"userdir/internal/platform/postgres"
	"userdir/internal/platform/redis"
	transporthttp "userdir/internal/transport/http"
	"userdir/internal/users"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run wires configuration, stores, services, and the HTTP server. Business
// logic lives in the internal services packages.
func run() error {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	var (
		userStore  users.Store
		auditStore audit.Store
	)
	if db != nil {
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		userStore = users.NewPostgresStore(db)
		auditStore = audit.NewPostgresStore(db)
		log.Info("using postgres store")
	} else {
		userStore = users.NewInMemoryStore()
		auditStore = audit.NewInMemoryStore()
		log.Info("using in-memory store")
	}

	cache, err := redis.New(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}

	m := metrics.New()
	if cache != nil {
		defer cache.Close()
		userStore = users.NewCachedStore(userStore, cache, cfg.CacheTTL, m)
		log.Info("redis cache enabled", "ttl", cfg.CacheTTL)
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	authService, err := auth.NewService(auth.DefaultCredentials(), tokens, log)
	if err != nil {
		return err
	}

	recorder := audit.NewRecorder(auditStore, log)
	userService := users.NewService(userStore, m, recorder, log)

	routerCfg := transporthttp.Config{
		Logger:         log,
		Metrics:        m,
		RequestTimeout: cfg.RequestTimeout,
		DatabaseCheck:  userStore.Ping,
	}
	if cache != nil {
		routerCfg.CacheCheck = cache.Health
	}

	router := transporthttp.New(routerCfg,
		auth.NewHandler(authService, log),
		users.NewHandler(userService, tokens, cfg.RequireAuth, log),
		audit.NewHandler(auditStore, tokens, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr, "require_auth", cfg.RequireAuth)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
