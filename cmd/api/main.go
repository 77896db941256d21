// @title Petify API
// @version 1.0
// @description Backend de Petify: mascotas, preferencias, hábitos, historial médico, eventos y clínicas.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <token>
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"petify/internal/adapters/auth/jwt"
	"petify/internal/adapters/auth/password"
	pg "petify/internal/adapters/storage/postgres"
	"petify/internal/bootstrap"
	"petify/internal/middleware"
	"petify/internal/platform/config"
	"petify/internal/platform/logger"
	"petify/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{Level: logger.ParseLevel("info")}).Error("config error", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
		Env:    cfg.App.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeDB, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error("database not available", map[string]any{"error": err})
		os.Exit(1)
	}
	defer closeDB()

	hasher := password.NewBcrypt()
	tokens := jwt.NewManager(jwt.Config{
		Secret:   cfg.Auth.JWTSecret,
		Audience: cfg.Auth.Audience,
		TTL:      cfg.Auth.TokenTTL,
	})

	if cfg.App.SeedDemo {
		if _, err := bootstrap.NewSeeder(st.Repos, st.Tx, hasher, log).Seed(ctx); err != nil {
			log.Error("seed failed", map[string]any{"error": err})
			os.Exit(1)
		}
	}

	var authLimiter func(http.Handler) http.Handler
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		authLimiter = middleware.RateLimit(
			middleware.NewRedisCounter(rdb),
			cfg.Auth.RateLimitMax,
			cfg.Auth.RateLimitEvery,
			middleware.KeyByIPAndPath("petify:rl:auth"),
		)
		log.Info("auth rate limit enabled", map[string]any{"redis": cfg.Redis.Addr, "max": cfg.Auth.RateLimitMax})
	}

	handler := router.NewRouter(router.Options{
		Logger:      log,
		Storage:     st,
		Tokens:      jwt.NewVerifier(tokens),
		Issuer:      tokens,
		Hasher:      hasher,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		AuthLimiter: authLimiter,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr, "memory_store": cfg.UsesMemoryStore()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"error": err})
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err})
	}
}

// openStorage elige Postgres si hay DATABASE_URL; si no, in-memory.
// Con Postgres espera a que la base responda y corre las migraciones.
func openStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (router.Storage, func(), error) {
	if cfg.UsesMemoryStore() {
		log.Warn("DATABASE_URL not set, using in-memory store", nil)
		return router.MemoryStorage(), func() {}, nil
	}

	db, err := pg.Open(pg.Options{
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return router.Storage{}, nil, err
	}

	err = bootstrap.WaitReady(ctx, cfg.Database.ConnectAttempts, cfg.Database.ConnectDelay, func(ctx context.Context) error {
		if err := pg.Ping(ctx, db); err != nil {
			return err
		}
		return pg.Migrate(ctx, db)
	}, log)
	if err != nil {
		_ = db.Close()
		return router.Storage{}, nil, err
	}

	return router.PostgresStorage(db), func() { closeQuietly(db, log) }, nil
}

func closeQuietly(db *sql.DB, log logger.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("db close error", map[string]any{"error": err})
	}
}
