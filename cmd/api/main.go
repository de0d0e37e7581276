package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Priyakatariya/smartbackend/internal/api"
	"github.com/Priyakatariya/smartbackend/internal/infrastructure/config"
	mongodb "github.com/Priyakatariya/smartbackend/internal/infrastructure/db/mongo"
	redisdb "github.com/Priyakatariya/smartbackend/internal/infrastructure/db/redis"
	"github.com/Priyakatariya/smartbackend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	for _, idx := range []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongodb.NewUserRepository(db),
		mongodb.NewListingRepository(db),
		mongodb.NewCommentRepository(db),
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure indexes")
		}
	}

	// --- Redis (optional: a failed connection disables the view cache) ---
	var rdb *goredis.Client
	if !cfg.Redis.Disabled {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, listing view cache disabled")
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		}
	}

	e := api.NewRouter(db, rdb, api.RouterConfig{
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		ViewCacheTTL: cfg.Redis.ViewTTL,
	}, log)

	// --- Serve with graceful shutdown ---
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
