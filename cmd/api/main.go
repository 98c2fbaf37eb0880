package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"astromatch/internal/config"
	"astromatch/internal/db"
	apihttp "astromatch/internal/http"
	"astromatch/internal/repository"
	"astromatch/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	ctxPing, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := db.Ping(ctxPing, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	cancelPing()

	catalogRepo := repository.NewPgCatalogRepository(pool)

	// Sin Redis alcanzable se degrada al cache en memoria: la memoización
	// es solo latencia, nunca corrección.
	var resultCache service.ResultCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			resultCache = service.NewRedisResultCache(redisClient)
		}
		cancel()
	}
	if resultCache == nil {
		resultCache = service.NewMemoryResultCache()
	}

	matchSvc := service.NewMatchService(logger, catalogRepo, resultCache, service.MatchOptions{
		CandidateCap: cfg.CandidateCap,
		DefaultLimit: cfg.DefaultLimit,
		MaxLimit:     cfg.MaxLimit,
		CacheTTL:     time.Duration(cfg.CacheTTLMinutes) * time.Minute,
		Workers:      cfg.Workers,
	})
	matchHandler := apihttp.NewMatchHandler(logger, matchSvc)
	router := apihttp.NewRouter(logger, matchHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
