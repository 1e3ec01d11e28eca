package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/tebele-dev/tailor-made-couture/config"
	"github.com/tebele-dev/tailor-made-couture/database"
	"github.com/tebele-dev/tailor-made-couture/logger"
	"github.com/tebele-dev/tailor-made-couture/models"
	awspkg "github.com/tebele-dev/tailor-made-couture/pkg/aws"
	"github.com/tebele-dev/tailor-made-couture/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	log, err := logger.Initialize(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	infra := infrastructure{}

	// --- AWS setup (non-fatal unless secrets are required) ---
	awsCfg, err := awspkg.LoadAWSConfig(ctx)
	if err != nil {
		log.Warn("AWS config unavailable; SNS and metrics disabled", zap.Error(err))
		if cfg.AWSUseSecrets {
			log.Fatal("AWS_USE_SECRETS is set but AWS config failed", zap.Error(err))
		}
	} else {
		if err := cfg.ApplySecrets(ctx, awspkg.NewSecretsClient(awsCfg)); err != nil {
			log.Fatal("Failed to load secrets", zap.Error(err))
		}
		infra.metrics = awspkg.NewMetricsClient(awsCfg)
		if cfg.OrderSNSTopicARN != "" {
			infra.publisher = awspkg.NewSNSClient(awsCfg)
		}
	}

	// --- Key/value storage ---
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("Redis connection failed", zap.Error(err))
		}
		infra.store = repository.NewRedisStore(redisClient)
		log.Info("Using Redis storage")
	} else {
		infra.store = repository.NewMemoryStore()
		log.Warn("REDIS_URL not set; carts and sessions are kept in memory")
	}

	// --- Order history ---
	var db *gorm.DB
	if cfg.PostgresEnabled() {
		db, err = database.ConnectPostgres(cfg.PostgresDSN(), log, &models.Order{})
		if err != nil {
			log.Fatal("DB connection failed", zap.Error(err))
		}
		infra.orders = repository.NewGormOrderRepository(db)
	} else {
		infra.orders = repository.NewMemoryOrderRepository()
		log.Warn("Postgres not configured; orders are kept in memory")
	}

	r, err := newRouter(cfg, log, infra)
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Storefront started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Redis close error", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		log.Error("Database close error", zap.Error(err))
	}
	log.Info("Storefront stopped gracefully")
}
