package main

import (
	"context"
	"log"
	nethttp "net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/ditservices/asset-tracker/docs"
	"github.com/ditservices/asset-tracker/internal/auth"
	"github.com/ditservices/asset-tracker/internal/config"
	"github.com/ditservices/asset-tracker/internal/db"
	"github.com/ditservices/asset-tracker/internal/http"
	"github.com/ditservices/asset-tracker/internal/http/handlers"
	rl "github.com/ditservices/asset-tracker/internal/http/rate_limiter"
	"github.com/ditservices/asset-tracker/internal/jobs"
	"github.com/ditservices/asset-tracker/internal/logger"
	"github.com/ditservices/asset-tracker/internal/redissvc"
	"github.com/ditservices/asset-tracker/internal/repo"
	"github.com/ditservices/asset-tracker/internal/scheduler"
	"github.com/ditservices/asset-tracker/internal/storage"
	"github.com/ditservices/asset-tracker/internal/ws"
)

// @title Asset Tracker API
// @version 1.0
// @description REST API for managing IT assets, sales and service schedules.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.JWTSecret == "" {
		zlog.Fatal("JWT_SECRET must be set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(ctx).Err(); err != nil {
		cancel()
		zlog.Fatal("could not connect to redis", zap.Error(err))
	}
	cancel()
	defer rdb.Close()

	redisService := redissvc.NewRedisService(rdb)
	handlers.SetRedisService(redisService)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		zlog.Fatal("could not ensure schema", zap.Error(err))
	}

	productRepo := repo.NewPostgresProductRepository(database)
	tokenRepo := repo.NewPostgresTokenRepository(database)
	attachmentRepo := repo.NewPostgresAttachmentRepository(database)

	handlers.SetProductRepo(productRepo)
	handlers.SetSaleRepo(repo.NewPostgresSaleRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handlers.SetActivityLogRepo(repo.NewPostgresActivityLogRepository(database))
	handlers.SetAttachmentRepo(attachmentRepo)

	authService := auth.NewService(cfg.JWTSecret, tokenRepo)
	handlers.SetAuthService(authService)
	http.SetAuthService(authService)

	store, err := storage.NewDiskStore(cfg.UploadDir, cfg.PublicURL)
	if err != nil {
		zlog.Fatal("could not prepare upload dir", zap.Error(err))
	}
	handlers.SetDiskStore(store)

	queue := jobs.NewQueue(64)
	queue.Start(cfg.ImageWorkers)
	defer queue.Stop()
	handlers.SetJobQueue(queue)

	hub := ws.NewHub()
	handlers.SetAlertsHub(hub)

	sched := scheduler.New(productRepo, tokenRepo, hub, cfg)
	if err := sched.Start(); err != nil {
		zlog.Fatal("could not start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	go rl.StartVisitorCleanupLoop()

	limiter := rl.NewFixedWindowLimiter(redisService, cfg.RateLimit, time.Duration(cfg.RateWindowSecs)*time.Second)

	router := http.NewRouter(limiter, hub, store.Root())
	zlog.Info("server listening", zap.String("port", cfg.Port))
	if err := nethttp.ListenAndServe(":"+cfg.Port, router); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
