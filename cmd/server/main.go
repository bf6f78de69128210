package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sgbank/bank-account-api/internal/cache"
	"github.com/sgbank/bank-account-api/internal/config"
	"github.com/sgbank/bank-account-api/internal/events"
	"github.com/sgbank/bank-account-api/internal/handler"
	"github.com/sgbank/bank-account-api/internal/middleware"
	"github.com/sgbank/bank-account-api/internal/models"
	"github.com/sgbank/bank-account-api/internal/service"
	"github.com/sgbank/bank-account-api/internal/storage"
	memorystore "github.com/sgbank/bank-account-api/internal/storage/memory"
	postgresstore "github.com/sgbank/bank-account-api/internal/storage/postgres"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Document store (write store / source of truth)
	var (
		clientStore  storage.ClientStore
		accountStore storage.AccountStore
	)
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		if err := postgresstore.EnsureSchema(context.Background(), db); err != nil {
			logger.Fatal("failed to ensure schema", zap.Error(err))
		}
		clientStore = postgresstore.NewClientStore(db)
		accountStore = postgresstore.NewAccountStore(db)
	case config.StoreMemory:
		clientStore = memorystore.NewClientStore()
		accountStore = memorystore.NewAccountStore()
	default:
		logger.Fatal("unknown STORE_BACKEND", zap.String("backend", cfg.StoreBackend))
	}

	// Redis (view cache + optional event streaming)
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, 0)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
	}

	var viewCache *cache.ViewCache[models.AccountView]
	if redisClient != nil {
		viewCache = cache.NewViewCache[models.AccountView](redisClient, cfg.CacheTTL, logger)
	}

	var publisher events.Publisher = events.NopPublisher{}
	switch cfg.EventBackend {
	case config.EventsRedis:
		if redisClient == nil {
			logger.Fatal("EVENT_BACKEND=redis requires REDIS_ADDR")
		}
		publisher = events.NewRedisPublisher(redisClient)
	case config.EventsKafka:
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// Service wiring
	clientService := service.NewClientService(clientStore)
	accountService := service.NewAccountService(accountStore, clientService, publisher, viewCache, logger)
	accountHandler := handler.NewAccountHandler(accountService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	accountHandler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}()

	logger.Info("bank account service starting",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreBackend),
		zap.String("events", cfg.EventBackend),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
