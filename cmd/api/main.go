package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/storechain/ops-service/config"
	"github.com/storechain/ops-service/internal/broker"
	"github.com/storechain/ops-service/internal/cache"
	"github.com/storechain/ops-service/internal/database"
	"github.com/storechain/ops-service/internal/middleware"
	"github.com/storechain/ops-service/internal/tracing"

	catRepoPkg "github.com/storechain/ops-service/internal/catalog/repository"
	discRepoPkg "github.com/storechain/ops-service/internal/discount/repository"
	memberRepoPkg "github.com/storechain/ops-service/internal/member/repository"

	rewardH "github.com/storechain/ops-service/internal/reward/handler"
	rewardRepoPkg "github.com/storechain/ops-service/internal/reward/repository"
	rewardUCPkg "github.com/storechain/ops-service/internal/reward/usecase"

	saleH "github.com/storechain/ops-service/internal/sale/handler"
	saleRepoPkg "github.com/storechain/ops-service/internal/sale/repository"
	saleUCPkg "github.com/storechain/ops-service/internal/sale/usecase"

	transferH "github.com/storechain/ops-service/internal/transfer/handler"
	transferRepoPkg "github.com/storechain/ops-service/internal/transfer/repository"
	transferUCPkg "github.com/storechain/ops-service/internal/transfer/usecase"
)

func main() {
	// 1. Load configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize logger
	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	// 3. Initialize tracing
	if err := tracing.Init(tracing.Config{
		Enabled:     cfg.Jaeger.Enabled,
		Endpoint:    cfg.Jaeger.Endpoint,
		ServiceName: "retail-ops-service",
		Environment: cfg.Server.AppEnv,
	}); err != nil {
		appLogger.Warn("Could not initialize tracing", zap.Error(err))
	}
	defer tracing.Shutdown(context.Background())

	// 4. Connect to database
	db, err := database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if err := database.InitSchema(db); err != nil {
		appLogger.Fatal("Could not initialize schema", zap.Error(err))
	}

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 6. Initialize Kafka publisher
	publisher := broker.NewPublisher(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer publisher.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 7. Initialize repositories
	catalogRepo := catRepoPkg.NewPGRepository()
	discountRepo := discRepoPkg.NewPGRepository()
	memberRepo := memberRepoPkg.NewPGRepository()
	saleRepo := saleRepoPkg.NewPGRepository()
	transferRepo := transferRepoPkg.NewPGRepository()
	rewardRepo := rewardRepoPkg.NewPGRepository()

	// 8. Initialize use cases
	saleUC := saleUCPkg.NewSaleUseCase(db, catalogRepo, discountRepo, saleRepo, redisClient, publisher, appLogger)
	transferUC := transferUCPkg.NewTransferUseCase(db, catalogRepo, transferRepo, redisClient, publisher, appLogger)
	rewardUC := rewardUCPkg.NewRewardUseCase(db, rewardRepo, memberRepo, publisher, appLogger)

	// 9. Initialize handlers
	saleHandler := saleH.NewSaleHandler(saleUC, appLogger)
	transferHandler := transferH.NewTransferHandler(transferUC, appLogger)
	rewardHandler := rewardH.NewRewardHandler(rewardUC, appLogger)

	// 10. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Tracing())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/sales", saleHandler.ProcessSale)
	r.Post("/transfers", transferHandler.Transfer)
	r.Post("/rewards", rewardHandler.CreateReward)
	r.Put("/rewards/{reward_id}", rewardHandler.UpdateReward)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 11. Start HTTP server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	server := &http.Server{
		Addr:    port,
		Handler: r,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func newLogger(cfg *config.Config) *zap.Logger {
	var zcfg zap.Config
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.Logger.Encoding != "" {
		zcfg.Encoding = cfg.Logger.Encoding
	}
	if level, err := zapcore.ParseLevel(cfg.Logger.Level); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	zcfg.DisableCaller = cfg.Logger.DisableCaller
	zcfg.DisableStacktrace = cfg.Logger.DisableStacktrace

	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger
}
