package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Manoj814/SaiStarBooking/internal/application"
	"github.com/Manoj814/SaiStarBooking/internal/config"
	"github.com/Manoj814/SaiStarBooking/internal/domain/schedule"
	bookingEvents "github.com/Manoj814/SaiStarBooking/internal/events"
	"github.com/Manoj814/SaiStarBooking/internal/handler"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/auth"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/database"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/kafka"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/locking"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/logger"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/middleware"
	"github.com/Manoj814/SaiStarBooking/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "sai-star-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting sai-star-booking",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
	)

	// Initialize storage
	var (
		db    *gorm.DB
		store schedule.Store
	)
	switch cfg.StorageDriver {
	case "memory":
		store = repository.NewInMemoryScheduleStore()
		log.Info("using in-memory schedule store")
	default:
		db, err = database.Connect(cfg.DBConfig, log)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}

		if cfg.AppEnv == "development" {
			if err := db.AutoMigrate(&repository.BookingModel{}, &repository.ScheduleRevisionModel{}); err != nil {
				log.Fatal("failed to run auto-migration", zap.Error(err))
			}
			log.Info("database migration completed (dev auto-migrate)")
		} else {
			dbURL := cfg.DBConfig.DatabaseURL()
			if err := database.RunMigrations(dbURL, "migrations", log); err != nil {
				log.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store = repository.NewGormScheduleStore(db)
	}

	// Initialize the schedule lock. Redis serializes writers across server
	// instances; the local mutex covers single-instance deployments.
	var locker locking.Locker
	if cfg.RedisConfig.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisConfig.Addr})
		locker = locking.NewRedisLocker(redisClient, "sai-star-booking:schedule", 15*time.Second)
		log.Info("using redis schedule lock", zap.String("addr", cfg.RedisConfig.Addr))
	} else {
		locker = locking.NewLocalLocker()
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		cfg.JWTConfig.AccessTTL,
		cfg.JWTConfig.RefreshTTL,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize the scheduler on the configured slot grid
	grid, err := schedule.NewGrid(cfg.SlotStepMinutes)
	if err != nil {
		log.Fatal("invalid slot grid configuration", zap.Error(err))
	}
	scheduler := schedule.NewScheduler(grid)

	// Initialize application service
	bookingService := application.NewBookingService(
		store,
		scheduler,
		locker,
		kafkaProducer,
		log,
	)

	// Initialize and start payment event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + ".payment-consumer"
	paymentConsumer := bookingEvents.NewPaymentEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		bookingService,
		log,
	)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer")
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	adminHandler := handler.NewAdminBookingHandler(bookingService)
	healthHandler := handler.NewHealthHandler(db, "sai-star-booking")

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register routes
	healthHandler.RegisterRoutes(router)
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down sai-star-booking...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("sai-star-booking stopped")
}
