package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/venuehub/service-bookings/internal/application"
	"github.com/venuehub/service-bookings/internal/cache"
	"github.com/venuehub/service-bookings/internal/clients"
	"github.com/venuehub/service-bookings/internal/config"
	"github.com/venuehub/service-bookings/internal/domain/booking"
	"github.com/venuehub/service-bookings/internal/events"
	"github.com/venuehub/service-bookings/internal/handler"
	"github.com/venuehub/service-bookings/internal/middleware"
	"github.com/venuehub/service-bookings/internal/pkg/logger"
	"github.com/venuehub/service-bookings/internal/pkg/metrics"
	"github.com/venuehub/service-bookings/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-bookings",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.IsDevelopment() {
		if err := db.AutoMigrate(&repository.BookingModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()

	// Initialize Kafka producer
	producer := events.NewProducer(cfg.Kafka.Brokers, events.TopicBookingEvents, "service-bookings", log)
	defer func() { _ = producer.Close() }()

	// Initialize metrics
	m := metrics.New()

	// Initialize repositories and adapters
	bookingRepo := repository.NewGormBookingRepository(db)
	conflictChecker := booking.NewConflictChecker(bookingRepo)
	slotCache := cache.NewRedisSlotCache(redisClient, cfg.Booking.SlotsTTL)
	lockManager := cache.NewRedisLockManager(
		redisClient,
		cfg.Booking.LockTTL,
		cfg.Booking.LockRetries,
		cfg.Booking.LockRetryDelay,
	)
	venuesClient := clients.NewVenuesClient(cfg.Venues.BaseURL, cfg.Venues.Timeout)
	paymentsClient := clients.NewPaymentsClient(cfg.Payments.BaseURL, cfg.Payments.Timeout)

	// Initialize application services
	bookingService := application.NewBookingService(
		bookingRepo,
		conflictChecker,
		venuesClient,
		paymentsClient,
		slotCache,
		lockManager,
		producer,
		application.Policy{
			MinDuration:     cfg.Booking.MinDuration,
			RejectPastStart: cfg.Booking.RejectPastStart,
		},
		m,
		log,
	)
	slotService := application.NewSlotService(bookingRepo, slotCache, m, log)

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	slotHandler := handler.NewSlotHandler(slotService)

	// Setup Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.HTTPMetrics(m))

	// Operational endpoints
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup)
	slotHandler.RegisterRoutes(&router.RouterGroup)

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

	log.Info("shutting down service-bookings...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-bookings stopped")
}
