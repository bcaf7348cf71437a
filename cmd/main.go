package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/adapter/httpapi"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/adapter/identity"
	natsAdapter "github.com/momenanwar82-bot/Bazaar-Pro/internal/adapter/messaging/nats"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/adapter/repository/cache"
	mongoRepo "github.com/momenanwar82-bot/Bazaar-Pro/internal/adapter/repository/mongodb"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/adapter/share"
	s3Storage "github.com/momenanwar82-bot/Bazaar-Pro/internal/adapter/storage/s3"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/config"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/mailer"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/metrics"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/tracer"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/session"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/usecase"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, for local development)
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	// 1. Initialize Logger
	appLogger := logger.NewLogger()
	appLogger.Info("Application starting...")

	// 2. Load Configuration
	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize Tracer
	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTLPEndpoint, appLogger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Failed to shut down tracer provider", zap.Error(err))
		}
	}()

	// 4. Initialize Metrics
	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	go func() {
		if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	// 5. Connect to MongoDB
	mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer mongoCancel()
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := mongoClient.Ping(mongoCtx, nil); err != nil {
		appLogger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Failed to disconnect MongoDB client", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)
	appLogger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	// 6. Repositories
	listingRepo, err := mongoRepo.NewListingRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize listing repository", zap.Error(err))
	}
	wishlistRepo, err := mongoRepo.NewWishlistRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize wishlist repository", zap.Error(err))
	}

	// 7. Redis cache (optional; the service degrades to repository reads)
	var listingCache usecase.ListingCache
	redisCache, err := cache.NewListingCache(cfg.RedisAddr)
	if err != nil {
		appLogger.Warn("Redis unavailable, continuing without listing cache", zap.Error(err))
	} else {
		listingCache = redisCache
		defer redisCache.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
	}

	// 8. NATS delegate bus
	publisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()
	appLogger.Info("Connected to NATS", zap.String("url", cfg.NATSURL))

	// 9. MinIO image storage
	imageStorage, err := s3Storage.NewS3Storage(
		cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	// 10. Mailer (optional)
	var sellerMailer mailer.Mailer
	if cfg.SMTPEmail != "" && cfg.SMTPPassword != "" {
		sellerMailer = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, appLogger)
	} else {
		appLogger.Info("SMTP credentials not configured, seller emails disabled")
	}

	// 11. Session service
	identityClient := identity.NewClient(cfg.IdentityServiceURL, appLogger)
	sessionService := session.NewService(identityClient, cfg.JWTSecret, appLogger)

	// 12. Usecases
	listingUC := usecase.NewListingUsecase(listingRepo, listingCache, publisher, sellerMailer, metricsManager, appLogger)
	shareBridge := share.NewBridge(publisher, true, appLogger)
	interactionUC := usecase.NewInteractionUsecase(
		listingUC, wishlistRepo, publisher,
		shareBridge, shareBridge, httpapi.RequestConfirmer{},
		metricsManager, appLogger,
		cfg.ShareBaseURL, cfg.DefaultCountryCode,
	)
	photoUC := usecase.NewPhotoUsecase(listingRepo, imageStorage, listingCache, appLogger)

	// 13. HTTP server
	handler := httpapi.NewHandler(sessionService, listingUC, interactionUC, photoUC, metricsManager, appLogger)
	router := httpapi.NewRouter(handler, cfg.JWTSecret, metricsManager, appLogger)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("HTTP server starting", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 14. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	appLogger.Info("Application stopped")
}
