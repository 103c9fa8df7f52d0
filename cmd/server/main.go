package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"reviewadder/internal/config"
	handlers "reviewadder/internal/handlers/shared"
	"reviewadder/internal/repositories/mongodb"
	"reviewadder/internal/services"
	"reviewadder/pkg/database"
	"reviewadder/pkg/logger"
	"reviewadder/pkg/metrics"
	"reviewadder/pkg/storage"
	"reviewadder/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     cfg.App.LogFormat,
		Output:     "stdout",
		TimeFormat: cfg.App.LogTimeFormat,
		Caller:     cfg.App.Debug,
		Colors:     !cfg.App.IsProduction(),
		AppName:    cfg.App.Name,
		Version:    cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	appLogger.WithFields(map[string]interface{}{
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Provider,
		"database":    cfg.Database.Database,
	}).Debug("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.WithError(err).Fatal("Server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) error {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	appMetrics := metrics.New("review_adder")

	db, err := database.NewMongoDB(ctx, &database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			appLogger.WithError(err).Warn("Failed to disconnect from MongoDB")
		}
	}()

	if err := database.EnsureIndexes(ctx, db.Collection(cfg.Database.ReviewsCollection), database.ReviewIndexes()); err != nil {
		return err
	}

	backend, closeStorage, err := newStorageBackend(ctx, cfg.Storage, appLogger)
	if err != nil {
		return err
	}
	defer closeStorage()

	// Initialize services
	reviewRepo := mongodb.NewReviewRepository(db.Database, cfg.Database.ReviewsCollection)
	reviewService := services.NewReviewService(reviewRepo, appLogger)
	imageService := services.NewImageService(backend, cfg.Upload.MaxImageSize, appLogger)

	opts := routes.RouterOptions{
		Logger:         appLogger,
		Metrics:        appMetrics,
		AllowedOrigins: cfg.Security.CORSAllowedOrigins,
		TrustedProxies: cfg.Security.TrustedProxies,
		ReviewHandler:  handlers.NewReviewHandler(reviewService, appMetrics),
		ImageHandler:   handlers.NewImageHandler(imageService, appMetrics),
		HealthHandler:  handlers.NewHealthHandler(db, backend, cfg.App.Version),
	}
	if provider, ok := backend.Provider(); ok {
		if local, ok := provider.(*storage.LocalStorage); ok {
			opts.UploadsDir = local.BasePath()
		}
	}

	router, err := routes.NewRouter(opts)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.WithField("addr", server.Addr).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// newStorageBackend returns a disabled backend when the selected provider
// lacks settings. Uploads then answer with a configuration error while
// reviews keep working.
func newStorageBackend(ctx context.Context, cfg *config.StorageConfig, appLogger *logger.Logger) (storage.Backend, func(), error) {
	noop := func() {}

	if !cfg.IsConfigured() {
		appLogger.WithField("provider", cfg.Provider).Warn("Image storage is not configured, uploads are disabled")
		return storage.Disabled(), noop, nil
	}

	switch cfg.Provider {
	case config.StorageProviderS3:
		s3Storage, err := storage.NewAWSS3Storage(ctx, storage.AWSS3Options{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.Endpoint,
			CDNDomain:       cfg.AWS.CDNDomain,
		})
		if err != nil {
			return storage.Backend{}, nil, err
		}
		return storage.NewBackend(s3Storage), noop, nil

	case config.StorageProviderGCS:
		gcsStorage, err := storage.NewGCPStorage(ctx, cfg.GCP.Bucket, cfg.GCP.CredentialsFile, cfg.GCP.CDNDomain)
		if err != nil {
			return storage.Backend{}, nil, err
		}
		closeFn := func() {
			if err := gcsStorage.Close(); err != nil {
				appLogger.WithError(err).Warn("Failed to close GCS client")
			}
		}
		return storage.NewBackend(gcsStorage), closeFn, nil

	case config.StorageProviderLocal:
		localStorage, err := storage.NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
		if err != nil {
			return storage.Backend{}, nil, err
		}
		return storage.NewBackend(localStorage), noop, nil
	}

	return storage.Disabled(), noop, nil
}
