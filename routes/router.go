package routes

import (
	"github.com/gin-gonic/gin"

	handlers "reviewadder/internal/handlers/shared"
	"reviewadder/internal/middleware"
	"reviewadder/pkg/logger"
	"reviewadder/pkg/metrics"
)

type RouterOptions struct {
	Logger         *logger.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	TrustedProxies []string

	ReviewHandler *handlers.ReviewHandler
	ImageHandler  *handlers.ImageHandler
	HealthHandler *handlers.HealthHandler

	// UploadsDir is served under /uploads when images are kept on local disk.
	UploadsDir string
}

func NewRouter(opts RouterOptions) (*gin.Engine, error) {
	router := gin.New()

	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(opts.Logger))
	router.Use(middleware.MetricsMiddleware(opts.Metrics))
	router.Use(middleware.CORSMiddleware(opts.AllowedOrigins))

	api := router.Group("/api")
	{
		SetupReviewRoutes(api, opts.ReviewHandler, opts.ImageHandler)
	}

	router.GET("/health", opts.HealthHandler.Health)
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	if opts.UploadsDir != "" {
		router.Static("/uploads", opts.UploadsDir)
	}

	return router, nil
}
