package api

import (
	"il-surface/internal/api/handlers"
	"il-surface/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterOptions struct {
	// CORSOrigins overrides CORS_ALLOWED_ORIGINS when non-nil.
	CORSOrigins []string
	// RateLimit is requests per second per client IP on /api/v1; 0 disables it.
	RateLimit int
}

// NewRouter wires middleware and routes around h.
func NewRouter(h *handlers.Handler, logger *zap.Logger, opts RouterOptions) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()

	if opts.CORSOrigins != nil {
		router.Use(middleware.CORSWithOrigins(opts.CORSOrigins))
	} else {
		router.Use(middleware.CORS())
	}
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(opts.RateLimit))
	{
		v1.GET("/quote", h.GetQuote)
		v1.POST("/simulate", h.Simulate)
		v1.GET("/surface.html", h.SurfaceHTML)
		v1.GET("/surface.png", h.SurfacePNG)

		v1.GET("/tokens", h.ListTokens)
		v1.GET("/axes", h.ListAxes)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
