package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/masterchef/backend/internal/middleware"
	"github.com/pageza/masterchef/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Masterchef API is running",
		"version": "v1.0.0",
	})
}

// Dependencies are the services the routes are built from.
// Exporter and Limiter are optional.
type Dependencies struct {
	Sessions  service.ISessionService
	Extractor service.IExtractorService
	Recipes   service.IRecipeService
	Drafts    service.DraftStore
	Exporter  service.IExportService
	Limiter   *middleware.RateLimiter
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	v1 := router.Group("/api/v1")
	NewSessionHandler(deps.Sessions).RegisterRoutes(v1)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(deps.Sessions))

	NewExtractHandler(deps.Extractor, deps.Drafts, deps.Recipes, deps.Limiter).RegisterRoutes(authed)
	NewRecipeHandler(deps.Recipes, deps.Exporter).RegisterRoutes(authed)

	if deps.Limiter != nil {
		RegisterRateLimitRoutes(authed, deps.Limiter)
	}
}

// RegisterRateLimitRoutes registers the endpoint for checking the extraction allowance
func RegisterRateLimitRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	router.GET("/rate-limits/extract", func(c *gin.Context) {
		collectionID, ok := middleware.CollectionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}

		remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), collectionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
			return
		}

		cfg := limiter.Config()
		c.JSON(http.StatusOK, gin.H{
			"limit":      cfg.Limit,
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     cfg.Window.String(),
		})
	})
}
