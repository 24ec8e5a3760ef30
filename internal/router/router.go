package router

import (
	"github.com/gin-gonic/gin"

	"verdicto/internal/handler"
	"verdicto/internal/middleware"
	"verdicto/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	comparisonH *handler.ComparisonHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(corsOrigins))
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	comparisons := protected.Group("/comparisons")
	comparisons.POST("", comparisonH.Create)
	comparisons.GET("", comparisonH.List)
	comparisons.GET("/:id", comparisonH.GetByID)
	comparisons.GET("/:id/export", comparisonH.Export)
	comparisons.DELETE("/:id", comparisonH.Delete)

	return r
}
