package router

import (
	"github.com/gin-gonic/gin"

	"pwfconv/internal/handler"
	"pwfconv/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(convertH *handler.ConvertHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")
	v1.POST("/convert", convertH.Convert)

	return r
}
