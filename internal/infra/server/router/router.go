// Package router sets up the HTTP routing for the ops server.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/engage-crm/backend/internal/integration/entrypoint/controller"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	healthController *controller.HealthController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(healthController *controller.HealthController) *Router {
	return &Router{
		healthController: healthController,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.engine.GET("/health", r.healthController.Check)

	return r.engine
}
