package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openmcp/openmcp-backend/internal/handlers"
	"github.com/openmcp/openmcp-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware  *middleware.AuthMiddleware
	PromptHandler   *handlers.PromptHandler
	ResourceHandler *handlers.ResourceHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Auth-Login", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireLogin())
	// Prompts
	api.POST("/prompts", cfg.PromptHandler.Create)
	api.GET("/prompts", cfg.PromptHandler.ListActual)
	api.GET("/prompts/:name", cfg.PromptHandler.GetActual)
	api.GET("/prompts/:name/history", cfg.PromptHandler.History)
	api.POST("/prompts/:name/render", cfg.PromptHandler.Render)
	api.PUT("/prompts/:name/versions/:version/status", cfg.PromptHandler.SetStatus)
	api.DELETE("/prompts/:name/versions/:version", cfg.PromptHandler.DeleteVersion)
	api.DELETE("/prompts/:name", cfg.PromptHandler.DeleteAll)
	// Resources
	api.POST("/resources", cfg.ResourceHandler.Create)
	api.GET("/resources", cfg.ResourceHandler.ListActual)
	api.GET("/resources/:name", cfg.ResourceHandler.GetActual)
	api.GET("/resources/:name/history", cfg.ResourceHandler.History)
	api.PUT("/resources/:name/versions/:version/status", cfg.ResourceHandler.SetStatus)
	api.DELETE("/resources/:name/versions/:version", cfg.ResourceHandler.DeleteVersion)
	api.DELETE("/resources/:name", cfg.ResourceHandler.DeleteAll)

	return router
}
