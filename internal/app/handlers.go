package app

import (
	"github.com/gin-gonic/gin"

	"github.com/openmcp/openmcp-backend/internal/handlers"
	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/middleware"
	"github.com/openmcp/openmcp-backend/internal/server"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

type Handlers struct {
	Prompt   *handlers.PromptHandler
	Resource *handlers.ResourceHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Prompt:   handlers.NewPromptHandler(serviceset.Prompts),
		Resource: handlers.NewResourceHandler(serviceset.Resources),
	}
}

func wireMiddleware(log *logger.Logger) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log),
	}
}

func wireRouter(handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:  middlewareset.Auth,
		PromptHandler:   handlerset.Prompt,
		ResourceHandler: handlerset.Resource,
	})
}
