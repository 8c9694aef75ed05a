package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/requestdata"
)

// loginHeader is set by the fronting auth proxy; this service trusts it
// and does no credential checking of its own.
const loginHeader = "X-Auth-Login"

type AuthMiddleware struct {
	log *logger.Logger
}

func NewAuthMiddleware(log *logger.Logger) *AuthMiddleware {
	middlewareLog := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLog}
}

func (am *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		login := strings.TrimSpace(c.GetHeader(loginHeader))
		if login == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing login"})
			return
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{Login: login})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
