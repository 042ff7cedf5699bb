package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// SwaggerConfig holds configuration for Swagger endpoint protection
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool
}

// SwaggerProtection hides the docs when disabled and, when RequireAuth is
// set, requires a valid bearer token.
func SwaggerProtection(cfg SwaggerConfig, authn Authenticator, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if !cfg.Enabled {
			abort(c, dto.ErrCodeNotFound, "API documentation is not available")
			return
		}
		if cfg.RequireAuth && authn != nil && !authenticate(c, authn, log) {
			return
		}
		c.Next()
	}
}
