package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/auth"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/logger"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticator validates an access token, including revocation
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error)
}

// JWTConfig holds configuration for JWT middleware
type JWTConfig struct {
	Authenticator Authenticator
	// SkipPaths are exact paths served without a token
	SkipPaths []string
	// SkipPathPrefixes are path prefixes served without a token
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultSkipPaths are the public endpoints
var DefaultSkipPaths = []string{
	"/health",
	"/api/v1/auth/login",
	"/api/v1/auth/register",
	"/api/v1/auth/refresh",
}

// DefaultSkipPathPrefixes are the public path prefixes
var DefaultSkipPathPrefixes = []string{
	"/api/v1/password/",
	"/swagger/",
	"/uploads/",
}

// JWTAuth authenticates the bearer token and stores its claims
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		if authenticate(c, cfg.Authenticator, log) {
			c.Next()
		}
	}
}

// authenticate verifies the bearer token and stores its claims. It aborts
// the request and returns false when the token is missing or rejected.
func authenticate(c *gin.Context, authn Authenticator, log *zap.Logger) bool {
	token, ok := bearerToken(c)
	if !ok {
		abort(c, dto.ErrCodeUnauthorized, "Authentication required")
		return false
	}

	claims, err := authn.Authenticate(c.Request.Context(), token)
	if err != nil {
		log.Debug("JWT authentication failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		code, message := dto.ErrCodeUnauthorized, "Invalid token"
		var de *shared.DomainError
		if errors.As(err, &de) {
			code, message = dto.FromDomainCode(de.Code), de.Message
		}
		abort(c, code, message)
		return false
	}

	c.Set(JWTClaimsKey, claims)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the authenticated user's id
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := GetJWTClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	id, err := claims.UserUUID()
	return id, err == nil
}

// Authorize enforces the casbin role policy for authenticated requests.
// Requests without claims were let through by JWTAuth and pass here too.
func Authorize(enforcer casbin.IEnforcer, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.Next()
			return
		}

		ok, err := enforcer.Enforce(claims.Role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			logger.L(c.Request.Context(), log).Error("Policy evaluation failed", zap.Error(err))
			abort(c, dto.ErrCodeInternal, "Authorization check failed")
			return
		}
		if !ok {
			abort(c, dto.ErrCodeForbidden, "Your role may not perform this action")
			return
		}
		c.Next()
	}
}
