package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/auth"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/logger"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultJWTConfig skips health checks, API docs and the courier callback,
// which authenticates with the integration token instead
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
		},
		SkipPathPrefixes: []string{
			"/swagger",
			"/api/v1/callbacks/",
		},
	}
}

// JWTAuth validates the bearer token and stores the acting user
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if slices.Contains(cfg.SkipPaths, path) {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if tokenString == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error, reason string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrMissingUserID), errors.Is(err, auth.ErrTokenNotYetValid):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTUserUUID parses the authenticated user ID
func GetJWTUserUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(GetJWTUserID(c))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
