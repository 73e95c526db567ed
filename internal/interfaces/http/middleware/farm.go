package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Farm context keys
const (
	FarmIDKey     = "farm_id"
	FarmHeaderKey = "X-Farm-ID"
)

// FarmAuthorizer checks that a user may operate on a farm.
// *farm.FarmService satisfies this.
type FarmAuthorizer interface {
	AuthorizeMember(ctx context.Context, userID, farmID uuid.UUID) error
}

// FarmMiddlewareConfig holds configuration for farm scope middleware
type FarmMiddlewareConfig struct {
	// Authorizer verifies farm membership per request
	Authorizer FarmAuthorizer
	// SkipPaths are paths that don't require a farm scope, such as
	// farm management itself and health checks
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require a farm scope
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultFarmConfig returns default farm middleware configuration
func DefaultFarmConfig(authorizer FarmAuthorizer) FarmMiddlewareConfig {
	return FarmMiddlewareConfig{
		Authorizer: authorizer,
		SkipPaths:  []string{"/health", "/healthz", "/ready", "/api/v1/health"},
		SkipPathPrefixes: []string{
			"/api/v1/farms",
		},
		Logger: nil,
	}
}

// FarmScopeMiddleware resolves the active farm from the X-Farm-ID header
// and verifies the authenticated user belongs to it. Runs after the JWT
// middleware; every farm-scoped route requires it.
func FarmScopeMiddleware(authorizer FarmAuthorizer) gin.HandlerFunc {
	return FarmScopeMiddlewareWithConfig(DefaultFarmConfig(authorizer))
}

// FarmScopeMiddlewareWithConfig returns farm scope middleware with custom configuration
func FarmScopeMiddlewareWithConfig(cfg FarmMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		header := c.GetHeader(FarmHeaderKey)
		if header == "" {
			respondFarmError(c, http.StatusBadRequest, "MISSING_FARM", "X-Farm-ID header is required")
			return
		}

		farmID, err := uuid.Parse(header)
		if err != nil {
			respondFarmError(c, http.StatusBadRequest, "INVALID_FARM", "X-Farm-ID must be a valid UUID")
			return
		}

		userID, err := uuid.Parse(GetJWTUserID(c))
		if err != nil {
			respondFarmError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		if cfg.Authorizer != nil {
			if err := cfg.Authorizer.AuthorizeMember(c.Request.Context(), userID, farmID); err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Warn("Farm authorization failed",
						zap.String("farm_id", farmID.String()),
						zap.String("user_id", userID.String()),
						zap.Error(err),
					)
				}
				switch {
				case errors.Is(err, shared.ErrNotFound):
					respondFarmError(c, http.StatusNotFound, "NOT_FOUND", "Farm not found")
				case errors.Is(err, shared.ErrForbidden):
					respondFarmError(c, http.StatusForbidden, "FORBIDDEN", "Not a member of this farm")
				default:
					respondFarmError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Farm authorization failed")
				}
				return
			}
		}

		c.Set(FarmIDKey, farmID.String())

		// Set in request context for service layer access
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithFarmID(ctx, log, farmID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func respondFarmError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// GetFarmID retrieves the active farm ID from gin.Context
func GetFarmID(c *gin.Context) string {
	if farmID, exists := c.Get(FarmIDKey); exists {
		if fid, ok := farmID.(string); ok {
			return fid
		}
	}
	return ""
}

// GetFarmUUID retrieves the active farm ID as UUID from gin.Context
func GetFarmUUID(c *gin.Context) (uuid.UUID, error) {
	farmID := GetFarmID(c)
	if farmID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(farmID)
}
