package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireRole creates middleware that requires any of the specified roles.
// The caller must be authenticated before this middleware runs.
func RequireRole(roles ...string) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig creates role middleware with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				if cfg.Logger != nil {
					cfg.Logger.Debug("Role check passed",
						zap.String("user_id", GetJWTUserID(c)),
						zap.String("role", role))
				}
				c.Next()
				return
			}
		}

		handleRoleDenied(c, cfg, roles, "User lacks required role")
	}
}

func handleRoleDenied(c *gin.Context, cfg RoleConfig, required []string, reason string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Role check failed",
			zap.String("user_id", GetJWTUserID(c)),
			zap.Strings("required_roles", required),
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path))
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "Insufficient permissions",
		},
	})
}
