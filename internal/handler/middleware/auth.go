package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"courtdesk/internal/domain/identity"
	"courtdesk/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokens *jwt.Service
	grants identity.Grants
}

const ctxActorKey = "actor"

func NewAuthMiddleware(tokens *jwt.Service, grants identity.Grants) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		grants: grants,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		role := identity.Role(claims.Role)
		actor := identity.Actor{
			ID:          claims.UserID,
			Username:    claims.Username,
			Role:        role,
			Permissions: m.grants.For(role),
		}

		c.Set(ctxActorKey, actor)
		c.Set("jwt_claims", map[string]any{
			"user_id": actor.ID.String(),
			"role":    string(actor.Role),
		})
		c.Next()
	}
}

// RequirePermission gates a route on a single grant. Must run after
// RequireAuth.
func (m *AuthMiddleware) RequirePermission(p identity.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}
		if !actor.Can(p) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetActor(c *gin.Context) (identity.Actor, bool) {
	value, exists := c.Get(ctxActorKey)
	if !exists {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	return actor, ok
}
