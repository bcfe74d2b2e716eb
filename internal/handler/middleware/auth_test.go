//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courtdesk/internal/domain/identity"
	"courtdesk/internal/handler/middleware"
	"courtdesk/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, svc *jwt.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth := middleware.NewAuthMiddleware(svc, identity.DefaultGrants())

	r := gin.New()
	protected := r.Group("/", auth.RequireAuth())
	protected.GET("/me", func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": actor.Username, "role": string(actor.Role)})
	})
	protected.GET("/cashbox", auth.RequirePermission(identity.PermManageCashbox), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)
	router := newAuthRouter(t, svc)

	t.Run("valid bearer token", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), "operador", identity.RoleOperator)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "operador")
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token from another secret", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Hour)
		token, err := other.GenerateToken(uuid.New(), "operador", identity.RoleOperator)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)
	router := newAuthRouter(t, svc)

	call := func(t *testing.T, role identity.Role) int {
		t.Helper()
		token, err := svc.GenerateToken(uuid.New(), "someone", role)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/cashbox", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("admin allowed", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, call(t, identity.RoleAdmin))
	})

	t.Run("cashier allowed", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, call(t, identity.RoleCashier))
	})

	t.Run("operator forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, call(t, identity.RoleOperator))
	})

	t.Run("unknown role fails closed", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, call(t, identity.Role("ghost")))
	})
}
