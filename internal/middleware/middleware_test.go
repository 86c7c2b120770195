package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"campuseats-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRouter(t *testing.T, handler gin.HandlerFunc, mw ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	chain := append([]gin.HandlerFunc{RequireAuth()}, mw...)
	chain = append(chain, handler)
	r.GET("/protected", chain...)
	return r
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	router := authedRouter(t, func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})

	t.Run("MissingToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MalformedToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := user.GenerateJWT("user-1", string(user.RoleStudent), nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	router := authedRouter(t, func(c *gin.Context) {
		c.Status(http.StatusOK)
	}, RequireRole(user.RoleManager))

	request := func(role user.Role, canteenID *string) *httptest.ResponseRecorder {
		token, err := user.GenerateJWT("user-1", string(role), canteenID)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("AllowsMatchingRole", func(t *testing.T) {
		canteenID := "cant-1"
		assert.Equal(t, http.StatusOK, request(user.RoleManager, &canteenID).Code)
	})

	t.Run("RejectsOtherRole", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, request(user.RoleStudent, nil).Code)
	})
}

func TestManagerCanteenID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/c", RequireAuth(), func(c *gin.Context) {
		id, ok := ManagerCanteenID(c)
		if !ok {
			c.Status(http.StatusForbidden)
			return
		}
		c.String(http.StatusOK, id)
	})

	canteenID := "cant-9"
	token, err := user.GenerateJWT("mgr-1", string(user.RoleManager), &canteenID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/c", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cant-9", w.Body.String())

	// student token carries no canteen binding
	token, err = user.GenerateJWT("stud-1", string(user.RoleStudent), nil)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/c", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
