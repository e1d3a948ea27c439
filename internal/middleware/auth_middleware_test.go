package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const middlewareTestSecret = "test-secret"

func setupAuthMiddlewareTest() (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)

	authMiddleware := NewAuthMiddleware(middlewareTestSecret)
	router := gin.New()

	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		email, _ := GetUserEmail(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"email":   email,
			"role":    role,
		})
	})
	router.GET("/admin-only", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, authMiddleware
}

func issueToken(t *testing.T, role string, accessExpiry time.Duration) string {
	tokens, err := util.GenerateTokenPair(42, "user@example.com", role, middlewareTestSecret, accessExpiry, time.Hour)
	require.NoError(t, err)
	return tokens.AccessToken
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error"].(string)
	return code
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	router, _ := setupAuthMiddlewareTest()

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	router, _ := setupAuthMiddlewareTest()

	headers := []string{
		"token-without-scheme",
		"Basic dXNlcjpwYXNz",
		"Bearer",
	}
	for _, header := range headers {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	router, _ := setupAuthMiddlewareTest()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_TOKEN_INVALID", errorCode(t, w))
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	router, _ := setupAuthMiddlewareTest()
	token := issueToken(t, "user", -time.Minute)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_TOKEN_EXPIRED", errorCode(t, w))
}

func TestAuthenticate_ValidTokenSetsContext(t *testing.T) {
	router, _ := setupAuthMiddlewareTest()
	token := issueToken(t, "seller", 15*time.Minute)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(42), resp["user_id"])
	assert.Equal(t, "user@example.com", resp["email"])
	assert.Equal(t, "seller", resp["role"])
}

func TestRequireRole(t *testing.T) {
	router, _ := setupAuthMiddlewareTest()

	adminToken := issueToken(t, "admin", 15*time.Minute)
	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	userToken := issueToken(t, "user", 15*time.Minute)
	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	_, ok := GetBearerToken(c)
	assert.False(t, ok)

	c.Request.Header.Set("Authorization", "Bearer abc123")
	token, ok := GetBearerToken(c)
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)
}
