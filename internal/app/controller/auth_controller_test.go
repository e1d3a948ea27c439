package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/service"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/db"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	resetRepo := repository.NewPasswordResetRepository(testDB)
	authService := service.NewAuthService(userRepo, onboardingTestSecret, 15*time.Minute, time.Hour)
	resetService := service.NewPasswordResetService(resetRepo, userRepo)

	authCtrl := NewAuthController(authService, resetService)
	authMiddleware := middleware.NewAuthMiddleware(onboardingTestSecret)

	router := gin.New()
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/refresh", authCtrl.Refresh)
		auth.POST("/reset-password", authCtrl.ResetPassword)
		auth.GET("/me", authMiddleware.Authenticate(), authCtrl.Me)
		auth.PUT("/me", authMiddleware.Authenticate(), authCtrl.UpdateProfile)
	}

	return router, testDB
}

func TestAuthController_Register(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := doJSON(router, "POST", "/api/auth/register", "", RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		Name:     "New User",
		Phone:    "9876543210",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])

	data := resp["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "new@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "none", user["onboarding_status"])

	tokens := data["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
	assert.NotEmpty(t, tokens["refresh_token"])
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	req := RegisterRequest{
		Email:    "dup@example.com",
		Password: "password123",
		Name:     "First",
	}
	w := doJSON(router, "POST", "/api/auth/register", "", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/auth/register", "", req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthController_Register_InvalidInput(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	cases := []RegisterRequest{
		{Email: "not-an-email", Password: "password123", Name: "X"},
		{Email: "ok@example.com", Password: "short", Name: "X"},
		{Email: "ok@example.com", Password: "password123"},
	}
	for _, req := range cases {
		w := doJSON(router, "POST", "/api/auth/register", "", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestAuthController_Login(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := doJSON(router, "POST", "/api/auth/register", "", RegisterRequest{
		Email:    "login@example.com",
		Password: "password123",
		Name:     "Login User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/auth/login", "", LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "POST", "/api/auth/login", "", LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AUTH_INVALID_CREDENTIALS", resp["error"])
}

func TestAuthController_Refresh(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := doJSON(router, "POST", "/api/auth/register", "", RegisterRequest{
		Email:    "refresh@example.com",
		Password: "password123",
		Name:     "Refresh User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	tokens := registered["data"].(map[string]interface{})["tokens"].(map[string]interface{})
	refreshToken := tokens["refresh_token"].(string)

	w = doJSON(router, "POST", "/api/auth/refresh", "", RefreshTokenRequest{RefreshToken: refreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "POST", "/api/auth/refresh", "", RefreshTokenRequest{RefreshToken: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_MeAndUpdateProfile(t *testing.T) {
	router, testDB := setupAuthControllerTest(t)
	user, token := createTestUser(t, testDB, "me@example.com", model.RoleUser)

	w := doJSON(router, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	me := resp["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, float64(user.ID), me["id"])
	assert.Equal(t, "me@example.com", me["email"])

	w = doJSON(router, "PUT", "/api/auth/me", token, UpdateProfileRequest{
		Name:  "Renamed",
		Phone: "9000000000",
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	me = resp["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "Renamed", me["name"])
	assert.Equal(t, "9000000000", me["phone"])

	// Profile routes reject anonymous callers
	w = doJSON(router, "GET", "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_ResetPassword(t *testing.T) {
	router, testDB := setupAuthControllerTest(t)

	w := doJSON(router, "POST", "/api/auth/register", "", RegisterRequest{
		Email:    "reset@example.com",
		Password: "oldpassword",
		Name:     "Reset User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Plant a known code instead of going through the email path
	reset := &model.PasswordReset{
		Email:     "reset@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	require.NoError(t, testDB.Create(reset).Error)

	w = doJSON(router, "POST", "/api/auth/reset-password", "", ResetPasswordRequest{
		Email:       "reset@example.com",
		Code:        "000000",
		NewPassword: "newpassword",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "POST", "/api/auth/reset-password", "", ResetPasswordRequest{
		Email:       "reset@example.com",
		Code:        "123456",
		NewPassword: "newpassword",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works, new one does
	w = doJSON(router, "POST", "/api/auth/login", "", LoginRequest{
		Email:    "reset@example.com",
		Password: "oldpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "POST", "/api/auth/login", "", LoginRequest{
		Email:    "reset@example.com",
		Password: "newpassword",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
