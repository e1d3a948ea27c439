package service

import (
	"testing"
	"time"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/db"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key"

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
	return authService, testDB
}

func TestAuthService_Register_Success(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("new@example.com", "password123", "New User", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(model.RoleUser), claims.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("dup@example.com", "password123", "First", "")
	require.NoError(t, err)

	_, _, err = authService.Register("dup@example.com", "password456", "Second", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("login@example.com", "password123", "Login User", "")
	require.NoError(t, err)

	user, tokens, err := authService.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)

	_, _, err = authService.Login("login@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshTokens(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("refresh@example.com", "password123", "Refresh User", "")
	require.NoError(t, err)

	// A role change lands in the next rotated token
	require.NoError(t, testDB.Model(user).Update("role", model.RoleSeller).Error)

	fresh, err := authService.RefreshTokens(tokens.RefreshToken)
	require.NoError(t, err)

	claims, err := util.ValidateToken(fresh.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleSeller), claims.Role)

	_, err = authService.RefreshTokens("not-a-token")
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, _, err := authService.Register("profile@example.com", "password123", "Old Name", "1111111111")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "New Name", "", "")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "1111111111", updated.Phone)

	_, err = authService.UpdateProfile(9999, "Nobody", "", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
