package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adhivedhanlr-maker/ecommerce-backend/config"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/service"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/db"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/middleware"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const onboardingTestSecret = "test-secret"

func setupOnboardingControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	onboardingService := service.NewOnboardingService(userRepo)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	pricing := config.PricingConfig{TaxRate: 0.18, FreeShippingThreshold: 999, ShippingFee: 49}
	orderService := service.NewOrderService(orderRepo, cartRepo, pricing, testDB)

	onboardingCtrl := NewOnboardingController(onboardingService)
	adminCtrl := NewAdminController(onboardingService, orderService)
	authMiddleware := middleware.NewAuthMiddleware(onboardingTestSecret)

	router := gin.New()
	onboarding := router.Group("/api/seller/onboarding")
	onboarding.Use(authMiddleware.Authenticate())
	{
		onboarding.GET("/status", onboardingCtrl.GetStatus)
		onboarding.POST("/draft", onboardingCtrl.SaveDraft)
		onboarding.POST("/submit", onboardingCtrl.Submit)
	}
	admin := router.Group("/api/admin")
	admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"))
	{
		admin.GET("/sellers", adminCtrl.ListSellers)
		admin.GET("/sellers/export", adminCtrl.ExportSellers)
		admin.PUT("/sellers/:id/status", adminCtrl.DecideSeller)
	}

	return router, testDB
}

func createTestUser(t *testing.T, testDB *gorm.DB, email string, role model.UserRole) (*model.User, string) {
	user := &model.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         role,
	}
	require.NoError(t, testDB.Create(user).Error)

	tokens, err := util.GenerateTokenPair(user.ID, user.Email, string(role), onboardingTestSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return user, tokens.AccessToken
}

func doJSON(router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOnboardingController_RequiresAuth(t *testing.T) {
	router, _ := setupOnboardingControllerTest(t)

	w := doJSON(router, "GET", "/api/seller/onboarding/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOnboardingController_StatusAndDraftFlow(t *testing.T) {
	router, testDB := setupOnboardingControllerTest(t)
	_, token := createTestUser(t, testDB, "applicant@example.com", model.RoleUser)

	// Fresh account starts with no record
	w := doJSON(router, "GET", "/api/seller/onboarding/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var statusResp struct {
		Success bool                    `json:"success"`
		Data    service.OnboardingState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statusResp))
	assert.True(t, statusResp.Success)
	assert.Equal(t, model.OnboardingNone, statusResp.Data.Status)

	// Save one section
	w = doJSON(router, "POST", "/api/seller/onboarding/draft", token, gin.H{
		"identity": gin.H{"business_name": "Acme Traders"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Save a different section; both must be present afterwards
	w = doJSON(router, "POST", "/api/seller/onboarding/draft", token, gin.H{
		"banking": gin.H{"ifsc_code": "HDFC0001234"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statusResp))
	assert.Equal(t, model.OnboardingDraft, statusResp.Data.Status)
	require.NotNil(t, statusResp.Data.Profile.Identity)
	assert.Equal(t, "Acme Traders", *statusResp.Data.Profile.Identity.BusinessName)
	require.NotNil(t, statusResp.Data.Profile.Banking)
	assert.Equal(t, "HDFC0001234", *statusResp.Data.Profile.Banking.IFSCCode)
}

func TestOnboardingController_SaveDraft_WrappedBody(t *testing.T) {
	router, testDB := setupOnboardingControllerTest(t)
	_, token := createTestUser(t, testDB, "wrapped@example.com", model.RoleUser)

	// Clients may wrap the document under a businessProfile key
	w := doJSON(router, "POST", "/api/seller/onboarding/draft", token, gin.H{
		"businessProfile": gin.H{
			"identity": gin.H{"business_name": "Acme Traders"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data service.OnboardingState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.OnboardingDraft, resp.Data.Status)
	require.NotNil(t, resp.Data.Profile)
	require.NotNil(t, resp.Data.Profile.Identity)
	assert.Equal(t, "Acme Traders", *resp.Data.Profile.Identity.BusinessName)
}

func TestOnboardingController_SaveDraft_UnknownKeysRejected(t *testing.T) {
	router, testDB := setupOnboardingControllerTest(t)
	_, token := createTestUser(t, testDB, "typo@example.com", model.RoleUser)

	w := doJSON(router, "POST", "/api/seller/onboarding/draft", token, gin.H{
		"identty": gin.H{"business_name": "Acme Traders"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOnboardingController_Submit(t *testing.T) {
	router, testDB := setupOnboardingControllerTest(t)
	_, token := createTestUser(t, testDB, "submitter@example.com", model.RoleUser)

	w := doJSON(router, "POST", "/api/seller/onboarding/submit", token, gin.H{
		"tax_legal": gin.H{"pan_number": "ABCDE1234F"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data service.OnboardingState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.OnboardingPending, resp.Data.Status)
	assert.NotNil(t, resp.Data.SubmittedAt)
}

func TestOnboardingController_Submit_InvalidPAN(t *testing.T) {
	router, testDB := setupOnboardingControllerTest(t)
	_, token := createTestUser(t, testDB, "badpan@example.com", model.RoleUser)

	w := doJSON(router, "POST", "/api/seller/onboarding/submit", token, gin.H{
		"tax_legal": gin.H{"pan_number": "not-a-pan"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "ONBOARDING_INVALID_FIELD", resp.Error)
}

func TestAdminSellerReview_Forbidden(t *testing.T) {
	router, testDB := setupOnboardingControllerTest(t)
	_, token := createTestUser(t, testDB, "plain@example.com", model.RoleUser)

	w := doJSON(router, "GET", "/api/admin/sellers", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminSellerReview_ApproveFlow(t *testing.T) {
	router, testDB := setupOnboardingControllerTest(t)
	applicant, applicantToken := createTestUser(t, testDB, "applicant@example.com", model.RoleUser)
	_, adminToken := createTestUser(t, testDB, "admin@example.com", model.RoleAdmin)

	w := doJSON(router, "POST", "/api/seller/onboarding/submit", applicantToken, gin.H{
		"identity": gin.H{"business_name": "Acme Traders"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Pending filter finds the application
	w = doJSON(router, "GET", "/api/admin/sellers?status=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data struct {
			Sellers []service.OnboardingState `json:"sellers"`
			Count   int                       `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Equal(t, 1, listResp.Data.Count)
	assert.Equal(t, applicant.ID, listResp.Data.Sellers[0].UserID)

	// Approve
	path := fmt.Sprintf("/api/admin/sellers/%d/status", applicant.ID)
	w = doJSON(router, "PUT", path, adminToken, gin.H{
		"status":  "approved",
		"remarks": "verified",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var decideResp struct {
		Data service.OnboardingState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decideResp))
	assert.Equal(t, model.OnboardingApproved, decideResp.Data.Status)
	assert.Equal(t, model.RoleSeller, decideResp.Data.Role)

	// A second verdict on the same application conflicts
	w = doJSON(router, "PUT", path, adminToken, gin.H{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminSellerReview_InvalidDecision(t *testing.T) {
	router, testDB := setupOnboardingControllerTest(t)
	applicant, applicantToken := createTestUser(t, testDB, "applicant@example.com", model.RoleUser)
	_, adminToken := createTestUser(t, testDB, "admin@example.com", model.RoleAdmin)

	w := doJSON(router, "POST", "/api/seller/onboarding/submit", applicantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	path := fmt.Sprintf("/api/admin/sellers/%d/status", applicant.ID)
	w = doJSON(router, "PUT", path, adminToken, gin.H{"status": "escalated"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "PUT", "/api/admin/sellers/9999/status", adminToken, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminSellerExport(t *testing.T) {
	router, testDB := setupOnboardingControllerTest(t)
	_, applicantToken := createTestUser(t, testDB, "applicant@example.com", model.RoleUser)
	_, adminToken := createTestUser(t, testDB, "admin@example.com", model.RoleAdmin)

	w := doJSON(router, "POST", "/api/seller/onboarding/submit", applicantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/api/admin/sellers/export", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sellers-")
	assert.NotEmpty(t, w.Body.Bytes())
}
