package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/service"
	apperrors "github.com/adhivedhanlr-maker/ecommerce-backend/internal/errors"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

var errNoProfileSections = errors.New("no recognized profile sections in payload")

// bindProfilePatch reads the body as either the wrapped
// {"businessProfile": {...}} shape or the bare sectioned document.
// An empty body yields an empty patch. A non-empty object carrying
// neither the wrapper key nor any known section is rejected rather
// than silently merged as nothing.
func bindProfilePatch(c *gin.Context) (*model.BusinessProfile, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return &model.BusinessProfile{}, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, err
	}

	var patch model.BusinessProfile
	if wrapped, ok := keys["businessProfile"]; ok {
		if err := json.Unmarshal(wrapped, &patch); err != nil {
			return nil, err
		}
		return &patch, nil
	}

	if err := json.Unmarshal(body, &patch); err != nil {
		return nil, err
	}
	if patch.IsEmpty() && len(keys) > 0 {
		return nil, errNoProfileSections
	}
	return &patch, nil
}

type OnboardingController struct {
	onboardingService service.OnboardingService
}

func NewOnboardingController(onboardingService service.OnboardingService) *OnboardingController {
	return &OnboardingController{onboardingService: onboardingService}
}

// GetStatus returns the caller's onboarding record
// GET /api/seller/onboarding/status
func (ctrl *OnboardingController) GetStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	state, err := ctrl.onboardingService.GetStatus(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to fetch onboarding status", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	respond(c, http.StatusOK, "Onboarding status fetched", state)
}

// SaveDraft merges a partial profile into the caller's draft
// POST /api/seller/onboarding/draft
func (ctrl *OnboardingController) SaveDraft(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	patch, err := bindProfilePatch(c)
	if err != nil {
		log.Warn("Invalid draft payload", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid draft payload")
		return
	}

	state, err := ctrl.onboardingService.SaveDraft(userID, patch)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to save onboarding draft", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	respond(c, http.StatusOK, "Draft saved", state)
}

// Submit moves the caller's application into the review queue
// POST /api/seller/onboarding/submit
func (ctrl *OnboardingController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	// The submit body is optional; it may carry a final partial payload
	patch, err := bindProfilePatch(c)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid submission payload")
		return
	}

	state, err := ctrl.onboardingService.Submit(userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidPAN),
			errors.Is(err, service.ErrInvalidGSTIN),
			errors.Is(err, service.ErrInvalidAadhaar),
			errors.Is(err, service.ErrInvalidIFSC),
			errors.Is(err, service.ErrInvalidPincode):
			apperrors.BadRequest(c, apperrors.OnboardingInvalidField, err.Error())
		default:
			log.Error("Failed to submit onboarding application", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	respond(c, http.StatusOK, "Application submitted for review", state)
}
