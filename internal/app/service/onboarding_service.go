package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/logger"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/util"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrOnboardingNotFound   = errors.New("no onboarding record for user")
	ErrOnboardingNotPending = errors.New("onboarding is not awaiting review")
	ErrInvalidDecision      = errors.New("decision must be approved or rejected")
	ErrInvalidPAN           = errors.New("invalid PAN format")
	ErrInvalidGSTIN         = errors.New("invalid GSTIN format")
	ErrInvalidAadhaar       = errors.New("invalid Aadhaar format")
	ErrInvalidIFSC          = errors.New("invalid IFSC format")
	ErrInvalidPincode       = errors.New("invalid pincode format")
)

// OnboardingState is the view of a user's seller onboarding returned to
// the applicant and to admins.
type OnboardingState struct {
	UserID      uint                   `json:"user_id"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	Role        model.UserRole         `json:"role"`
	Status      model.OnboardingStatus `json:"status"`
	Profile     *model.BusinessProfile `json:"profile,omitempty"`
	Remarks     string                 `json:"remarks,omitempty"`
	SubmittedAt *time.Time             `json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time             `json:"reviewed_at,omitempty"`
}

type OnboardingService interface {
	GetStatus(userID uint) (*OnboardingState, error)
	SaveDraft(userID uint, patch *model.BusinessProfile) (*OnboardingState, error)
	Submit(userID uint, patch *model.BusinessProfile) (*OnboardingState, error)
	ListSellers(status model.OnboardingStatus) ([]OnboardingState, error)
	Decide(adminID, userID uint, approve bool, remarks string) (*OnboardingState, error)
	ExportSellers(status model.OnboardingStatus) ([]byte, error)
}

type onboardingService struct {
	userRepo repository.UserRepository
}

func NewOnboardingService(userRepo repository.UserRepository) OnboardingService {
	return &onboardingService{userRepo: userRepo}
}

func toOnboardingState(user *model.User) *OnboardingState {
	return &OnboardingState{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Status:      user.OnboardingStatus,
		Profile:     user.BusinessProfile,
		Remarks:     user.OnboardingRemarks,
		SubmittedAt: user.SubmittedAt,
		ReviewedAt:  user.ReviewedAt,
	}
}

func (s *onboardingService) GetStatus(userID uint) (*OnboardingState, error) {
	logger.Debug("Fetching onboarding status", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for onboarding status", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return toOnboardingState(user), nil
}

// SaveDraft merges the provided sections into the stored profile and marks
// the record as a draft. A save after rejection reopens the application;
// a save while pending keeps the already-entered data but pulls the
// application back out of the review queue.
func (s *onboardingService) SaveDraft(userID uint, patch *model.BusinessProfile) (*OnboardingState, error) {
	logger.Info("Saving onboarding draft", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for draft save", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if user.BusinessProfile == nil {
		user.BusinessProfile = &model.BusinessProfile{}
	}
	user.BusinessProfile.Merge(patch)
	user.OnboardingStatus = model.OnboardingDraft
	user.OnboardingRemarks = ""
	user.ReviewedAt = nil
	user.ReviewedBy = nil

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to persist onboarding draft", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Onboarding draft saved", map[string]interface{}{
		"user_id": userID,
		"status":  user.OnboardingStatus,
	})

	return toOnboardingState(user), nil
}

// Submit merges any final payload, validates the identifier fields that
// the review depends on, and moves the application into the review queue.
func (s *onboardingService) Submit(userID uint, patch *model.BusinessProfile) (*OnboardingState, error) {
	logger.Info("Submitting onboarding application", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for submission", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if user.BusinessProfile == nil {
		user.BusinessProfile = &model.BusinessProfile{}
	}
	user.BusinessProfile.Merge(patch)

	if err := validateIdentifiers(user.BusinessProfile); err != nil {
		logger.Warn("Onboarding submission failed identifier validation", map[string]interface{}{
			"user_id": userID,
			"reason":  err.Error(),
		})
		return nil, err
	}

	now := time.Now()
	user.OnboardingStatus = model.OnboardingPending
	user.SubmittedAt = &now
	user.OnboardingRemarks = ""
	user.ReviewedAt = nil
	user.ReviewedBy = nil

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to persist onboarding submission", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Onboarding application submitted", map[string]interface{}{
		"user_id": userID,
	})

	return toOnboardingState(user), nil
}

// validateIdentifiers checks the government and banking identifiers that
// are present on the profile. Absent fields are not an error here;
// completeness is judged by the reviewing admin.
func validateIdentifiers(profile *model.BusinessProfile) error {
	if profile.TaxLegal != nil {
		if pan := profile.TaxLegal.PANNumber; pan != nil && !util.IsValidPAN(*pan) {
			return ErrInvalidPAN
		}
		if gstin := profile.TaxLegal.GSTIN; gstin != nil && *gstin != "" && !util.IsValidGSTIN(*gstin) {
			return ErrInvalidGSTIN
		}
	}
	if profile.Owner != nil {
		if aadhaar := profile.Owner.AadhaarNumber; aadhaar != nil && !util.IsValidAadhaar(*aadhaar) {
			return ErrInvalidAadhaar
		}
	}
	if profile.Banking != nil {
		if ifsc := profile.Banking.IFSCCode; ifsc != nil && !util.IsValidIFSC(*ifsc) {
			return ErrInvalidIFSC
		}
	}
	if profile.Operations != nil {
		if pin := profile.Operations.Pincode; pin != nil && !util.IsValidPincode(*pin) {
			return ErrInvalidPincode
		}
	}
	return nil
}

func (s *onboardingService) ListSellers(status model.OnboardingStatus) ([]OnboardingState, error) {
	logger.Debug("Listing seller applications", map[string]interface{}{
		"status": status,
	})

	users, err := s.userRepo.ListOnboarding(status)
	if err != nil {
		logger.Error("Failed to list seller applications", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}

	states := make([]OnboardingState, 0, len(users))
	for i := range users {
		states = append(states, *toOnboardingState(&users[i]))
	}
	return states, nil
}

// Decide records an admin's verdict on a pending application. Approval
// promotes the applicant to seller; rejection returns a seller to a
// plain user. An admin who applied keeps the admin role either way.
func (s *onboardingService) Decide(adminID, userID uint, approve bool, remarks string) (*OnboardingState, error) {
	logger.Info("Recording onboarding decision", map[string]interface{}{
		"admin_id": adminID,
		"user_id":  userID,
		"approve":  approve,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for decision", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if user.OnboardingStatus == model.OnboardingNone {
		return nil, ErrOnboardingNotFound
	}
	if user.OnboardingStatus != model.OnboardingPending {
		logger.Warn("Decision rejected: application is not pending", map[string]interface{}{
			"user_id": userID,
			"status":  user.OnboardingStatus,
		})
		return nil, ErrOnboardingNotPending
	}

	now := time.Now()
	user.ReviewedAt = &now
	user.ReviewedBy = &adminID
	user.OnboardingRemarks = remarks

	if approve {
		user.OnboardingStatus = model.OnboardingApproved
		if user.Role != model.RoleAdmin {
			user.Role = model.RoleSeller
		}
	} else {
		user.OnboardingStatus = model.OnboardingRejected
		if user.Role != model.RoleAdmin {
			user.Role = model.RoleUser
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to persist onboarding decision", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Onboarding decision recorded", map[string]interface{}{
		"admin_id": adminID,
		"user_id":  userID,
		"status":   user.OnboardingStatus,
		"role":     user.Role,
	})

	return toOnboardingState(user), nil
}

// ExportSellers writes the current applications to an xlsx workbook for
// offline review and returns the file contents.
func (s *onboardingService) ExportSellers(status model.OnboardingStatus) ([]byte, error) {
	states, err := s.ListSellers(status)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sellers"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"User ID", "Name", "Email", "Role", "Status", "Business Name", "PAN", "GSTIN", "Submitted At", "Reviewed At", "Remarks"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, st := range states {
		var businessName, pan, gstin string
		if st.Profile != nil {
			if st.Profile.Identity != nil && st.Profile.Identity.BusinessName != nil {
				businessName = *st.Profile.Identity.BusinessName
			}
			if st.Profile.TaxLegal != nil {
				if st.Profile.TaxLegal.PANNumber != nil {
					pan = *st.Profile.TaxLegal.PANNumber
				}
				if st.Profile.TaxLegal.GSTIN != nil {
					gstin = *st.Profile.TaxLegal.GSTIN
				}
			}
		}

		values := []interface{}{
			st.UserID,
			st.Name,
			st.Email,
			string(st.Role),
			string(st.Status),
			businessName,
			pan,
			gstin,
			formatExportTime(st.SubmittedAt),
			formatExportTime(st.ReviewedAt),
			st.Remarks,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write seller export workbook", err, nil)
		return nil, fmt.Errorf("write xlsx: %w", err)
	}

	logger.Info("Seller export generated", map[string]interface{}{
		"status": status,
		"rows":   len(states),
	})

	return buf.Bytes(), nil
}

func formatExportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
