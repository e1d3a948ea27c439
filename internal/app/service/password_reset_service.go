package service

import (
	"errors"
	"time"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/repository"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/logger"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidResetCode = errors.New("invalid or expired reset code")

// ResetCodeExpiry is the duration for which a reset code is valid
const ResetCodeExpiry = 15 * time.Minute

type PasswordResetService interface {
	RequestReset(email string) error
	ResetPassword(email, code, newPassword string) error
	PurgeExpired() (int64, error)
}

type passwordResetService struct {
	resetRepo repository.PasswordResetRepository
	userRepo  repository.UserRepository
}

func NewPasswordResetService(
	resetRepo repository.PasswordResetRepository,
	userRepo repository.UserRepository,
) PasswordResetService {
	return &passwordResetService{
		resetRepo: resetRepo,
		userRepo:  userRepo,
	}
}

func (s *passwordResetService) RequestReset(email string) error {
	logger.Info("Processing password reset request", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Report success either way to prevent user enumeration
			logger.Warn("Password reset requested for non-existent email", map[string]interface{}{
				"email": email,
			})
			return nil
		}
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	code, err := util.GenerateResetCode()
	if err != nil {
		logger.Error("Failed to generate reset code", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	reset := &model.PasswordReset{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(ResetCodeExpiry),
	}

	if err := s.resetRepo.Create(reset); err != nil {
		logger.Error("Failed to store password reset code", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	// TODO: deliver the code through the transactional mail provider once
	// the SMTP credentials are provisioned
	logger.Info("Password reset code generated (email delivery not wired)", map[string]interface{}{
		"email":      email,
		"user_id":    user.ID,
		"expires_at": reset.ExpiresAt,
	})

	return nil
}

func (s *passwordResetService) ResetPassword(email, code, newPassword string) error {
	logger.Info("Processing password reset", map[string]interface{}{
		"email": email,
	})

	reset, err := s.resetRepo.FindActiveByEmailAndCode(email, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Invalid reset code provided", map[string]interface{}{
				"email": email,
			})
			return ErrInvalidResetCode
		}
		logger.Error("Failed to look up reset code", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	user, err := s.userRepo.FindByEmail(reset.Email)
	if err != nil {
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"email": reset.Email,
		})
		return err
	}

	hashedPassword, err := util.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update user password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	if err := s.resetRepo.MarkUsed(reset); err != nil {
		// Password was already updated; the code will age out regardless
		logger.Error("Failed to mark reset code as used", err, map[string]interface{}{
			"reset_id": reset.ID,
		})
	}

	logger.Info("Password reset successful", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return nil
}

// PurgeExpired removes stale reset codes. Invoked on a schedule.
func (s *passwordResetService) PurgeExpired() (int64, error) {
	removed, err := s.resetRepo.DeleteExpired()
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.Info("Purged expired password reset codes", map[string]interface{}{
			"removed": removed,
		})
	}
	return removed, nil
}
