package repository

import (
	"time"

	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/logger"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Create(reset *model.PasswordReset) error
	FindActiveByEmailAndCode(email, code string) (*model.PasswordReset, error)
	MarkUsed(reset *model.PasswordReset) error
	DeleteExpired() (int64, error)
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(reset *model.PasswordReset) error {
	if err := r.db.Create(reset).Error; err != nil {
		logger.Error("Failed to create password reset record", err, map[string]interface{}{
			"email": reset.Email,
		})
		return err
	}
	return nil
}

func (r *passwordResetRepository) FindActiveByEmailAndCode(email, code string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	err := r.db.
		Where("email = ? AND code = ? AND used_at IS NULL AND expires_at > ?", email, code, time.Now()).
		Order("created_at DESC").
		First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) MarkUsed(reset *model.PasswordReset) error {
	now := time.Now()
	reset.UsedAt = &now
	return r.db.Save(reset).Error
}

// DeleteExpired removes reset codes past their expiry. Returns the number of rows removed.
func (r *passwordResetRepository) DeleteExpired() (int64, error) {
	result := r.db.
		Where("expires_at < ?", time.Now()).
		Delete(&model.PasswordReset{})
	if result.Error != nil {
		logger.Error("Failed to purge expired password reset codes", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
