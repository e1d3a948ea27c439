package model

import (
	"time"

	"gorm.io/gorm"
)

type PasswordReset struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Email     string         `gorm:"not null;index" json:"email"`
	Code      string         `gorm:"type:varchar(10);not null;index" json:"-"`
	ExpiresAt time.Time      `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time     `json:"used_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

// IsExpired reports whether the code can no longer be used
func (p *PasswordReset) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}
