package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleSeller UserRole = "seller"
	RoleAdmin  UserRole = "admin"
)

// OnboardingStatus tracks a user's progress toward becoming an approved seller.
// Transitions: none -> draft -> pending -> {approved, rejected}; a rejected
// user may re-enter draft/pending by saving or submitting again.
type OnboardingStatus string

const (
	OnboardingNone     OnboardingStatus = "none"
	OnboardingDraft    OnboardingStatus = "draft"
	OnboardingPending  OnboardingStatus = "pending"
	OnboardingApproved OnboardingStatus = "approved"
	OnboardingRejected OnboardingStatus = "rejected"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Phone        string         `json:"phone"`
	ProfileImage string         `json:"profile_image"`
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Seller onboarding record, embedded in the user row.
	// The profile document is merged, never replaced, on draft saves.
	OnboardingStatus  OnboardingStatus `gorm:"type:varchar(20);default:'none';index" json:"onboarding_status"`
	BusinessProfile   *BusinessProfile `gorm:"type:jsonb" json:"business_profile,omitempty"`
	OnboardingRemarks string           `gorm:"type:text" json:"onboarding_remarks,omitempty"`
	SubmittedAt       *time.Time       `json:"submitted_at,omitempty"`
	ReviewedAt        *time.Time       `json:"reviewed_at,omitempty"`
	ReviewedBy        *uint            `json:"reviewed_by,omitempty"`

	Products  []Product  `gorm:"foreignKey:SellerID" json:"-"`
	Addresses []Address  `gorm:"foreignKey:UserID" json:"-"`
	CartItems []CartItem `gorm:"foreignKey:UserID" json:"-"`
	Orders    []Order    `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
