package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	DisplayName      string     `json:"display_name"`
	DisplayCurrency  string     `gorm:"not null;default:'AED'" json:"display_currency"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Assets []Asset `gorm:"foreignKey:UserID" json:"assets,omitempty"`
	Goals  []Goal  `gorm:"foreignKey:UserID" json:"goals,omitempty"`
}
