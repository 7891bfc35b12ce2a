package models

// FXSetting holds a user's optional conversion overrides. When a rate is set
// it takes precedence over live forex quotes; zero means "use the live rate".
type FXSetting struct {
	Base
	UserID          string  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	USDToAED        float64 `json:"usd_to_aed"`
	INRToAED        float64 `json:"inr_to_aed"`
	DisplayCurrency string  `gorm:"not null;default:'AED'" json:"display_currency"`
}
