package models

import "time"

// AssetCategory represents the class of a holding.
type AssetCategory string

const (
	AssetCategoryPreciousMetals AssetCategory = "precious_metals"
	AssetCategoryRealEstate     AssetCategory = "real_estate"
	AssetCategoryFixedDeposit   AssetCategory = "fixed_deposit"
	AssetCategorySIP            AssetCategory = "sip"
	AssetCategoryMutualFund     AssetCategory = "mutual_fund"
	AssetCategoryShares         AssetCategory = "shares"
)

// AssetCategories lists every supported category, in display order.
var AssetCategories = []AssetCategory{
	AssetCategoryPreciousMetals,
	AssetCategoryRealEstate,
	AssetCategoryFixedDeposit,
	AssetCategorySIP,
	AssetCategoryMutualFund,
	AssetCategoryShares,
}

// Asset represents a single user holding. Amounts are stored in the asset's
// own currency (AED or INR); cross-currency conversion happens at display time.
type Asset struct {
	Base
	UserID       string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string        `gorm:"not null" json:"name"`
	Category     AssetCategory `gorm:"not null;index" json:"category"`
	Currency     string        `gorm:"not null;default:'AED'" json:"currency"`
	PurchaseDate *time.Time    `json:"purchase_date,omitempty"`
	Quantity     float64       `json:"quantity"`
	Unit         string        `json:"unit,omitempty"` // e.g. grams, sqft, units, shares
	TotalCost    float64       `gorm:"not null" json:"total_cost"`
	CostPerUnit  float64       `json:"cost_per_unit"`

	// CurrentValue is system-computed unless ManualValue is set, in which
	// case the user-entered figure wins.
	CurrentValue *float64 `json:"current_value,omitempty"`
	ManualValue  bool     `gorm:"default:false" json:"manual_value"`

	// Fixed deposit fields
	Principal      *float64   `json:"principal,omitempty"`
	InterestRate   *float64   `json:"interest_rate,omitempty"` // annual, percent
	MaturityDate   *time.Time `json:"maturity_date,omitempty"`
	MaturityAmount *float64   `json:"maturity_amount,omitempty"`

	// Real estate fields
	Location     string   `json:"location,omitempty"`
	AreaSqft     *float64 `json:"area_sqft,omitempty"`
	RentalIncome *float64 `json:"rental_income,omitempty"` // monthly

	// Mutual fund / SIP fields
	SchemeCode string `json:"scheme_code,omitempty"`
	FolioNo    string `json:"folio_no,omitempty"`

	Notes string `json:"notes,omitempty"`

	Transactions []AssetTransaction `gorm:"foreignKey:AssetID" json:"transactions,omitempty"`
}
