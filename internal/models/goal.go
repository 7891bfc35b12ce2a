package models

// Goal represents a named savings goal tracked against projected growth of a
// starting corpus at a fixed expected annual return.
type Goal struct {
	Base
	UserID         string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string  `gorm:"not null" json:"name"`
	TargetAmount   float64 `gorm:"not null" json:"target_amount"`
	HorizonYears   int     `gorm:"not null" json:"horizon_years"`
	ExpectedRate   float64 `gorm:"not null" json:"expected_rate"` // annual, percent
	StartingCorpus float64 `gorm:"not null" json:"starting_corpus"`
}
