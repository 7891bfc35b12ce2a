package models

import (
	"time"

	"nidhi/internal/uuid"

	"gorm.io/gorm"
)

// PortfolioSnapshot is a persisted daily rollup of a user's portfolio,
// one row per user per calendar day, upserted idempotently. Used only for
// historical trend charts — no Base embed, no soft deletes.
type PortfolioSnapshot struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"type:uuid;not null;uniqueIndex:uq_snapshots_user_date" json:"user_id"`
	Date             time.Time `gorm:"not null;uniqueIndex:uq_snapshots_user_date" json:"date"`
	TotalValue       float64   `gorm:"not null" json:"total_value"`
	TotalInvested    float64   `gorm:"not null" json:"total_invested"`
	TotalLiabilities float64   `gorm:"not null" json:"total_liabilities"`
	NetWorth         float64   `gorm:"not null" json:"net_worth"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *PortfolioSnapshot) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	return nil
}
