package models

import (
	"time"

	"nidhi/internal/uuid"

	"gorm.io/gorm"
)

// AssetTransactionType represents the type of ledger event on an asset.
type AssetTransactionType string

const (
	AssetTransactionBuy         AssetTransactionType = "buy"
	AssetTransactionSell        AssetTransactionType = "sell"
	AssetTransactionInstallment AssetTransactionType = "installment"
	AssetTransactionDividend    AssetTransactionType = "dividend"
)

// AssetTransaction is an append-only ledger event tied to an asset.
// Rows are immutable once recorded except for deletion; deleting one forces
// the running totals of every later row for the same asset to be recomputed.
// Hard-deleted on removal, so no Base embed.
type AssetTransaction struct {
	ID      string               `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID string               `gorm:"type:uuid;not null;index" json:"asset_id"`
	Type    AssetTransactionType `gorm:"not null" json:"type"`
	Date    time.Time            `gorm:"not null" json:"date"`

	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	Fees         float64 `json:"fees"`
	// Amount is signed: negative for money put in (buy, installment),
	// positive for money taken out (sell, dividend).
	Amount float64 `gorm:"not null" json:"amount"`
	Notes  string  `json:"notes,omitempty"`

	// Running totals derived from all rows up to and including this one,
	// ordered by date then creation. Recomputed on deletion of earlier rows.
	HoldingsAfter   float64 `json:"holdings_after"`
	AvgCostAfter    float64 `json:"avg_cost_after"`
	RealizedPLAfter float64 `json:"realized_pl_after"`

	CreatedAt time.Time `json:"created_at"`

	Asset Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (t *AssetTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}
