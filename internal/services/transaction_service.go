package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
)

// transactionService handles the per-asset transaction ledger.
type transactionService struct {
	db           *gorm.DB
	assetService AssetServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, assetService AssetServicer) TransactionServicer {
	return &transactionService{
		db:           db,
		assetService: assetService,
	}
}

// RecordTransaction appends a ledger event to an asset and recomputes the
// running totals. Backdated rows are allowed; the whole ledger is replayed in
// date order so every row's totals stay consistent.
func (s *transactionService) RecordTransaction(
	userID, assetID string,
	txType models.AssetTransactionType,
	date time.Time,
	quantity, pricePerUnit, fees, amount float64,
	notes string,
) (*models.AssetTransaction, error) {
	switch txType {
	case models.AssetTransactionBuy, models.AssetTransactionSell, models.AssetTransactionInstallment:
		if quantity <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be greater than zero")
		}
		if pricePerUnit < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "price per unit must not be negative")
		}
	case models.AssetTransactionDividend:
		if amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "dividend amount must be greater than zero")
		}
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported transaction type")
	}
	if fees < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "fees must not be negative")
	}

	if date.IsZero() {
		date = time.Now()
	}

	asset, err := s.assetService.GetAssetByID(userID, assetID)
	if err != nil {
		return nil, err
	}

	transaction := &models.AssetTransaction{
		AssetID:      asset.ID,
		Type:         txType,
		Date:         date,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		Fees:         fees,
		Amount:       signedAmount(txType, quantity, pricePerUnit, fees, amount),
		Notes:        notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.replayLedger(tx, asset)
	})
	if err != nil {
		return nil, err
	}

	// Reload so the caller sees the running totals the replay assigned.
	if err := s.db.Where("id = ?", transaction.ID).First(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetAssetTransactions retrieves a paginated list of an asset's ledger,
// newest first.
func (s *transactionService) GetAssetTransactions(userID, assetID string, page pagination.PageRequest) (*pagination.PageResponse[models.AssetTransaction], error) {
	asset, err := s.assetService.GetAssetByID(userID, assetID)
	if err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.AssetTransaction{}).Where("asset_id = ?", asset.ID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.AssetTransaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteTransaction hard-deletes a ledger row and replays the remaining
// ledger so later rows' running totals stay consistent.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	var transaction models.AssetTransaction
	if err := s.db.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionMissing
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Ownership check goes through the asset.
	asset, err := s.assetService.GetAssetByID(userID, transaction.AssetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			return apperrors.ErrTransactionMissing
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.replayLedger(tx, asset)
	})
}

// signedAmount normalizes the cash amount of a ledger event: negative for
// money put in, positive for money taken out. An explicit amount wins; a zero
// amount is derived from quantity, price and fees.
func signedAmount(txType models.AssetTransactionType, quantity, pricePerUnit, fees, amount float64) float64 {
	switch txType {
	case models.AssetTransactionBuy, models.AssetTransactionInstallment:
		if amount != 0 {
			if amount > 0 {
				return -amount
			}
			return amount
		}
		return -(quantity*pricePerUnit + fees)
	case models.AssetTransactionSell:
		if amount != 0 {
			if amount < 0 {
				return -amount
			}
			return amount
		}
		return quantity*pricePerUnit - fees
	default: // dividend
		if amount < 0 {
			return -amount
		}
		return amount
	}
}

// replayLedger recomputes the running totals of every ledger row for the
// asset in date order, then syncs the asset's holdings, cost basis and
// average cost. Must run inside a database transaction.
func (s *transactionService) replayLedger(tx *gorm.DB, asset *models.Asset) error {
	var rows []models.AssetTransaction
	if err := tx.Where("asset_id = ?", asset.ID).
		Order("date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return nil
	}

	var holdings, cost, avgCost, realized float64
	for i := range rows {
		row := &rows[i]
		switch row.Type {
		case models.AssetTransactionBuy, models.AssetTransactionInstallment:
			cost += row.Quantity*row.PricePerUnit + row.Fees
			holdings += row.Quantity
			if holdings > 0 {
				avgCost = cost / holdings
			}
		case models.AssetTransactionSell:
			if row.Quantity > holdings {
				return apperrors.ErrInsufficientUnits
			}
			proceeds := row.Quantity*row.PricePerUnit - row.Fees
			realized += proceeds - avgCost*row.Quantity
			cost -= avgCost * row.Quantity
			holdings -= row.Quantity
			if holdings == 0 {
				cost = 0
				avgCost = 0
			}
		case models.AssetTransactionDividend:
			realized += row.Amount
		}

		if row.HoldingsAfter != holdings || row.AvgCostAfter != avgCost || row.RealizedPLAfter != realized {
			updates := map[string]interface{}{
				"holdings_after":    holdings,
				"avg_cost_after":    avgCost,
				"realized_pl_after": realized,
			}
			if err := tx.Model(&models.AssetTransaction{}).Where("id = ?", row.ID).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
	}

	updates := map[string]interface{}{
		"quantity":      holdings,
		"total_cost":    cost,
		"cost_per_unit": avgCost,
	}
	if err := tx.Model(&models.Asset{}).Where("id = ?", asset.ID).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
