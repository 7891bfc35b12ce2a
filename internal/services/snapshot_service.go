package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
)

// snapshotService records daily portfolio rollups.
type snapshotService struct {
	db               *gorm.DB
	portfolioService PortfolioServicer
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB, portfolioService PortfolioServicer) SnapshotServicer {
	return &snapshotService{
		db:               db,
		portfolioService: portfolioService,
	}
}

// ComputeAndRecordSnapshots stores a portfolio snapshot, one per user per
// calendar day, for every active user. Re-running on the same day overwrites
// that day's row rather than inserting a duplicate.
func (s *snapshotService) ComputeAndRecordSnapshots(ctx context.Context, date time.Time) (int, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	var userIDs []string
	if err := s.db.Model(&models.User{}).
		Where("is_active = ?", true).
		Pluck("id", &userIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	for _, userID := range userIDs {
		overview, err := s.portfolioService.GetOverview(ctx, userID, date)
		if err != nil {
			return count, err
		}

		snapshot := &models.PortfolioSnapshot{
			UserID:        userID,
			Date:          day,
			TotalValue:    overview.TotalCurrentValue,
			TotalInvested: overview.TotalInvested,
			// No liability tracking yet; net worth equals total value.
			TotalLiabilities: 0,
			NetWorth:         overview.TotalCurrentValue,
		}

		var existing models.PortfolioSnapshot
		result := s.db.Where("user_id = ? AND date = ?", userID, day).First(&existing)
		if result.Error == nil {
			if err := s.db.Model(&existing).Updates(map[string]interface{}{
				"total_value":       snapshot.TotalValue,
				"total_invested":    snapshot.TotalInvested,
				"total_liabilities": snapshot.TotalLiabilities,
				"net_worth":         snapshot.NetWorth,
			}).Error; err != nil {
				return count, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		} else {
			if err := s.db.Create(snapshot).Error; err != nil {
				return count, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		count++
	}

	return count, nil
}

// GetSnapshots returns paginated snapshots for a user within a date range,
// oldest first so the result charts directly.
func (s *snapshotService) GetSnapshots(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.PortfolioSnapshot], error) {
	page.Defaults()

	base := s.db.Model(&models.PortfolioSnapshot{}).Where("user_id = ?", userID)
	if !from.IsZero() {
		base = base.Where("date >= ?", from)
	}
	if !to.IsZero() {
		base = base.Where("date <= ?", to)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.PortfolioSnapshot
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date ASC").
		Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
