package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
	"nidhi/internal/valuation"
)

// goalService handles savings goals and growth projections.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new goal for the user.
func (s *goalService) CreateGoal(userID, name string, targetAmount float64, horizonYears int, expectedRate, startingCorpus float64) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if horizonYears <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "horizon must be at least one year")
	}
	if expectedRate < 0 || startingCorpus < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rate and starting corpus must not be negative")
	}

	goal := &models.Goal{
		UserID:         userID,
		Name:           name,
		TargetAmount:   targetAmount,
		HorizonYears:   horizonYears,
		ExpectedRate:   expectedRate,
		StartingCorpus: startingCorpus,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals retrieves a paginated list of the user's goals.
func (s *goalService) GetUserGoals(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID retrieves a goal by ID for a specific user.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies partial updates to a goal. Nil fields are left as-is.
func (s *goalService) UpdateGoal(userID, goalID, name string, targetAmount *float64, horizonYears *int, expectedRate, startingCorpus *float64) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		goal.Name = name
	}
	if targetAmount != nil {
		if *targetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		goal.TargetAmount = *targetAmount
	}
	if horizonYears != nil {
		if *horizonYears <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "horizon must be at least one year")
		}
		goal.HorizonYears = *horizonYears
	}
	if expectedRate != nil {
		if *expectedRate < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rate must not be negative")
		}
		goal.ExpectedRate = *expectedRate
	}
	if startingCorpus != nil {
		if *startingCorpus < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "starting corpus must not be negative")
		}
		goal.StartingCorpus = *startingCorpus
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// DeleteGoal soft-deletes a goal.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetGoalProgress projects the goal's starting corpus at its expected rate
// over its horizon and reports progress against the target.
func (s *goalService) GetGoalProgress(userID, goalID string) (*valuation.GoalProgress, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	progress := valuation.TrackGoal(goal.StartingCorpus, goal.ExpectedRate, goal.HorizonYears, goal.TargetAmount)
	return &progress, nil
}

// GetProjectionTable builds the fixed rate-by-horizon growth table for an
// arbitrary corpus.
func (s *goalService) GetProjectionTable(corpus float64) []valuation.ProjectionCell {
	return valuation.ProjectionTable(corpus)
}
