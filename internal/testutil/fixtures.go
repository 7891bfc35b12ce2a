package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"nidhi/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:           email,
		Password:        string(hash),
		DisplayCurrency: "AED",
		IsActive:        true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAsset creates an asset of the given category with the given cost.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID string, category models.AssetCategory, totalCost float64) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Asset %d", nextID()),
		Category:  category,
		Currency:  "AED",
		TotalCost: totalCost,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestFixedDeposit creates a fixed deposit asset with the given
// principal, annual rate and term.
func CreateTestFixedDeposit(t *testing.T, db *gorm.DB, userID string, principal, ratePct float64, purchase, maturity time.Time) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:       userID,
		Name:         fmt.Sprintf("Test FD %d", nextID()),
		Category:     models.AssetCategoryFixedDeposit,
		Currency:     "AED",
		PurchaseDate: &purchase,
		TotalCost:    principal,
		Principal:    &principal,
		InterestRate: &ratePct,
		MaturityDate: &maturity,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test fixed deposit: %v", err)
	}
	return asset
}

// CreateTestGoal creates a goal with the given target and horizon.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target float64, horizonYears int) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:   target,
		HorizonYears:   horizonYears,
		ExpectedRate:   10,
		StartingCorpus: 0,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
