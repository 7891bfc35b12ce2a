package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nidhi/internal/models"
)

func valued(category models.AssetCategory, currency string, invested, current float64) ValuedAsset {
	return ValuedAsset{
		Asset:    &models.Asset{Category: category, Currency: currency, TotalCost: invested},
		Method:   MethodManual,
		RawValue: current,
		Value:    current,
		Invested: invested,
	}
}

func TestAggregateCategoryTotals(t *testing.T) {
	assets := []ValuedAsset{
		valued(models.AssetCategoryShares, "AED", 100, 150),
		valued(models.AssetCategoryShares, "AED", 200, 180),
	}

	o := Aggregate(assets)

	assert.InDelta(t, 300.0, o.TotalInvested, 1e-9)
	assert.InDelta(t, 330.0, o.TotalCurrentValue, 1e-9)
	assert.InDelta(t, 30.0, o.ProfitLoss, 1e-9)
	assert.InDelta(t, 10.0, o.ProfitLossPct, 1e-9)

	require.Len(t, o.ByCategory, 1)
	cat := o.ByCategory[0]
	assert.Equal(t, models.AssetCategoryShares, cat.Category)
	assert.Equal(t, RiskEquity, cat.RiskBucket)
	assert.InDelta(t, 300.0, cat.Invested, 1e-9)
	assert.InDelta(t, 330.0, cat.CurrentValue, 1e-9)
	assert.InDelta(t, 30.0, cat.ProfitLoss, 1e-9)
	assert.Equal(t, 2, cat.Count)
	// Lone category owns 100% of the portfolio, well past the 40% flag.
	assert.InDelta(t, 100.0, cat.AllocationPct, 1e-9)
	assert.True(t, cat.Concentrated)
}

func TestAggregateCurrencyBuckets(t *testing.T) {
	assets := []ValuedAsset{
		valued(models.AssetCategoryShares, "AED", 100, 150),
		valued(models.AssetCategoryMutualFund, "INR", 50000, 60000),
		valued(models.AssetCategoryFixedDeposit, "INR", 20000, 21000),
	}

	o := Aggregate(assets)

	require.Len(t, o.ByCurrency, 2)
	// Sorted by currency code for a stable response.
	assert.Equal(t, "AED", o.ByCurrency[0].Currency)
	assert.Equal(t, "INR", o.ByCurrency[1].Currency)

	inr := o.ByCurrency[1]
	// Raw sums, no conversion.
	assert.InDelta(t, 70000.0, inr.Invested, 1e-9)
	assert.InDelta(t, 81000.0, inr.CurrentValue, 1e-9)
	assert.Equal(t, 2, inr.Count)
	assert.True(t, inr.Concentrated)
}

func TestAggregateEmptyPortfolio(t *testing.T) {
	o := Aggregate(nil)
	assert.Zero(t, o.TotalInvested)
	assert.Zero(t, o.TotalCurrentValue)
	assert.Zero(t, o.ProfitLossPct)
	assert.Empty(t, o.ByCategory)
	assert.Empty(t, o.ByCurrency)
}

func TestAggregateZeroValueAllocation(t *testing.T) {
	// Total current value of zero must yield 0% allocations, not NaN.
	assets := []ValuedAsset{
		valued(models.AssetCategoryShares, "AED", 0, 0),
	}
	o := Aggregate(assets)
	require.Len(t, o.ByCategory, 1)
	assert.Zero(t, o.ByCategory[0].AllocationPct)
	assert.False(t, o.ByCategory[0].Concentrated)
}

func TestAggregateLossesAllowed(t *testing.T) {
	assets := []ValuedAsset{
		valued(models.AssetCategoryShares, "AED", 1000, 700),
	}
	o := Aggregate(assets)
	assert.InDelta(t, -300.0, o.ProfitLoss, 1e-9)
	assert.InDelta(t, -30.0, o.ProfitLossPct, 1e-9)
}

func TestRiskBucketFor(t *testing.T) {
	tests := []struct {
		category models.AssetCategory
		want     RiskBucket
	}{
		{models.AssetCategoryShares, RiskEquity},
		{models.AssetCategoryMutualFund, RiskEquity},
		{models.AssetCategorySIP, RiskEquity},
		{models.AssetCategoryFixedDeposit, RiskFixedIncome},
		{models.AssetCategoryPreciousMetals, RiskGold},
		{models.AssetCategoryRealEstate, RiskRealEstate},
		{models.AssetCategory("collectibles"), RiskOther}, // explicit fallback
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskBucketFor(tt.category), string(tt.category))
	}
}

func TestRiskBucketTotalOverKnownCategories(t *testing.T) {
	// Every declared category must map to a bucket other than the fallback.
	for _, category := range models.AssetCategories {
		assert.NotEqual(t, RiskOther, RiskBucketFor(category), string(category))
	}
}
