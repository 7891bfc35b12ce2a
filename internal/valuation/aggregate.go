package valuation

import (
	"sort"

	"github.com/samber/lo"

	"nidhi/internal/models"
)

// ConcentrationThreshold is the share of the portfolio above which a single
// category or currency bucket is flagged. Fixed business rule.
const ConcentrationThreshold = 40.0

// RiskBucket classifies a category for risk display.
type RiskBucket string

const (
	RiskEquity      RiskBucket = "Equity"
	RiskFixedIncome RiskBucket = "Fixed Income"
	RiskGold        RiskBucket = "Gold"
	RiskRealEstate  RiskBucket = "Real Estate"
	RiskOther       RiskBucket = "Other"
)

// riskBuckets maps each known category to its bucket. Categories not listed
// here intentionally fall through to Other.
var riskBuckets = map[models.AssetCategory]RiskBucket{
	models.AssetCategoryShares:         RiskEquity,
	models.AssetCategoryMutualFund:     RiskEquity,
	models.AssetCategorySIP:            RiskEquity,
	models.AssetCategoryFixedDeposit:   RiskFixedIncome,
	models.AssetCategoryPreciousMetals: RiskGold,
	models.AssetCategoryRealEstate:     RiskRealEstate,
}

// RiskBucketFor returns the risk bucket for a category. Total: every input
// maps to exactly one bucket, with Other as the explicit fallback.
func RiskBucketFor(category models.AssetCategory) RiskBucket {
	if b, ok := riskBuckets[category]; ok {
		return b
	}
	return RiskOther
}

// ValuedAsset pairs an asset with its resolved current value and the method
// label explaining where that value came from. Value and Invested are
// expressed in the AED base currency; RawValue stays in the asset's own
// currency so the per-currency breakdown can sum without conversion.
type ValuedAsset struct {
	Asset    *models.Asset `json:"asset"`
	Method   ValueMethod   `json:"method"`
	RawValue float64       `json:"raw_value"`
	Value    float64       `json:"value"`
	Invested float64       `json:"invested"`
}

// CategorySummary holds the running totals for one asset category, in AED.
type CategorySummary struct {
	Category      models.AssetCategory `json:"category"`
	RiskBucket    RiskBucket           `json:"risk_bucket"`
	Invested      float64              `json:"invested"`
	CurrentValue  float64              `json:"current_value"`
	ProfitLoss    float64              `json:"profit_loss"`
	Count         int                  `json:"count"`
	AllocationPct float64              `json:"allocation_pct"`
	Concentrated  bool                 `json:"concentrated"`
}

// CurrencySummary holds per-currency totals, summed in the holding currency
// without conversion.
type CurrencySummary struct {
	Currency     string  `json:"currency"`
	Invested     float64 `json:"invested"`
	CurrentValue float64 `json:"current_value"`
	ProfitLoss   float64 `json:"profit_loss"`
	Count        int     `json:"count"`
	SharePct     float64 `json:"share_pct"`
	Concentrated bool    `json:"concentrated"`
}

// Overview is the derived, never-persisted portfolio rollup.
type Overview struct {
	TotalInvested     float64           `json:"total_invested"`
	TotalCurrentValue float64           `json:"total_current_value"`
	ProfitLoss        float64           `json:"profit_loss"`
	ProfitLossPct     float64           `json:"profit_loss_pct"`
	AssetCount        int               `json:"asset_count"`
	ByCategory        []CategorySummary `json:"by_category"`
	ByCurrency        []CurrencySummary `json:"by_currency"`
}

// Aggregate folds valued assets into the portfolio overview: category and
// currency totals, allocation percentages, and concentration flags.
func Aggregate(assets []ValuedAsset) Overview {
	o := Overview{AssetCount: len(assets)}

	for _, v := range assets {
		o.TotalInvested += v.Invested
		o.TotalCurrentValue += v.Value
	}
	o.ProfitLoss = o.TotalCurrentValue - o.TotalInvested
	if o.TotalInvested > 0 {
		o.ProfitLossPct = o.ProfitLoss / o.TotalInvested * 100
	}

	byCategory := lo.GroupBy(assets, func(v ValuedAsset) models.AssetCategory {
		return v.Asset.Category
	})
	for _, category := range models.AssetCategories {
		group, ok := byCategory[category]
		if !ok {
			continue
		}
		s := CategorySummary{Category: category, RiskBucket: RiskBucketFor(category), Count: len(group)}
		for _, v := range group {
			s.Invested += v.Invested
			s.CurrentValue += v.Value
		}
		s.ProfitLoss = s.CurrentValue - s.Invested
		s.AllocationPct = allocationPct(s.CurrentValue, o.TotalCurrentValue)
		s.Concentrated = s.AllocationPct > ConcentrationThreshold
		o.ByCategory = append(o.ByCategory, s)
	}

	byCurrency := lo.GroupBy(assets, func(v ValuedAsset) string {
		return v.Asset.Currency
	})
	// The currency share is judged on converted values so mixed portfolios
	// compare like with like; the bucket sums themselves stay unconverted.
	for _, currency := range lo.Keys(byCurrency) {
		group := byCurrency[currency]
		s := CurrencySummary{Currency: currency, Count: len(group)}
		var converted float64
		for _, v := range group {
			s.Invested += v.Asset.TotalCost
			s.CurrentValue += v.RawValue
			converted += v.Value
		}
		s.ProfitLoss = s.CurrentValue - s.Invested
		s.SharePct = allocationPct(converted, o.TotalCurrentValue)
		s.Concentrated = s.SharePct > ConcentrationThreshold
		o.ByCurrency = append(o.ByCurrency, s)
	}
	// Map iteration order is random; keep the response stable.
	sort.Slice(o.ByCurrency, func(i, j int) bool { return o.ByCurrency[i].Currency < o.ByCurrency[j].Currency })

	return o
}

// allocationPct guards the zero-total case: an empty portfolio allocates 0%.
func allocationPct(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
