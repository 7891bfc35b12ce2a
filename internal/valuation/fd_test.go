package valuation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nidhi/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func f64(v float64) *float64 { return &v }

func TestAccruedInterest(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		purchase  *time.Time
		asOf      time.Time
		want      float64
	}{
		{"one_year", 100000, 7.5, datePtr(2023, 1, 1), date(2024, 1, 1), 100000 * 0.075},
		{"half_year", 100000, 10, datePtr(2023, 1, 1), date(2023, 7, 2), 100000 * 0.10 * (182.0 / 365)},
		{"zero_principal", 0, 7.5, datePtr(2023, 1, 1), date(2024, 1, 1), 0},
		{"zero_rate", 100000, 0, datePtr(2023, 1, 1), date(2024, 1, 1), 0},
		{"no_purchase_date", 100000, 7.5, nil, date(2024, 1, 1), 0},
		{"same_day", 100000, 7.5, datePtr(2024, 1, 1), date(2024, 1, 1), 0},
		{"as_of_before_purchase", 100000, 7.5, datePtr(2024, 6, 1), date(2024, 1, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AccruedInterest(tt.principal, tt.rate, tt.purchase, tt.asOf)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFDCurrentValue(t *testing.T) {
	got := FDCurrentValue(50000, 6, datePtr(2023, 1, 1), date(2024, 1, 1))
	assert.InDelta(t, 53000, got, 1e-9)
}

func TestMaturityAmount(t *testing.T) {
	t.Run("annual_compounding", func(t *testing.T) {
		got := MaturityAmount(100000, 8, datePtr(2023, 1, 1), datePtr(2026, 1, 1))
		require.NotNil(t, got)
		// Three 365-day years plus the 2024 leap day.
		years := (3*365 + 1) / 365.0
		assert.InDelta(t, 100000*math.Pow(1.08, years), *got, 0.01)
	})

	t.Run("missing_inputs", func(t *testing.T) {
		assert.Nil(t, MaturityAmount(0, 8, datePtr(2023, 1, 1), datePtr(2026, 1, 1)))
		assert.Nil(t, MaturityAmount(100000, 0, datePtr(2023, 1, 1), datePtr(2026, 1, 1)))
		assert.Nil(t, MaturityAmount(100000, 8, nil, datePtr(2026, 1, 1)))
		assert.Nil(t, MaturityAmount(100000, 8, datePtr(2023, 1, 1), nil))
	})

	t.Run("monotonic_in_rate_and_horizon", func(t *testing.T) {
		base := MaturityAmount(100000, 6, datePtr(2023, 1, 1), datePtr(2026, 1, 1))
		higherRate := MaturityAmount(100000, 7, datePtr(2023, 1, 1), datePtr(2026, 1, 1))
		longerTerm := MaturityAmount(100000, 6, datePtr(2023, 1, 1), datePtr(2027, 1, 1))
		require.NotNil(t, base)
		require.NotNil(t, higherRate)
		require.NotNil(t, longerTerm)
		assert.Greater(t, *higherRate, *base)
		assert.Greater(t, *longerTerm, *base)
	})
}

func TestEffectiveCurrentValue(t *testing.T) {
	asOf := date(2025, 6, 1)

	t.Run("manual_override_wins", func(t *testing.T) {
		// Manual override AND past maturity AND accruable inputs:
		// highest priority must win.
		asset := &models.Asset{
			Category:       models.AssetCategoryFixedDeposit,
			TotalCost:      100000,
			ManualValue:    true,
			CurrentValue:   f64(123456),
			Principal:      f64(100000),
			InterestRate:   f64(7),
			PurchaseDate:   datePtr(2023, 1, 1),
			MaturityDate:   datePtr(2024, 1, 1),
			MaturityAmount: f64(107000),
		}
		v, method := EffectiveCurrentValue(asset, asOf)
		assert.Equal(t, MethodManual, method)
		assert.Equal(t, 123456.0, v)
	})

	t.Run("maturity_after_manual", func(t *testing.T) {
		asset := &models.Asset{
			TotalCost:      100000,
			Principal:      f64(100000),
			InterestRate:   f64(7),
			PurchaseDate:   datePtr(2023, 1, 1),
			MaturityDate:   datePtr(2024, 1, 1),
			MaturityAmount: f64(107000),
		}
		v, method := EffectiveCurrentValue(asset, asOf)
		assert.Equal(t, MethodMaturity, method)
		assert.Equal(t, 107000.0, v)
	})

	t.Run("accrued_when_not_matured", func(t *testing.T) {
		asset := &models.Asset{
			TotalCost:    100000,
			Principal:    f64(100000),
			InterestRate: f64(7),
			PurchaseDate: datePtr(2025, 1, 1),
			MaturityDate: datePtr(2026, 1, 1),
		}
		v, method := EffectiveCurrentValue(asset, asOf)
		assert.Equal(t, MethodAccrued, method)
		assert.Greater(t, v, 100000.0)
	})

	t.Run("recorded_value_without_manual_flag", func(t *testing.T) {
		// A NAV refresh writes current_value without setting the manual
		// flag; the recorded value must still surface.
		asset := &models.Asset{
			Category:     models.AssetCategoryMutualFund,
			TotalCost:    10000,
			CurrentValue: f64(12000),
		}
		v, method := EffectiveCurrentValue(asset, asOf)
		assert.Equal(t, MethodMarket, method)
		assert.Equal(t, 12000.0, v)
	})

	t.Run("accrued_before_recorded_value", func(t *testing.T) {
		// A deposit with accruable inputs keeps accruing even when a stale
		// current_value is recorded.
		asset := &models.Asset{
			Category:     models.AssetCategoryFixedDeposit,
			TotalCost:    100000,
			CurrentValue: f64(90000),
			Principal:    f64(100000),
			InterestRate: f64(7),
			PurchaseDate: datePtr(2025, 1, 1),
			MaturityDate: datePtr(2026, 1, 1),
		}
		v, method := EffectiveCurrentValue(asset, asOf)
		assert.Equal(t, MethodAccrued, method)
		assert.Greater(t, v, 100000.0)
	})

	t.Run("principal_fallback", func(t *testing.T) {
		asset := &models.Asset{TotalCost: 100000, Principal: f64(95000)}
		v, method := EffectiveCurrentValue(asset, asOf)
		assert.Equal(t, MethodPrincipal, method)
		assert.Equal(t, 95000.0, v)
	})

	t.Run("total_cost_fallback", func(t *testing.T) {
		asset := &models.Asset{TotalCost: 100000}
		v, method := EffectiveCurrentValue(asset, asOf)
		assert.Equal(t, MethodPrincipal, method)
		assert.Equal(t, 100000.0, v)
	})
}

func TestClassifyMaturity(t *testing.T) {
	now := date(2025, 1, 1)

	tests := []struct {
		name      string
		maturity  *time.Time
		state     MaturityState
		remaining string
	}{
		{"unknown", nil, MaturityUnknown, ""},
		{"matured", datePtr(2024, 12, 1), Matured, ""},
		{"matures_today", datePtr(2025, 1, 1), Matured, ""},
		{"days", datePtr(2025, 1, 13), MaturityActive, "12 days left"},
		{"months", datePtr(2025, 5, 1), MaturityActive, "4 months left"},
		{"years", datePtr(2026, 3, 15), MaturityActive, "1y 2m left"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyMaturity(tt.maturity, now)
			assert.Equal(t, tt.state, got.State)
			assert.Equal(t, tt.remaining, got.Remaining)
		})
	}
}
