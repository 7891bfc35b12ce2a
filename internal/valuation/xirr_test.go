package valuation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXIRR(t *testing.T) {
	t.Run("round_trip_ten_percent", func(t *testing.T) {
		flows := []Cashflow{
			{Date: date(2023, 1, 1), Amount: -1000},
			{Date: date(2024, 1, 1), Amount: 1100},
		}
		rate, err := XIRR(flows)
		require.NoError(t, err)
		assert.InDelta(t, 0.10, rate, 0.001)
	})

	t.Run("order_independent", func(t *testing.T) {
		flows := []Cashflow{
			{Date: date(2024, 1, 1), Amount: 1100},
			{Date: date(2023, 1, 1), Amount: -1000},
		}
		rate, err := XIRR(flows)
		require.NoError(t, err)
		assert.InDelta(t, 0.10, rate, 0.001)
	})

	t.Run("sip_like_flows", func(t *testing.T) {
		flows := []Cashflow{
			{Date: date(2023, 1, 1), Amount: -1000},
			{Date: date(2023, 4, 1), Amount: -1000},
			{Date: date(2023, 7, 1), Amount: -1000},
			{Date: date(2023, 10, 1), Amount: -1000},
			{Date: date(2024, 1, 1), Amount: 4300},
		}
		rate, err := XIRR(flows)
		require.NoError(t, err)
		assert.Greater(t, rate, 0.0)
		assert.Less(t, rate, 0.35)
	})

	t.Run("negative_return", func(t *testing.T) {
		flows := []Cashflow{
			{Date: date(2023, 1, 1), Amount: -1000},
			{Date: date(2024, 1, 1), Amount: 800},
		}
		rate, err := XIRR(flows)
		require.NoError(t, err)
		assert.InDelta(t, -0.20, rate, 0.001)
	})

	t.Run("insufficient_data", func(t *testing.T) {
		_, err := XIRR([]Cashflow{{Date: date(2023, 1, 1), Amount: -1000}})
		assert.ErrorIs(t, err, ErrInsufficientCashflows)

		_, err = XIRR(nil)
		assert.ErrorIs(t, err, ErrInsufficientCashflows)
	})

	t.Run("does_not_converge", func(t *testing.T) {
		// All-positive flows have no root: NPV is positive for every rate,
		// so the iterate is driven out of the plausible interval.
		flows := []Cashflow{
			{Date: date(2023, 1, 1), Amount: 1000},
			{Date: date(2024, 1, 1), Amount: 1000},
		}
		_, err := XIRR(flows)
		assert.ErrorIs(t, err, ErrNoConvergence)
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		flows := []Cashflow{
			{Date: date(2024, 1, 1), Amount: 1100},
			{Date: date(2023, 1, 1), Amount: -1000},
		}
		_, err := XIRR(flows)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 1, 1), flows[0].Date)
	})
}

func TestCAGR(t *testing.T) {
	t.Run("doubling_in_ten_years", func(t *testing.T) {
		rate, err := CAGR(1000, 2000, 10)
		require.NoError(t, err)
		assert.InDelta(t, 0.0718, rate, 0.0001)
	})

	t.Run("undefined_cases", func(t *testing.T) {
		for _, args := range [][3]float64{
			{0, 2000, 10},
			{-5, 2000, 10},
			{1000, 0, 10},
			{1000, -1, 10},
			{1000, 2000, 0},
			{1000, 2000, -2},
		} {
			_, err := CAGR(args[0], args[1], args[2])
			assert.ErrorIs(t, err, ErrUndefinedCAGR)
		}
	})

	t.Run("loss", func(t *testing.T) {
		rate, err := CAGR(2000, 1000, 10)
		require.NoError(t, err)
		assert.Less(t, rate, 0.0)
	})
}

func TestXIRRUsesActualDates(t *testing.T) {
	// Same amounts, double the holding period: the annualized rate halves
	// (approximately, given compounding).
	short := []Cashflow{
		{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Amount: -1000},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 1210},
	}
	long := []Cashflow{
		{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Amount: -1000},
		{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 1210},
	}
	shortRate, err := XIRR(short)
	require.NoError(t, err)
	longRate, err := XIRR(long)
	require.NoError(t, err)
	assert.Greater(t, shortRate, longRate)
	assert.InDelta(t, 0.10, longRate, 0.005) // 1.1^2 = 1.21 over two years
}
