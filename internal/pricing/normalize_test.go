package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fetchedAt = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestNormalizeMetal(t *testing.T) {
	q := NormalizeMetal("XAU", 2000, 3.6725, fetchedAt)

	assert.Equal(t, "XAU", q.Symbol)
	assert.Equal(t, SourceLive, q.Source)

	require.True(t, q.USDPerOz.Valid)
	require.True(t, q.AEDPerOz.Valid)
	require.True(t, q.AEDPerGram.Valid)

	assert.True(t, q.USDPerOz.Decimal.Equal(decimal.NewFromInt(2000)))
	assert.True(t, q.AEDPerOz.Decimal.Equal(decimal.NewFromFloat(7345.0)))

	// 7345 / 31.1035 ≈ 236.147 AED per gram
	gram, _ := q.AEDPerGram.Decimal.Round(3).Float64()
	assert.InDelta(t, 236.147, gram, 0.001)
}

func TestFailedMetalQuote(t *testing.T) {
	q := FailedMetalQuote("XAG", fetchedAt)
	assert.Equal(t, SourceFailed, q.Source)
	assert.False(t, q.USDPerOz.Valid)
	assert.False(t, q.AEDPerOz.Valid)
	assert.False(t, q.AEDPerGram.Valid)
}

func TestNormalizeForex(t *testing.T) {
	q := NormalizeForex("USD_AED", 3.6725, fetchedAt)

	require.True(t, q.Rate.Valid)
	require.True(t, q.Inverse.Valid)

	rate, _ := q.Rate.Decimal.Float64()
	inverse, _ := q.Inverse.Decimal.Float64()
	assert.InDelta(t, 3.6725, rate, 1e-9)
	assert.InDelta(t, 1/3.6725, inverse, 1e-9)
	assert.Equal(t, SourceLive, q.Source)
}

func TestNormalizeForexRejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []float64{0, -1.5} {
		q := NormalizeForex("INR_AED", rate, fetchedAt)
		assert.Equal(t, SourceFailed, q.Source)
		assert.False(t, q.Rate.Valid)
		assert.False(t, q.Inverse.Valid)
	}
}

func TestOverrideForexQuote(t *testing.T) {
	q := OverrideForexQuote("INR_AED", 0.0445, fetchedAt)
	assert.Equal(t, SourceOverride, q.Source)
	require.True(t, q.Rate.Valid)

	// An override of zero is still a failed quote, not a zero rate.
	q = OverrideForexQuote("INR_AED", 0, fetchedAt)
	assert.Equal(t, SourceFailed, q.Source)
}
