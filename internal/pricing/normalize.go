// Package pricing fetches external reference prices (metal spot, forex,
// mutual-fund NAV) and normalizes them into the unit representations the
// rest of the system consumes. A failed upstream fetch degrades to a quote
// with Source "failed" and null prices; nothing here aborts the caller.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// GramsPerTroyOunce converts troy-ounce metal quotes to per-gram prices.
const GramsPerTroyOunce = 31.1035

// Quote sources surfaced to the UI.
const (
	SourceLive     = "live"
	SourceFailed   = "failed"
	SourceOverride = "override"
)

// MetalQuote is one metal's spot price in every representation the
// dashboard needs. Prices are null when the upstream fetch failed.
type MetalQuote struct {
	Symbol     string              `json:"symbol"` // XAU, XAG
	Source     string              `json:"source"`
	FetchedAt  time.Time           `json:"fetched_at"`
	USDPerOz   decimal.NullDecimal `json:"usd_per_oz"`
	AEDPerOz   decimal.NullDecimal `json:"aed_per_oz"`
	AEDPerGram decimal.NullDecimal `json:"aed_per_gram"`
}

// ForexQuote is a currency-pair rate with its reciprocal for bidirectional
// conversion.
type ForexQuote struct {
	Pair      string              `json:"pair"` // e.g. USD_AED
	Source    string              `json:"source"`
	FetchedAt time.Time           `json:"fetched_at"`
	Rate      decimal.NullDecimal `json:"rate"`
	Inverse   decimal.NullDecimal `json:"inverse"`
}

// NAVQuote is a mutual fund scheme's latest published NAV.
type NAVQuote struct {
	SchemeCode string              `json:"scheme_code"`
	SchemeName string              `json:"scheme_name,omitempty"`
	Source     string              `json:"source"`
	Date       string              `json:"date,omitempty"`
	NAV        decimal.NullDecimal `json:"nav"`
}

func valid(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// NormalizeMetal converts a raw USD-per-troy-ounce quote into USD/oz, AED/oz
// and AED/gram representations using the given USD→AED rate.
func NormalizeMetal(symbol string, usdPerOz, usdToAED float64, at time.Time) MetalQuote {
	usd := decimal.NewFromFloat(usdPerOz)
	aedOz := usd.Mul(decimal.NewFromFloat(usdToAED))
	aedGram := aedOz.Div(decimal.NewFromFloat(GramsPerTroyOunce))

	return MetalQuote{
		Symbol:     symbol,
		Source:     SourceLive,
		FetchedAt:  at,
		USDPerOz:   valid(usd),
		AEDPerOz:   valid(aedOz),
		AEDPerGram: valid(aedGram),
	}
}

// FailedMetalQuote is the "no data" sentinel for a metal whose fetch failed.
func FailedMetalQuote(symbol string, at time.Time) MetalQuote {
	return MetalQuote{Symbol: symbol, Source: SourceFailed, FetchedAt: at}
}

// NormalizeForex wraps a raw pair rate with its reciprocal.
// A non-positive rate is treated as a failed fetch.
func NormalizeForex(pair string, rate float64, at time.Time) ForexQuote {
	if rate <= 0 {
		return FailedForexQuote(pair, at)
	}
	d := decimal.NewFromFloat(rate)
	return ForexQuote{
		Pair:      pair,
		Source:    SourceLive,
		FetchedAt: at,
		Rate:      valid(d),
		Inverse:   valid(decimal.NewFromInt(1).Div(d)),
	}
}

// FailedForexQuote is the "no data" sentinel for a failed pair fetch.
func FailedForexQuote(pair string, at time.Time) ForexQuote {
	return ForexQuote{Pair: pair, Source: SourceFailed, FetchedAt: at}
}

// OverrideForexQuote represents a user-configured rate taking precedence
// over the live feed.
func OverrideForexQuote(pair string, rate float64, at time.Time) ForexQuote {
	q := NormalizeForex(pair, rate, at)
	if q.Source == SourceLive {
		q.Source = SourceOverride
	}
	return q
}
