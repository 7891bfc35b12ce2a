// Package valuation implements the portfolio's computation core: fixed
// deposit accrual, XIRR/CAGR solving, portfolio aggregation, currency
// conversion, and goal projections. Everything here is pure and synchronous;
// missing inputs degrade to zero values or sentinel labels, never panics.
package valuation

import (
	"fmt"
	"math"
	"time"

	"nidhi/internal/models"
	"nidhi/internal/timeutil"
)

// ValueMethod labels how an asset's effective current value was resolved.
// The label is exposed to callers so the UI can explain the number it shows.
type ValueMethod string

const (
	MethodManual    ValueMethod = "manual"
	MethodMaturity  ValueMethod = "maturity"
	MethodAccrued   ValueMethod = "accrued"
	MethodMarket    ValueMethod = "market"
	MethodPrincipal ValueMethod = "principal"
)

// AccruedInterest computes simple interest accrued on a fixed deposit:
// I = P × rate/100 × days/365. Days elapsed are clamped at zero so an
// as-of date before the purchase date never yields negative interest.
// Returns 0 when principal, rate, or purchase date is absent.
func AccruedInterest(principal, annualRatePct float64, purchase *time.Time, asOf time.Time) float64 {
	if principal == 0 || annualRatePct == 0 || purchase == nil {
		return 0
	}
	days := int(asOf.Sub(*purchase).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return principal * (annualRatePct / 100) * (float64(days) / 365)
}

// FDCurrentValue is the principal plus interest accrued to date.
func FDCurrentValue(principal, annualRatePct float64, purchase *time.Time, asOf time.Time) float64 {
	return principal + AccruedInterest(principal, annualRatePct, purchase, asOf)
}

// MaturityAmount projects the deposit's value at maturity with annual
// compounding: A = P × (1 + rate/100)^(days/365). Returns nil when any
// required input is missing. Annual compounding is a deliberate
// simplification; real deposits often compound quarterly.
func MaturityAmount(principal, annualRatePct float64, purchase, maturity *time.Time) *float64 {
	if principal == 0 || annualRatePct == 0 || purchase == nil || maturity == nil {
		return nil
	}
	years := maturity.Sub(*purchase).Hours() / 24 / 365
	amount := principal * math.Pow(1+annualRatePct/100, years)
	return &amount
}

// EffectiveCurrentValue resolves an asset's current value, first match wins:
//  1. manual override flag with a recorded value
//  2. recorded maturity amount once maturity has passed
//  3. accrued value when principal and rate are both present
//  4. system-recorded current value (e.g. a NAV refresh)
//  5. principal, falling back to total cost
func EffectiveCurrentValue(asset *models.Asset, asOf time.Time) (float64, ValueMethod) {
	if asset.ManualValue && asset.CurrentValue != nil {
		return *asset.CurrentValue, MethodManual
	}

	if asset.MaturityDate != nil && !asOf.Before(*asset.MaturityDate) && asset.MaturityAmount != nil {
		return *asset.MaturityAmount, MethodMaturity
	}

	if asset.Principal != nil && asset.InterestRate != nil {
		return FDCurrentValue(*asset.Principal, *asset.InterestRate, asset.PurchaseDate, asOf), MethodAccrued
	}

	if asset.CurrentValue != nil {
		return *asset.CurrentValue, MethodMarket
	}

	if asset.Principal != nil {
		return *asset.Principal, MethodPrincipal
	}
	return asset.TotalCost, MethodPrincipal
}

// MaturityState classifies how far a deposit is from maturity.
type MaturityState string

const (
	MaturityUnknown MaturityState = "unknown"
	Matured         MaturityState = "matured"
	MaturityActive  MaturityState = "active"
)

// MaturityStatus holds the classification plus a display label for active
// deposits ("12 days left", "3 months left", "1y 2m left").
type MaturityStatus struct {
	State     MaturityState `json:"state"`
	Remaining string        `json:"remaining,omitempty"`
}

// ClassifyMaturity reports whether a deposit is matured, active, or of
// unknown maturity, with a remaining-time label banded at 30 and 365 days.
func ClassifyMaturity(maturity *time.Time, now time.Time) MaturityStatus {
	if maturity == nil {
		return MaturityStatus{State: MaturityUnknown}
	}

	days := timeutil.DaysBetween(now, *maturity)
	if days <= 0 {
		return MaturityStatus{State: Matured}
	}

	var label string
	switch {
	case days < 30:
		label = fmt.Sprintf("%d days left", days)
	case days < 365:
		label = fmt.Sprintf("%d months left", days/30)
	default:
		years := days / 365
		months := (days % 365) / 30
		label = fmt.Sprintf("%dy %dm left", years, months)
	}
	return MaturityStatus{State: MaturityActive, Remaining: label}
}
