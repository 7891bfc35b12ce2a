package valuation

import (
	"errors"
	"math"
	"sort"
	"time"
)

// Cashflow is a dated signed amount: negative for money invested,
// positive for money returned.
type Cashflow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Solver failure modes. Both render as "unavailable" to API clients, but
// callers and tests can tell them apart.
var (
	ErrInsufficientCashflows = errors.New("xirr: need at least two cash flows")
	ErrNoConvergence         = errors.New("xirr: did not converge")
	ErrUndefinedCAGR         = errors.New("cagr: undefined for non-positive values or horizon")
)

const (
	xirrInitialGuess = 0.10
	xirrMaxIter      = 100
	xirrTolerance    = 1e-7
	xirrMinSlope     = 1e-10
	xirrLowerBound   = -1.0
	xirrUpperBound   = 10.0
	xirrNPVTolerance = 1.0 // absolute currency units
)

// XIRR finds the annualized internal rate of return for an irregular series
// of cash flows using Newton-Raphson. Time is measured in years of 365.25
// days from the earliest flow.
func XIRR(flows []Cashflow) (float64, error) {
	if len(flows) < 2 {
		return 0, ErrInsufficientCashflows
	}

	sorted := make([]Cashflow, len(flows))
	copy(sorted, flows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	t0 := sorted[0].Date
	years := make([]float64, len(sorted))
	for i, f := range sorted {
		years[i] = f.Date.Sub(t0).Hours() / 24 / 365.25
	}

	rate := xirrInitialGuess
	for i := 0; i < xirrMaxIter; i++ {
		var npv, slope float64
		for j, f := range sorted {
			npv += f.Amount / math.Pow(1+rate, years[j])
			slope -= years[j] * f.Amount / math.Pow(1+rate, years[j]+1)
		}

		if math.Abs(slope) < xirrMinSlope {
			return 0, ErrNoConvergence
		}

		next := rate - npv/slope
		if next <= xirrLowerBound || next >= xirrUpperBound {
			return 0, ErrNoConvergence
		}

		if math.Abs(next-rate) < xirrTolerance {
			return next, nil
		}
		rate = next
	}

	// Out of iterations: accept the last estimate only if its NPV is within
	// one currency unit of zero.
	if math.Abs(npvAt(sorted, years, rate)) < xirrNPVTolerance {
		return rate, nil
	}
	return 0, ErrNoConvergence
}

func npvAt(flows []Cashflow, years []float64, rate float64) float64 {
	var npv float64
	for j, f := range flows {
		npv += f.Amount / math.Pow(1+rate, years[j])
	}
	return npv
}

// CAGR computes the compound annual growth rate (end/begin)^(1/years) − 1.
// Undefined for non-positive begin/end values or a non-positive horizon.
func CAGR(beginValue, endValue, years float64) (float64, error) {
	if beginValue <= 0 || endValue <= 0 || years <= 0 {
		return 0, ErrUndefinedCAGR
	}
	return math.Pow(endValue/beginValue, 1/years) - 1, nil
}
