package valuation

import "math"

// Projection rate and horizon sets used for the generic growth table.
var (
	ProjectionRates    = []float64{8, 10, 12}
	ProjectionHorizons = []int{5, 10, 15, 20, 25, 30}
)

// ProjectCorpus compounds a starting corpus forward at a fixed annual rate:
// corpus × (1 + rate/100)^years.
func ProjectCorpus(corpus, annualRatePct float64, years int) float64 {
	return corpus * math.Pow(1+annualRatePct/100, float64(years))
}

// ProjectionCell is one entry of the multi-rate projection table.
type ProjectionCell struct {
	RatePct float64 `json:"rate_pct"`
	Years   int     `json:"years"`
	Value   float64 `json:"value"`
}

// ProjectionTable builds the fixed-rates × fixed-horizons growth table for a
// starting corpus.
func ProjectionTable(corpus float64) []ProjectionCell {
	cells := make([]ProjectionCell, 0, len(ProjectionRates)*len(ProjectionHorizons))
	for _, rate := range ProjectionRates {
		for _, years := range ProjectionHorizons {
			cells = append(cells, ProjectionCell{
				RatePct: rate,
				Years:   years,
				Value:   ProjectCorpus(corpus, rate, years),
			})
		}
	}
	return cells
}

// GoalProgress reports how a goal is tracking against its projection.
type GoalProgress struct {
	ProjectedValue float64 `json:"projected_value"`
	TargetAmount   float64 `json:"target_amount"`
	ProgressPct    float64 `json:"progress_pct"` // capped at 100 for display
	OnTrack        bool    `json:"on_track"`
}

// TrackGoal projects a corpus at the goal's rate over its horizon and checks
// it against the target. Progress is capped at 100%.
func TrackGoal(corpus, annualRatePct float64, years int, targetAmount float64) GoalProgress {
	projected := ProjectCorpus(corpus, annualRatePct, years)
	p := GoalProgress{
		ProjectedValue: projected,
		TargetAmount:   targetAmount,
	}
	if targetAmount > 0 {
		p.ProgressPct = math.Min(projected/targetAmount*100, 100)
	}
	p.OnTrack = projected >= targetAmount
	return p
}
