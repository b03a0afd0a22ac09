package domain

// Budget status values produced by the insight fallback. The external
// predictor may return additional values (e.g. "under_budget"); its response
// is passed through unmodified.
const (
	BudgetOnTrack = "on_track"
	BudgetOver    = "over_budget"
)

// Insight is the spending analysis for a trip, as produced by the local
// fallback heuristic. The primary path returns the external predictor's body
// verbatim instead, which is a superset of this shape.
type Insight struct {
	PredictedSpending float64  `json:"predicted_spending"`
	BudgetStatus      string   `json:"budget_status"`
	Recommendations   []string `json:"recommendations"`
}
