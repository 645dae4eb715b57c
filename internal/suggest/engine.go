package suggest

import "github.com/khanglvm/reason-hub-mcp/internal/timing"

// Suggestion is one recommended next tool with its rationale and a
// duration estimate computed from the candidate's own default features.
type Suggestion struct {
	// Tool is the recommended next tool.
	Tool string `json:"tool"`

	// Reason is the rule's rationale.
	Reason string `json:"reason"`

	// EstimatedDurationMS predicts the candidate's duration at its
	// default complexity. The caller's future parameters are unknown.
	EstimatedDurationMS int64 `json:"estimated_duration_ms"`
}

// Engine produces next-tool suggestions from the static rule table.
// Pure in-memory computation apart from the estimator's sample lookup.
type Engine struct {
	bySource  map[string][]Rule
	estimator *timing.Estimator
	budgetMS  int64
}

// NewEngine indexes the rule table by source tool, preserving
// declaration order within each source.
func NewEngine(rules []Rule, estimator *timing.Estimator, budgetMS int64) *Engine {
	bySource := make(map[string][]Rule)
	for _, r := range rules {
		bySource[r.Source] = append(bySource[r.Source], r)
	}
	return &Engine{bySource: bySource, estimator: estimator, budgetMS: budgetMS}
}

// Suggest returns the candidates for the just-executed tool in
// declaration order. A tool with no configured rules yields an empty
// slice, never an error.
func (e *Engine) Suggest(tool string) []Suggestion {
	rules := e.bySource[tool]
	suggestions := make([]Suggestion, 0, len(rules))
	for _, r := range rules {
		est := e.estimator.Estimate(r.Candidate, nil, e.budgetMS)
		suggestions = append(suggestions, Suggestion{
			Tool:                r.Candidate,
			Reason:              r.Reason,
			EstimatedDurationMS: est.DurationMS,
		})
	}
	return suggestions
}
