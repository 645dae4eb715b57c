/*
Package metadata assembles the auxiliary metadata attached to reasoning
tool responses: a timing prediction, next-tool suggestions and candidate
workflow presets.

The builder is the sole entry point tool handlers call. Its contract is
"always returns a best-effort metadata value": no failure inside this
package ever reaches the external caller of a tool.
*/
package metadata

import (
	"github.com/khanglvm/reason-hub-mcp/internal/preset"
	"github.com/khanglvm/reason-hub-mcp/internal/suggest"
)

// ExecutionContext is the input to one builder call, constructed fresh
// per completed tool invocation and never shared.
type ExecutionContext struct {
	// SessionID identifies the caller session for history tracking.
	SessionID string

	// Tool is the tool that just executed.
	Tool string

	// Features are the complexity feature values of the invocation.
	Features map[string]float64

	// ElapsedMS is the measured duration of the primary operation.
	ElapsedMS int64

	// TimeoutBudgetMS is the caller-imposed timeout budget. Zero means
	// "use the configured default".
	TimeoutBudgetMS int64
}

// ResponseMetadata is the immutable outward-facing metadata value.
// Safe to serialize directly.
type ResponseMetadata struct {
	Timing      TimingBlock      `json:"timing"`
	Suggestions SuggestionsBlock `json:"suggestions"`
	Context     ContextBlock     `json:"context"`
}

// TimingBlock predicts the cost of the next invocation of the tool.
type TimingBlock struct {
	// EstimatedDurationMS is the predicted duration in milliseconds.
	EstimatedDurationMS int64 `json:"estimated_duration_ms"`

	// Confidence is "high", "medium" or "low".
	Confidence string `json:"confidence"`

	// WillTimeoutOnFactory reports whether the prediction exceeds the
	// factory timeout budget.
	WillTimeoutOnFactory bool `json:"will_timeout_on_factory"`

	// FactoryTimeoutMS is the budget the prediction was checked against.
	FactoryTimeoutMS int64 `json:"factory_timeout_ms"`
}

// SuggestionsBlock carries next-tool and workflow recommendations.
// Both lists may be empty, never absent.
type SuggestionsBlock struct {
	NextTools       []suggest.Suggestion `json:"next_tools"`
	RelevantPresets []RelevantPreset     `json:"relevant_presets"`
}

// RelevantPreset is one matched workflow, without the internal score.
type RelevantPreset struct {
	PresetID    string `json:"preset_id"`
	Description string `json:"description"`
}

// ContextBlock summarizes the invocation that just completed.
type ContextBlock struct {
	// ModeUsed is the reasoning mode identifier.
	ModeUsed string `json:"mode_used"`

	// Complexity is the normalized complexity descriptor: every feature
	// the tool's cost model knows, with the caller's value or the
	// documented default.
	Complexity map[string]float64 `json:"complexity"`
}

// relevantPresets strips the internal scores off matcher output.
func relevantPresets(matches []preset.Match) []RelevantPreset {
	out := make([]RelevantPreset, 0, len(matches))
	for _, m := range matches {
		out = append(out, RelevantPreset{PresetID: m.PresetID, Description: m.Description})
	}
	return out
}
