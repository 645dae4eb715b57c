/*
Package preset matches a session's tool history against named multi-step
reasoning workflows.

The catalog is immutable and loaded once at startup. Matching is
order-preserving but not contiguous: intervening unrelated tool calls do
not disqualify a workflow in progress.
*/
package preset

import "fmt"

// Preset is a named multi-tool workflow.
type Preset struct {
	// ID identifies the preset.
	ID string

	// Description explains the workflow to the caller.
	Description string

	// Sequence is the canonical ordered tool sequence. Never empty.
	Sequence []string
}

// Catalog returns the built-in workflow presets in declaration order.
// Declaration order breaks score ties during matching.
func Catalog() []Preset {
	return []Preset{
		{
			ID:          "explore-then-commit",
			Description: "Broad divergent exploration, deep tree search on the best thread, then a counterfactual stress test",
			Sequence:    []string{"reason_divergent", "reason_tree", "reason_counterfactual"},
		},
		{
			ID:          "deep-search",
			Description: "Tree search escalated to Monte-Carlo simulation for wide decision spaces",
			Sequence:    []string{"reason_tree", "reason_mcts"},
		},
		{
			ID:          "claim-analysis",
			Description: "Graph the claims, then probe the weakest links with counterfactuals",
			Sequence:    []string{"reason_graph", "reason_counterfactual"},
		},
		{
			ID:          "full-deliberation",
			Description: "The complete pipeline: diverge, search, simulate, stress-test",
			Sequence:    []string{"reason_divergent", "reason_tree", "reason_mcts", "reason_counterfactual"},
		},
		{
			ID:          "hypothesis-check",
			Description: "Generate perspectives, structure them as claims, test the survivors",
			Sequence:    []string{"reason_divergent", "reason_graph", "reason_counterfactual"},
		},
	}
}

// Validate checks the preset catalog against the set of known tools.
// Called once at startup; a misconfigured catalog fails the process,
// never a request.
func Validate(presets []Preset, known func(string) bool) error {
	seen := make(map[string]bool, len(presets))
	for i, p := range presets {
		if p.ID == "" {
			return fmt.Errorf("preset %d: empty id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("preset %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		if len(p.Sequence) == 0 {
			return fmt.Errorf("preset %q: empty sequence", p.ID)
		}
		for _, tool := range p.Sequence {
			if !known(tool) {
				return fmt.Errorf("preset %q: unknown tool %q", p.ID, tool)
			}
		}
	}
	return nil
}
