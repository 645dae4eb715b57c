/*
Package suggest recommends the next reasoning tool after an invocation.

Recommendations come from a static, curated rule table: each rule links
a just-executed tool to a candidate next tool with a human-readable
rationale. Rule order in the table is a curated priority and is never
re-sorted, which keeps the output deterministic.
*/
package suggest

import "fmt"

// Rule is one static recommendation link.
type Rule struct {
	// Source is the just-executed tool the rule applies to.
	Source string

	// Candidate is the recommended next tool. Never equal to Source.
	Candidate string

	// Reason is the human-readable rationale shown to the caller.
	Reason string
}

// Rules returns the built-in recommendation table in declaration order.
func Rules() []Rule {
	return []Rule{
		{"reason_divergent", "reason_tree", "Deepen the strongest perspective with structured tree search"},
		{"reason_divergent", "reason_graph", "Map the generated perspectives into a claim graph to find tensions"},
		{"reason_tree", "reason_mcts", "Escalate to simulation-based search when the branch space is too wide to enumerate"},
		{"reason_tree", "reason_counterfactual", "Stress-test the chosen branch against counterfactual scenarios"},
		{"reason_mcts", "reason_counterfactual", "Validate the highest-value line with counterfactual analysis"},
		{"reason_mcts", "reason_graph", "Consolidate simulation results into an explicit claim graph"},
		{"reason_graph", "reason_tree", "Expand the densest claim cluster with tree search"},
		{"reason_graph", "reason_counterfactual", "Probe the weakest edges with counterfactual scenarios"},
		{"reason_counterfactual", "reason_divergent", "Reopen broad exploration if the scenarios overturned the working conclusion"},
	}
}

// Validate checks the rule table against the set of known tools. Called
// once at startup; a misconfigured table fails the process, never a
// request.
func Validate(rules []Rule, known func(string) bool) error {
	for i, r := range rules {
		if r.Source == r.Candidate {
			return fmt.Errorf("rule %d: tool %q suggests itself", i, r.Source)
		}
		if !known(r.Source) {
			return fmt.Errorf("rule %d: unknown source tool %q", i, r.Source)
		}
		if !known(r.Candidate) {
			return fmt.Errorf("rule %d: unknown candidate tool %q", i, r.Candidate)
		}
		if r.Reason == "" {
			return fmt.Errorf("rule %d (%s -> %s): empty reason", i, r.Source, r.Candidate)
		}
	}
	return nil
}
