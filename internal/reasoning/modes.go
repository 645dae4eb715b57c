package reasoning

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// perspectiveFrames are the lenses the divergent processor cycles
// through when generating perspectives.
var perspectiveFrames = []string{
	"analytical: decompose the problem into measurable parts",
	"skeptical: attack the strongest implicit assumption",
	"creative: ignore current constraints and invert the goal",
	"pragmatic: find the cheapest path to a partial solution",
	"adversarial: reason as a competitor exploiting this plan",
	"systems: trace second-order effects and feedback loops",
	"user: restate the problem from the end user's incentives",
	"long-term: evaluate the decision on a ten-year horizon",
}

func divergentProcessor() Processor {
	return Processor{
		Name:        "reason_divergent",
		Description: "Explore a problem from multiple independent perspectives in parallel.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"problem": map[string]interface{}{
					"type":        "string",
					"description": "The problem statement to explore",
				},
				"perspectives": map[string]interface{}{
					"type":        "integer",
					"description": "Number of perspectives to generate (default 3)",
				},
			},
			"required": []string{"problem"},
		},
		Run: func(args map[string]interface{}) (string, map[string]float64, error) {
			problem, err := stringArg(args, "problem")
			if err != nil {
				return "", nil, err
			}
			perspectives := clampNum(numArg(args, "perspectives", 3), 1, 8)

			var b strings.Builder
			fmt.Fprintf(&b, "Divergent exploration of: %s\n\n", problem)
			for i := 0; i < int(perspectives); i++ {
				fmt.Fprintf(&b, "%d. [%s]\n", i+1, perspectiveFrames[i%len(perspectiveFrames)])
			}
			b.WriteString("\nDevelop each perspective independently before comparing conclusions.")

			return b.String(), map[string]float64{"perspectives": perspectives}, nil
		},
	}
}

func treeProcessor() Processor {
	return Processor{
		Name:        "reason_tree",
		Description: "Run a breadth-first tree-of-thought search schedule over a problem.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"problem": map[string]interface{}{
					"type":        "string",
					"description": "The problem statement to search",
				},
				"branches": map[string]interface{}{
					"type":        "integer",
					"description": "Candidate thoughts per node (default 3)",
				},
				"depth": map[string]interface{}{
					"type":        "integer",
					"description": "Search depth (default 3)",
				},
			},
			"required": []string{"problem"},
		},
		Run: func(args map[string]interface{}) (string, map[string]float64, error) {
			problem, err := stringArg(args, "problem")
			if err != nil {
				return "", nil, err
			}
			branches := clampNum(numArg(args, "branches", 3), 1, 10)
			depth := clampNum(numArg(args, "depth", 3), 1, 6)

			var b strings.Builder
			fmt.Fprintf(&b, "Tree search schedule for: %s\n\n", problem)
			nodes := 1
			for level := 1; level <= int(depth); level++ {
				nodes *= int(branches)
				// Keep the schedule readable for wide trees.
				if nodes > 64 {
					nodes = 64
				}
				fmt.Fprintf(&b, "Level %d: expand %d candidate thoughts, keep the top %d\n",
					level, nodes, int(branches))
			}
			b.WriteString("\nScore each level's candidates before expanding; prune dominated branches early.")

			return b.String(), map[string]float64{"branches": branches, "depth": depth}, nil
		},
	}
}

func mctsProcessor() Processor {
	return Processor{
		Name:        "reason_mcts",
		Description: "Allocate Monte-Carlo tree search rollouts over candidate lines of reasoning.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"problem": map[string]interface{}{
					"type":        "string",
					"description": "The decision problem to simulate",
				},
				"simulations": map[string]interface{}{
					"type":        "integer",
					"description": "Number of rollouts (default 100)",
				},
				"depth": map[string]interface{}{
					"type":        "integer",
					"description": "Rollout depth (default 4)",
				},
			},
			"required": []string{"problem"},
		},
		Run: func(args map[string]interface{}) (string, map[string]float64, error) {
			problem, err := stringArg(args, "problem")
			if err != nil {
				return "", nil, err
			}
			simulations := clampNum(numArg(args, "simulations", 100), 10, 1000)
			depth := clampNum(numArg(args, "depth", 4), 1, 8)

			// Deterministic pseudo-rollouts keyed on the problem text, so
			// identical inputs reproduce identical allocations.
			const lines = 4
			visits := make([]int, lines)
			scores := make([]float64, lines)
			for i := 0; i < int(simulations); i++ {
				h := fnv.New32a()
				fmt.Fprintf(h, "%s:%d", problem, i)
				line := int(h.Sum32() % lines)
				visits[line]++
				scores[line] += float64(h.Sum32()%1000) / 1000.0
			}

			best := 0
			for i := 1; i < lines; i++ {
				if visits[i] > 0 && scores[i]/float64(visits[i]) > scores[best]/float64(maxInt(visits[best], 1)) {
					best = i
				}
			}

			var b strings.Builder
			fmt.Fprintf(&b, "MCTS allocation for: %s\n\n", problem)
			for i := 0; i < lines; i++ {
				mean := 0.0
				if visits[i] > 0 {
					mean = scores[i] / float64(visits[i])
				}
				marker := " "
				if i == best {
					marker = "*"
				}
				fmt.Fprintf(&b, "%s line %d: %d rollouts (depth %d), mean value %.3f\n",
					marker, i+1, visits[i], int(depth), mean)
			}
			fmt.Fprintf(&b, "\nCommit rollout budget to line %d; re-simulate if its value estimate drops.", best+1)

			return b.String(), map[string]float64{"simulations": simulations, "depth": depth}, nil
		},
	}
}

func graphProcessor() Processor {
	return Processor{
		Name:        "reason_graph",
		Description: "Build a claim graph from a set of statements and surface their tensions.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"claims": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Claims to connect into a graph",
				},
			},
			"required": []string{"claims"},
		},
		Run: func(args map[string]interface{}) (string, map[string]float64, error) {
			raw, ok := args["claims"].([]interface{})
			if !ok || len(raw) == 0 {
				return "", nil, fmt.Errorf("missing required argument: claims")
			}
			claims := make([]string, 0, len(raw))
			for _, c := range raw {
				if s, ok := c.(string); ok && s != "" {
					claims = append(claims, s)
				}
			}
			if len(claims) == 0 {
				return "", nil, fmt.Errorf("claims must be non-empty strings")
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Claim graph over %d nodes:\n\n", len(claims))
			edges := 0
			for i := range claims {
				fmt.Fprintf(&b, "n%d: %s\n", i+1, claims[i])
			}
			b.WriteString("\nEdges (shared terms):\n")
			for i := 0; i < len(claims); i++ {
				for j := i + 1; j < len(claims); j++ {
					if terms := sharedTerms(claims[i], claims[j]); len(terms) > 0 {
						edges++
						fmt.Fprintf(&b, "n%d -- n%d via %s\n", i+1, j+1, strings.Join(terms, ", "))
					}
				}
			}
			if edges == 0 {
				b.WriteString("(none: the claims are independent; look for hidden bridging assumptions)\n")
			}

			return b.String(), map[string]float64{"nodes": float64(len(claims))}, nil
		},
	}
}

func counterfactualProcessor() Processor {
	return Processor{
		Name:        "reason_counterfactual",
		Description: "Stress-test a conclusion by inverting its load-bearing assumption.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"assumption": map[string]interface{}{
					"type":        "string",
					"description": "The assumption to invert",
				},
				"scenarios": map[string]interface{}{
					"type":        "integer",
					"description": "Number of counterfactual scenarios (default 2)",
				},
			},
			"required": []string{"assumption"},
		},
		Run: func(args map[string]interface{}) (string, map[string]float64, error) {
			assumption, err := stringArg(args, "assumption")
			if err != nil {
				return "", nil, err
			}
			scenarios := clampNum(numArg(args, "scenarios", 2), 1, 6)

			prompts := []string{
				"the assumption is false from the start",
				"the assumption holds now but degrades gradually",
				"the assumption holds only in the common case",
				"the assumption is inverted by an external actor",
				"the assumption was never load-bearing at all",
				"the assumption holds but its cost doubles",
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Counterfactual analysis of: %s\n\n", assumption)
			for i := 0; i < int(scenarios); i++ {
				fmt.Fprintf(&b, "Scenario %d: suppose %s. What still holds?\n", i+1, prompts[i%len(prompts)])
			}
			b.WriteString("\nA conclusion that survives every scenario is robust; one that survives none was never supported.")

			return b.String(), map[string]float64{"scenarios": scenarios}, nil
		},
	}
}

// sharedTerms returns the significant terms (5+ characters) two claims
// have in common.
func sharedTerms(a, b string) []string {
	wordsA := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(a)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len(w) >= 5 {
			wordsA[w] = true
		}
	}

	var shared []string
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(b)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len(w) >= 5 && wordsA[w] && !seen[w] {
			shared = append(shared, w)
			seen[w] = true
		}
	}
	return shared
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
