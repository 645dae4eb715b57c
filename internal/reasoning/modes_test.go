package reasoning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processorByName(t *testing.T, name string) Processor {
	t.Helper()
	for _, p := range Registry() {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("processor %s not registered", name)
	return Processor{}
}

func TestRegistry_AllProcessorsComplete(t *testing.T) {
	procs := Registry()
	require.Len(t, procs, 5)

	seen := make(map[string]bool)
	for _, p := range procs {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
		assert.NotNil(t, p.InputSchema)
		assert.NotNil(t, p.Run)
		assert.False(t, seen[p.Name], "duplicate processor %s", p.Name)
		seen[p.Name] = true
	}
}

func TestDivergent_ReportsPerspectiveFeature(t *testing.T) {
	p := processorByName(t, "reason_divergent")

	result, features, err := p.Run(map[string]interface{}{
		"problem":      "how to cut build times",
		"perspectives": float64(4),
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"perspectives": 4}, features)
	assert.Contains(t, result, "how to cut build times")
	assert.Contains(t, result, "4.")
	assert.NotContains(t, result, "5.")
}

func TestDivergent_DefaultsAndClamping(t *testing.T) {
	p := processorByName(t, "reason_divergent")

	_, features, err := p.Run(map[string]interface{}{"problem": "p"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, features["perspectives"])

	_, features, err = p.Run(map[string]interface{}{"problem": "p", "perspectives": float64(100)})
	require.NoError(t, err)
	assert.Equal(t, 8.0, features["perspectives"])
}

func TestDivergent_MissingProblem(t *testing.T) {
	p := processorByName(t, "reason_divergent")

	_, _, err := p.Run(map[string]interface{}{})
	assert.Error(t, err)
}

func TestTree_ReportsBranchAndDepthFeatures(t *testing.T) {
	p := processorByName(t, "reason_tree")

	result, features, err := p.Run(map[string]interface{}{
		"problem":  "choose a database",
		"branches": float64(4),
		"depth":    float64(2),
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"branches": 4, "depth": 2}, features)
	assert.Contains(t, result, "Level 1")
	assert.Contains(t, result, "Level 2")
	assert.NotContains(t, result, "Level 3")
}

func TestMCTS_Deterministic(t *testing.T) {
	p := processorByName(t, "reason_mcts")
	args := map[string]interface{}{
		"problem":     "pricing strategy",
		"simulations": float64(200),
	}

	first, features, err := p.Run(args)
	require.NoError(t, err)
	second, _, err := p.Run(args)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 200.0, features["simulations"])
	assert.Equal(t, 4.0, features["depth"])
	assert.Contains(t, first, "rollouts")
}

func TestGraph_BuildsNodesAndEdges(t *testing.T) {
	p := processorByName(t, "reason_graph")

	result, features, err := p.Run(map[string]interface{}{
		"claims": []interface{}{
			"caching improves latency",
			"caching increases staleness",
			"replication adds capacity",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 3.0, features["nodes"])
	assert.Contains(t, result, "n1")
	assert.Contains(t, result, "n3")
	// The two caching claims share a term.
	assert.Contains(t, result, "n1 -- n2")
	assert.Contains(t, result, "caching")
}

func TestGraph_RejectsEmptyClaims(t *testing.T) {
	p := processorByName(t, "reason_graph")

	_, _, err := p.Run(map[string]interface{}{})
	assert.Error(t, err)

	_, _, err = p.Run(map[string]interface{}{"claims": []interface{}{}})
	assert.Error(t, err)
}

func TestCounterfactual_EnumeratesScenarios(t *testing.T) {
	p := processorByName(t, "reason_counterfactual")

	result, features, err := p.Run(map[string]interface{}{
		"assumption": "traffic grows linearly",
		"scenarios":  float64(3),
	})

	require.NoError(t, err)
	assert.Equal(t, 3.0, features["scenarios"])
	assert.Equal(t, 3, strings.Count(result, "Scenario"))
}

func TestSharedTerms(t *testing.T) {
	got := sharedTerms("caching improves latency", "caching hurts consistency")
	assert.Equal(t, []string{"caching"}, got)

	assert.Empty(t, sharedTerms("a b c", "d e f"))
}
