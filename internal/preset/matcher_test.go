package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPresets() []Preset {
	return []Preset{
		{ID: "xyz", Description: "x then y then z", Sequence: []string{"x", "y", "z"}},
		{ID: "xy", Description: "x then y", Sequence: []string{"x", "y"}},
		{ID: "ab", Description: "a then b", Sequence: []string{"a", "b"}},
	}
}

func TestMatch_FullSequenceScoresOne(t *testing.T) {
	m := NewMatcher(testPresets())

	// History [x, y] with current tool z: observed = [x, y, z].
	got := m.Match([]string{"x", "y", "z"})

	require.NotEmpty(t, got)
	assert.Equal(t, "xyz", got[0].PresetID)
	assert.Equal(t, 1.0, got[0].Score)
}

func TestMatch_InterveningToolsDoNotDisqualify(t *testing.T) {
	m := NewMatcher(testPresets())

	got := m.Match([]string{"x", "a", "y", "b", "z"})

	ids := make([]string, 0, len(got))
	for _, g := range got {
		ids = append(ids, g.PresetID)
	}
	assert.Contains(t, ids, "xyz")
	for _, g := range got {
		if g.PresetID == "xyz" {
			assert.Equal(t, 1.0, g.Score)
		}
	}
}

func TestMatch_BelowThresholdExcluded(t *testing.T) {
	m := NewMatcher(testPresets())

	// Only x matches xyz: score 1/3 < 0.5.
	got := m.Match([]string{"x"})

	for _, g := range got {
		assert.NotEqual(t, "xyz", g.PresetID)
		assert.GreaterOrEqual(t, g.Score, 0.5)
	}
	// x alone is half of xy: exactly at the threshold, retained.
	require.Len(t, got, 1)
	assert.Equal(t, "xy", got[0].PresetID)
	assert.Equal(t, 0.5, got[0].Score)
}

func TestMatch_EmptyObservedYieldsEmpty(t *testing.T) {
	m := NewMatcher(testPresets())

	got := m.Match(nil)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestMatch_SortedByScoreThenCatalogOrder(t *testing.T) {
	m := NewMatcher(testPresets())

	// Observed [x, y]: xyz scores 2/3, xy scores 1.0.
	got := m.Match([]string{"x", "y"})

	require.Len(t, got, 2)
	assert.Equal(t, "xy", got[0].PresetID)
	assert.Equal(t, "xyz", got[1].PresetID)
}

func TestMatch_TieBrokenByCatalogOrder(t *testing.T) {
	presets := []Preset{
		{ID: "first", Sequence: []string{"x", "y"}},
		{ID: "second", Sequence: []string{"x", "z"}},
	}
	m := NewMatcher(presets)

	// Both score 0.5 on observed [x].
	got := m.Match([]string{"x"})

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].PresetID)
	assert.Equal(t, "second", got[1].PresetID)
}

func TestLCSLength(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want int
	}{
		{"identical", []string{"x", "y", "z"}, []string{"x", "y", "z"}, 3},
		{"subsequence with gaps", []string{"x", "q", "y", "q", "z"}, []string{"x", "y", "z"}, 3},
		{"disjoint", []string{"a", "b"}, []string{"x", "y"}, 0},
		{"partial", []string{"x", "z"}, []string{"x", "y", "z"}, 2},
		{"order matters", []string{"z", "y", "x"}, []string{"x", "y", "z"}, 1},
		{"empty", nil, []string{"x"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lcsLength(tt.a, tt.b))
		})
	}
}

func TestValidate_BuiltinCatalog(t *testing.T) {
	known := map[string]bool{
		"reason_divergent": true, "reason_tree": true, "reason_mcts": true,
		"reason_graph": true, "reason_counterfactual": true,
	}
	require.NoError(t, Validate(Catalog(), func(tool string) bool { return known[tool] }))
}

func TestValidate_RejectsBadCatalog(t *testing.T) {
	known := func(string) bool { return true }

	assert.Error(t, Validate([]Preset{{ID: "", Sequence: []string{"x"}}}, known))
	assert.Error(t, Validate([]Preset{{ID: "p", Sequence: nil}}, known))
	assert.Error(t, Validate([]Preset{
		{ID: "p", Sequence: []string{"x"}},
		{ID: "p", Sequence: []string{"y"}},
	}, known))
	assert.Error(t, Validate([]Preset{{ID: "p", Sequence: []string{"x"}}}, func(string) bool { return false }))
}
