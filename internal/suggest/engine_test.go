package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanglvm/reason-hub-mcp/internal/storage"
	"github.com/khanglvm/reason-hub-mcp/internal/timing"
)

// nullStore always reports the store unavailable, forcing the
// estimator onto the static model. Suggestion tests only need
// deterministic baseline estimates.
type nullStore struct{}

func (nullStore) Init() error { return nil }
func (nullStore) RecordSample(storage.Sample) error { return nil }
func (nullStore) QuerySamples(string, string) ([]storage.Sample, error) {
	return nil, storage.ErrUnavailable
}
func (nullStore) Stats() ([]storage.BucketStats, error) { return nil, storage.ErrUnavailable }
func (nullStore) Cleanup(time.Duration) error           { return nil }
func (nullStore) Close() error                          { return nil }

func newTestEngine() *Engine {
	est := timing.NewEstimator(nullStore{}, timing.Defaults(), nil)
	return NewEngine(Rules(), est, 30000)
}

func TestSuggest_NeverSuggestsSelf(t *testing.T) {
	engine := newTestEngine()

	for tool := range timing.Defaults() {
		for _, s := range engine.Suggest(tool) {
			assert.NotEqual(t, tool, s.Tool, "tool %s suggested itself", tool)
		}
	}
}

func TestSuggest_DeclarationOrderPreserved(t *testing.T) {
	engine := newTestEngine()

	got := engine.Suggest("reason_divergent")
	require.Len(t, got, 2)
	assert.Equal(t, "reason_tree", got[0].Tool)
	assert.Equal(t, "reason_graph", got[1].Tool)
}

func TestSuggest_Reproducible(t *testing.T) {
	engine := newTestEngine()

	first := engine.Suggest("reason_tree")
	second := engine.Suggest("reason_tree")
	assert.Equal(t, first, second)
}

func TestSuggest_UnconfiguredToolYieldsEmpty(t *testing.T) {
	engine := newTestEngine()

	got := engine.Suggest("reason_unknown")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestSuggest_EstimatesUseCandidateDefaults(t *testing.T) {
	engine := newTestEngine()

	got := engine.Suggest("reason_divergent")
	require.Len(t, got, 2)

	// With no samples the estimate is the candidate's static baseline.
	assert.Equal(t, timing.Defaults()["reason_tree"].BaselineMS, got[0].EstimatedDurationMS)
	assert.Equal(t, timing.Defaults()["reason_graph"].BaselineMS, got[1].EstimatedDurationMS)
	for _, s := range got {
		assert.NotEmpty(t, s.Reason)
	}
}

func TestValidate_BuiltinTable(t *testing.T) {
	require.NoError(t, Validate(Rules(), timing.Defaults().Known))
}

func TestValidate_RejectsSelfSuggestion(t *testing.T) {
	rules := []Rule{{Source: "reason_tree", Candidate: "reason_tree", Reason: "loop"}}
	assert.Error(t, Validate(rules, timing.Defaults().Known))
}

func TestValidate_RejectsUnknownTools(t *testing.T) {
	known := timing.Defaults().Known

	assert.Error(t, Validate([]Rule{{Source: "nope", Candidate: "reason_tree", Reason: "r"}}, known))
	assert.Error(t, Validate([]Rule{{Source: "reason_tree", Candidate: "nope", Reason: "r"}}, known))
	assert.Error(t, Validate([]Rule{{Source: "reason_tree", Candidate: "reason_mcts", Reason: ""}}, known))
}
