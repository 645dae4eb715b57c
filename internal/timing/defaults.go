/*
Package timing predicts tool execution durations from historical samples.

Each reasoning tool carries a static cost model (baseline duration plus
per-feature multipliers) that serves as the fallback when little or no
history exists. As matching samples accumulate, the estimate shifts from
the static model to the observed mean, with a graded confidence level.
*/
package timing

import "fmt"

// FeatureDefault documents one complexity feature of a tool: its
// documented default value, the per-unit cost multiplier applied to
// deviations from that default, and the bucketing step used to group
// samples with comparable feature values.
type FeatureDefault struct {
	// Default is the documented default value of the feature.
	Default float64

	// Multiplier scales the baseline per unit of deviation from Default.
	// estimate = baseline * Π(1 + (value - Default) * Multiplier)
	Multiplier float64

	// BucketStep discretizes the feature for sample matching. Values are
	// rounded to the nearest multiple of BucketStep; 1 means integral
	// equality.
	BucketStep float64
}

// ToolDefault is the static fallback cost model for one tool.
type ToolDefault struct {
	// BaselineMS is the expected duration at default feature values.
	BaselineMS int64

	// Features maps feature names to their defaults. Features absent
	// from this map are unknown to the estimator and ignored.
	Features map[string]FeatureDefault
}

// Catalog maps tool names to their static cost models. Loaded once at
// startup, never mutated at runtime.
type Catalog map[string]ToolDefault

// Defaults returns the built-in cost models for the reasoning tools.
func Defaults() Catalog {
	return Catalog{
		"reason_divergent": {
			BaselineMS: 8000,
			Features: map[string]FeatureDefault{
				"perspectives": {Default: 3, Multiplier: 0.25, BucketStep: 1},
			},
		},
		"reason_tree": {
			BaselineMS: 10000,
			Features: map[string]FeatureDefault{
				"branches": {Default: 3, Multiplier: 0.20, BucketStep: 1},
				"depth":    {Default: 3, Multiplier: 0.15, BucketStep: 1},
			},
		},
		"reason_mcts": {
			BaselineMS: 15000,
			Features: map[string]FeatureDefault{
				"simulations": {Default: 100, Multiplier: 0.004, BucketStep: 25},
				"depth":       {Default: 4, Multiplier: 0.10, BucketStep: 1},
			},
		},
		"reason_graph": {
			BaselineMS: 9000,
			Features: map[string]FeatureDefault{
				"nodes": {Default: 10, Multiplier: 0.05, BucketStep: 2},
			},
		},
		"reason_counterfactual": {
			BaselineMS: 8000,
			Features: map[string]FeatureDefault{
				"scenarios": {Default: 2, Multiplier: 0.30, BucketStep: 1},
			},
		},
	}
}

// Validate checks catalog invariants. Called once at startup so a
// misconfigured catalog fails the process, never a request.
func (c Catalog) Validate() error {
	for tool, def := range c {
		if def.BaselineMS <= 0 {
			return fmt.Errorf("tool %q: baseline must be positive, got %d", tool, def.BaselineMS)
		}
		for name, fd := range def.Features {
			if fd.BucketStep <= 0 {
				return fmt.Errorf("tool %q feature %q: bucket step must be positive", tool, name)
			}
		}
	}
	return nil
}

// Known reports whether the catalog has a cost model for the tool.
func (c Catalog) Known(tool string) bool {
	_, ok := c[tool]
	return ok
}
