package timing

import (
	"math"

	"go.uber.org/zap"

	"github.com/khanglvm/reason-hub-mcp/internal/storage"
)

const (
	// highSampleCount is the matching-sample count at which an estimate
	// is graded High and rests purely on the observed mean.
	highSampleCount = 20

	// mediumSampleCount is the minimum matching-sample count for a
	// Medium grade. Below it the static default model takes over.
	mediumSampleCount = 5
)

// Confidence is the qualitative grade of a duration estimate, derived
// solely from the matching historical sample count.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Estimate is a duration prediction for one tool invocation.
type Estimate struct {
	// DurationMS is the predicted duration in milliseconds.
	DurationMS int64

	// Confidence grades the prediction by matching sample count.
	Confidence Confidence

	// WillTimeout reports whether the prediction exceeds the budget.
	WillTimeout bool

	// SampleCount is the number of matching historical samples used.
	SampleCount int

	// Degraded reports that the store read failed and the estimate fell
	// back to the static model. Soft failure, surfaced for operators.
	Degraded bool
}

// Estimator converts stored samples (or static defaults when absent)
// into duration predictions. It is a pure read over the store: for a
// given store state and input the result is deterministic, and it never
// returns an error. Missing data degrades confidence instead.
type Estimator struct {
	store    storage.Store
	defaults Catalog
	logger   *zap.Logger
}

// NewEstimator creates an estimator over the given store and catalog.
func NewEstimator(store storage.Store, defaults Catalog, logger *zap.Logger) *Estimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Estimator{store: store, defaults: defaults, logger: logger}
}

// Defaults returns the estimator's static cost catalog.
func (e *Estimator) Defaults() Catalog {
	return e.defaults
}

// Estimate predicts the duration of a tool invocation with the given
// complexity features against a timeout budget in milliseconds.
func (e *Estimator) Estimate(tool string, features map[string]float64, timeoutBudgetMS int64) Estimate {
	bucket := e.defaults.BucketKey(tool, features)

	samples, err := e.store.QuerySamples(tool, bucket)
	degraded := false
	if err != nil {
		// A failed read is "no samples available", never a hard error.
		if err != storage.ErrUnavailable {
			e.logger.Warn("sample lookup failed, using static model",
				zap.String("tool", tool), zap.Error(err))
		}
		samples = nil
		degraded = true
	}

	n := len(samples)
	baseline := e.staticModel(tool, features)

	var duration int64
	var confidence Confidence
	switch {
	case n >= highSampleCount:
		confidence = ConfidenceHigh
		duration = meanDuration(samples)
	case n >= mediumSampleCount:
		confidence = ConfidenceMedium
		blended := float64(meanDuration(samples))*float64(n) + float64(baseline)*float64(highSampleCount-n)
		duration = int64(math.Round(blended / float64(highSampleCount)))
	default:
		confidence = ConfidenceLow
		duration = baseline
	}

	return Estimate{
		DurationMS:  duration,
		Confidence:  confidence,
		WillTimeout: duration > timeoutBudgetMS,
		SampleCount: n,
		Degraded:    degraded,
	}
}

// staticModel computes the fallback estimate: the tool's baseline scaled
// by each present feature's deviation from its documented default.
// Features unknown to the catalog contribute no multiplier.
func (e *Estimator) staticModel(tool string, features map[string]float64) int64 {
	def, ok := e.defaults[tool]
	if !ok {
		return 0
	}

	estimate := float64(def.BaselineMS)
	for name, fd := range def.Features {
		value, present := features[name]
		if !present {
			continue
		}
		factor := 1 + (value-fd.Default)*fd.Multiplier
		if factor < 0 {
			factor = 0
		}
		estimate *= factor
	}

	if estimate < 0 {
		estimate = 0
	}
	return int64(math.Round(estimate))
}

// meanDuration is the arithmetic mean of sample durations, rounded.
func meanDuration(samples []storage.Sample) int64 {
	if len(samples) == 0 {
		return 0
	}
	var sum int64
	for _, s := range samples {
		sum += s.DurationMS
	}
	return int64(math.Round(float64(sum) / float64(len(samples))))
}
