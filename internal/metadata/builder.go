package metadata

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khanglvm/reason-hub-mcp/internal/preset"
	"github.com/khanglvm/reason-hub-mcp/internal/session"
	"github.com/khanglvm/reason-hub-mcp/internal/storage"
	"github.com/khanglvm/reason-hub-mcp/internal/suggest"
	"github.com/khanglvm/reason-hub-mcp/internal/timing"
)

// Builder orchestrates the timing estimator, suggestion engine and
// preset matcher into one metadata value per completed tool invocation.
type Builder struct {
	store       storage.Store
	sessions    session.History
	estimator   *timing.Estimator
	suggestions *suggest.Engine
	presets     *preset.Matcher
	budgetMS    int64
	logger      *zap.Logger
}

// NewBuilder wires the builder's collaborators. defaultBudgetMS is the
// factory timeout applied when the execution context carries none.
func NewBuilder(
	store storage.Store,
	sessions session.History,
	estimator *timing.Estimator,
	suggestions *suggest.Engine,
	presets *preset.Matcher,
	defaultBudgetMS int64,
	logger *zap.Logger,
) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		store:       store,
		sessions:    sessions,
		estimator:   estimator,
		suggestions: suggestions,
		presets:     presets,
		budgetMS:    defaultBudgetMS,
		logger:      logger,
	}
}

// Build persists the just-observed sample, updates the session history
// and assembles the response metadata. It never fails: a subcomponent
// error degrades that subcomponent's contribution to a documented
// default instead of propagating.
func (b *Builder) Build(ctx ExecutionContext) ResponseMetadata {
	budget := ctx.TimeoutBudgetMS
	if budget <= 0 {
		budget = b.budgetMS
	}

	// 1. Persist the observed sample. A write failure is an operator
	// concern, not a caller concern.
	sample := storage.Sample{
		Tool:       ctx.Tool,
		Bucket:     b.estimator.Defaults().BucketKey(ctx.Tool, ctx.Features),
		Features:   ctx.Features,
		DurationMS: ctx.ElapsedMS,
		Timestamp:  time.Now(),
	}
	if err := b.store.RecordSample(sample); err != nil {
		b.logger.Warn("failed to record timing sample",
			zap.String("tool", ctx.Tool), zap.Error(err))
	}

	// 2. Append to the session history before the preset matcher reads it.
	b.sessions.AppendTool(ctx.SessionID, ctx.Tool)

	// 3. Prospective estimate for the next call of this tool.
	est := b.estimator.Estimate(ctx.Tool, ctx.Features, budget)
	if est.Degraded {
		b.logger.Warn("timing estimate degraded to static model",
			zap.String("tool", ctx.Tool))
	}

	// 4-5. Suggestions and preset matches. The updated history already
	// ends with the current tool, so it is the observed sequence.
	nextTools := b.suggestions.Suggest(ctx.Tool)
	matches := b.presets.Match(b.sessions.ToolHistory(ctx.SessionID))

	return ResponseMetadata{
		Timing: TimingBlock{
			EstimatedDurationMS:  est.DurationMS,
			Confidence:           string(est.Confidence),
			WillTimeoutOnFactory: est.WillTimeout,
			FactoryTimeoutMS:     budget,
		},
		Suggestions: SuggestionsBlock{
			NextTools:       nextTools,
			RelevantPresets: relevantPresets(matches),
		},
		Context: ContextBlock{
			ModeUsed:   ModeFromTool(ctx.Tool),
			Complexity: b.estimator.Defaults().Normalize(ctx.Tool, ctx.Features),
		},
	}
}

// ModeFromTool maps a tool name to its reasoning mode identifier
// (reason_tree -> tree).
func ModeFromTool(tool string) string {
	return strings.TrimPrefix(tool, "reason_")
}
