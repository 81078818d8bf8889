// Package engine orchestrates the recommendation core: it owns the
// interaction log lifecycle, debounces recomputation, runs the
// Score -> Filter -> ReRank -> Resolve pipeline and publishes the
// resulting display list.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/spiritsage/spiritkit/core"
	"github.com/spiritsage/spiritkit/filter"
	"github.com/spiritsage/spiritkit/history"
	"github.com/spiritsage/spiritkit/pipeline"
	"github.com/spiritsage/spiritkit/rerank"
	"github.com/spiritsage/spiritkit/resolve"
	"github.com/spiritsage/spiritkit/score"
)

// DefaultDebounce is the recomputation debounce window.
const DefaultDebounce = 500 * time.Millisecond

// Engine is the recommendation orchestrator. It starts in the loading
// state and becomes ready only once the interaction log has been
// loaded and the catalog snapshot is neither loading nor errored.
// While the snapshot stays unavailable the engine stays loading;
// there is no retry and no separate error state, and callers see an
// empty list rather than an error.
//
// All mutations are synchronous; recomputation is a debounced task
// that reads the log and the snapshot fresh when it fires, so a newly
// scheduled pass simply supersedes a pending one.
type Engine struct {
	provider core.SnapshotProvider
	hist     *history.Log
	pipe     *pipeline.Pipeline
	sched    Scheduler
	debounce time.Duration
	logger   zerolog.Logger
	now      func() time.Time
	baseCtx  context.Context

	mu     sync.RWMutex
	ready  bool
	loaded bool
	recs   []resolve.Record
	subs   []func([]resolve.Record)
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	debounce  time.Duration
	quota     int
	decayDays float64
	sched     Scheduler
	logger    zerolog.Logger
	now       func() time.Time
	filters   []filter.Filter
	histOpts  []history.Option
}

// WithDebounce overrides the 500ms debounce window.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithQuota overrides the recommendation quota (default 5).
func WithQuota(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.quota = n
		}
	}
}

// WithDecayDays overrides the scoring decay time constant.
func WithDecayDays(days float64) Option {
	return func(o *options) {
		if days > 0 {
			o.decayDays = days
		}
	}
}

// WithScheduler injects the debounce scheduler (tests use a fake).
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.sched = s
		}
	}
}

// WithLogger sets the structured logger for the engine and its log.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock injects the pass clock, for deterministic decay in tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithFilters adds eligibility filters between scoring and selection.
func WithFilters(filters ...filter.Filter) Option {
	return func(o *options) {
		o.filters = append(o.filters, filters...)
	}
}

// WithHistoryOptions forwards options to the interaction log.
func WithHistoryOptions(opts ...history.Option) Option {
	return func(o *options) {
		o.histOpts = append(o.histOpts, opts...)
	}
}

// New builds an engine over a catalog provider and the store that
// persists the interaction log.
func New(provider core.SnapshotProvider, store core.Store, opts ...Option) *Engine {
	o := &options{
		debounce: DefaultDebounce,
		quota:    rerank.DefaultCount,
		sched:    NewTimerScheduler(),
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	histOpts := append([]history.Option{history.WithLogger(o.logger)}, o.histOpts...)
	hist := history.New(store, histOpts...)

	nodes := []pipeline.Node{
		&score.InteractionNode{History: hist, DecayDays: o.decayDays},
	}
	if len(o.filters) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: o.filters})
	}
	nodes = append(nodes,
		&rerank.DiversityTopN{N: o.quota},
		&resolve.DetailNode{Provider: provider},
	)

	return &Engine{
		provider: provider,
		hist:     hist,
		pipe:     &pipeline.Pipeline{Nodes: nodes},
		sched:    o.sched,
		debounce: o.debounce,
		logger:   o.logger,
		now:      o.now,
		baseCtx:  context.Background(),
	}
}

// Start loads the persisted interaction log and schedules the first
// recomputation. ctx outlives Start: debounced passes run under it.
func (e *Engine) Start(ctx context.Context) {
	if ctx != nil {
		e.baseCtx = ctx
	}
	e.hist.Load(e.baseCtx)

	e.mu.Lock()
	e.loaded = true
	e.mu.Unlock()

	e.scheduleRecompute()
}

// Stop cancels any pending recomputation.
func (e *Engine) Stop() {
	e.sched.Stop()
}

// Recommendations returns the currently published display list. While
// a recomputation is pending the previous list keeps being served.
func (e *Engine) Recommendations() []resolve.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]resolve.Record, len(e.recs))
	copy(out, e.recs)
	return out
}

// Loading reports whether the engine has published a first list.
func (e *Engine) Loading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.ready
}

// History exposes the interaction log for observability surfaces.
func (e *Engine) History() *history.Log {
	return e.hist
}

// Subscribe registers a callback invoked with each published list.
func (e *Engine) Subscribe(fn func([]resolve.Record)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.subs = append(e.subs, fn)
	e.mu.Unlock()
}

// TrackInteraction records a user action and schedules a debounced
// recomputation. It validates nothing beyond shape and always
// succeeds; rating is only read for ActionRate.
func (e *Engine) TrackInteraction(ctx context.Context, itemID string, kind core.ItemKind, action core.Action, rating int) {
	in := core.Interaction{
		ItemID:    itemID,
		ItemKind:  kind,
		Action:    action,
		Timestamp: e.now().UnixMilli(),
	}
	if action == core.ActionRate {
		in.Rating = rating
	}

	e.hist.Append(ctx, in)
	e.scheduleRecompute()
}

// ClearHistory synchronously empties the log and the published list,
// then schedules a recomputation so the list can repopulate from the
// (now empty) history. The loading state is left untouched.
func (e *Engine) ClearHistory(ctx context.Context) {
	e.hist.Clear(ctx)

	e.mu.Lock()
	e.recs = nil
	subs := make([]func([]resolve.Record), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(nil)
	}

	e.scheduleRecompute()
}

// NotifyCatalogChanged schedules a recomputation; the data layer calls
// it when the catalog snapshot transitions (e.g. finishes loading).
func (e *Engine) NotifyCatalogChanged() {
	e.scheduleRecompute()
}

func (e *Engine) scheduleRecompute() {
	e.sched.Schedule(e.debounce, e.recompute)
}

// recompute runs one full pipeline pass. Preconditions unmet (log not
// loaded, snapshot loading or errored) leave the engine in loading:
// that is the deliberate degraded mode, not a failure.
func (e *Engine) recompute() {
	e.mu.RLock()
	loaded := e.loaded
	e.mu.RUnlock()
	if !loaded {
		return
	}

	ctx := e.baseCtx
	snap := e.provider.Snapshot(ctx)
	if !snap.Ready() {
		if snap != nil && snap.Err != nil {
			e.logger.Debug().Err(snap.Err).Msg("engine: catalog unavailable, staying in loading")
		}
		return
	}

	rctx := &core.RecommendContext{Now: e.now()}
	out, err := e.pipe.Run(ctx, rctx, snap.Items())
	if err != nil {
		e.logger.Warn().Err(err).Msg("engine: recommendation pass failed")
		return
	}

	e.publish(resolve.Records(out))
}

func (e *Engine) publish(recs []resolve.Record) {
	e.mu.Lock()
	e.ready = true
	e.recs = recs
	subs := make([]func([]resolve.Record), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(recs)
	}
}
