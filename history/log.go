// Package history implements the interaction log: an append-only,
// capacity-bounded, most-recent-first record of user actions, fully
// persisted on every mutation through a core.Store.
package history

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/spiritsage/spiritkit/core"
)

const (
	// DefaultCapacity caps the log; the oldest entries are dropped
	// once the cap is exceeded.
	DefaultCapacity = 100

	// DefaultKey is the store key the serialized log lives under.
	DefaultKey = "history:interactions"
)

// Log is the interaction log store. Loss of the persisted log is never
// fatal: a failed write is logged and the in-memory state stands, and
// malformed persisted data is discarded wholesale on load.
type Log struct {
	store    core.Store
	key      string
	capacity int
	logger   zerolog.Logger

	mu      sync.Mutex
	entries []core.Interaction // most recent first
	entropy *ulid.MonotonicEntropy
}

// Option configures a Log.
type Option func(*Log)

// WithCapacity overrides the entry cap.
func WithCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithKey overrides the persistence key.
func WithKey(key string) Option {
	return func(l *Log) {
		if key != "" {
			l.key = key
		}
	}
}

// WithLogger sets the structured logger (default is a no-op logger).
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

func New(store core.Store, opts ...Option) *Log {
	l := &Log{
		store:    store,
		key:      DefaultKey,
		capacity: DefaultCapacity,
		logger:   zerolog.Nop(),
		entropy:  ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load restores the persisted log. Absent or malformed data yields an
// empty log; Load never fails the caller.
func (l *Log) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	if l.store == nil {
		return
	}

	data, err := l.store.Get(ctx, l.key)
	if err != nil {
		if !core.IsStoreNotFound(err) {
			l.logger.Warn().Err(err).Str("key", l.key).Msg("history: load failed, starting empty")
		}
		return
	}

	var entries []core.Interaction
	if err := json.Unmarshal(data, &entries); err != nil {
		l.logger.Warn().Err(err).Str("key", l.key).Msg("history: discarding malformed log")
		return
	}
	l.entries = entries
}

// Append inserts an interaction at the head, enforces the cap, and
// persists the full log. Missing timestamps and event IDs are filled
// in here so every stored record is complete.
func (l *Log) Append(ctx context.Context, in core.Interaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if in.Timestamp == 0 {
		in.Timestamp = time.Now().UnixMilli()
	}
	if in.EventID == "" {
		in.EventID = ulid.MustNew(ulid.Timestamp(time.UnixMilli(in.Timestamp)), l.entropy).String()
	}

	l.entries = append([]core.Interaction{in}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}

	l.persist(ctx)
}

// Clear empties the log and persists the empty state. Idempotent.
func (l *Log) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.persist(ctx)
}

// Snapshot returns a copy of the log, most recent first.
func (l *Log) Snapshot() []core.Interaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]core.Interaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the current number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// persist writes the whole log under the fixed key. Callers hold mu.
// Write failures are logged and swallowed: the in-memory log is the
// source of truth for the current session.
func (l *Log) persist(ctx context.Context) {
	if l.store == nil {
		return
	}

	entries := l.entries
	if entries == nil {
		entries = []core.Interaction{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		l.logger.Warn().Err(err).Msg("history: marshal failed, skipping persist")
		return
	}
	if err := l.store.Set(ctx, l.key, data); err != nil {
		l.logger.Warn().Err(err).Str("store", l.store.Name()).Msg("history: persist failed")
	}
}
