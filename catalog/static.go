// Package catalog implements snapshot providers for the three catalog
// collections (categories, subtypes, brands).
package catalog

import (
	"context"
	"sync"

	"github.com/spiritsage/spiritkit/core"
)

// Static serves a snapshot held in memory. The data layer that syncs
// with the remote backend swaps in a new snapshot via Update; readers
// always get the last complete one.
type Static struct {
	mu   sync.RWMutex
	snap *core.Snapshot
}

// NewStatic creates a provider. A nil snapshot starts in the loading
// state, matching a backend that has not answered yet.
func NewStatic(snap *core.Snapshot) *Static {
	if snap == nil {
		snap = &core.Snapshot{Loading: true}
	}
	return &Static{snap: snap}
}

func (s *Static) Snapshot(_ context.Context) *core.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Update replaces the served snapshot wholesale.
func (s *Static) Update(snap *core.Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

var _ core.SnapshotProvider = (*Static)(nil)
