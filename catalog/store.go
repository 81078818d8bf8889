package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/spiritsage/spiritkit/core"
)

// Default store keys for the three serialized collections.
const (
	DefaultCategoriesKey = "catalog:categories"
	DefaultSubtypesKey   = "catalog:subtypes"
	DefaultBrandsKey     = "catalog:brands"
)

// StoreProvider serves snapshots loaded from a core.Store, where each
// collection lives under its own key as a JSON array. Refresh loads
// the three collections concurrently; until the first Refresh the
// provider reports loading, and a failed Refresh reports the error in
// the snapshot rather than returning a broken collection set.
type StoreProvider struct {
	Store core.Store

	CategoriesKey string
	SubtypesKey   string
	BrandsKey     string

	mu   sync.RWMutex
	snap *core.Snapshot
}

func NewStoreProvider(store core.Store) *StoreProvider {
	return &StoreProvider{
		Store:         store,
		CategoriesKey: DefaultCategoriesKey,
		SubtypesKey:   DefaultSubtypesKey,
		BrandsKey:     DefaultBrandsKey,
		snap:          &core.Snapshot{Loading: true},
	}
}

func (p *StoreProvider) Snapshot(_ context.Context) *core.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Refresh reloads all three collections. The served snapshot is only
// replaced once the whole load either succeeds or fails.
func (p *StoreProvider) Refresh(ctx context.Context) error {
	var (
		categories []core.Category
		subtypes   []core.Subtype
		brands     []core.Brand
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return p.loadCollection(ctx, p.CategoriesKey, &categories)
	})
	eg.Go(func() error {
		return p.loadCollection(ctx, p.SubtypesKey, &subtypes)
	})
	eg.Go(func() error {
		return p.loadCollection(ctx, p.BrandsKey, &brands)
	})

	if err := eg.Wait(); err != nil {
		p.mu.Lock()
		p.snap = &core.Snapshot{Err: err}
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.snap = &core.Snapshot{
		Categories: categories,
		Subtypes:   subtypes,
		Brands:     brands,
	}
	p.mu.Unlock()
	return nil
}

// loadCollection reads one key into dst. A missing key is an empty
// collection, not an error.
func (p *StoreProvider) loadCollection(ctx context.Context, key string, dst any) error {
	data, err := p.Store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil
		}
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

var _ core.SnapshotProvider = (*StoreProvider)(nil)
