package score

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/spiritsage/spiritkit/core"
)

type stubHistory []core.Interaction

func (s stubHistory) Snapshot() []core.Interaction { return s }

func testSnapshot() *core.Snapshot {
	return &core.Snapshot{
		Categories: []core.Category{
			{ID: "whiskey", Name: "Whiskey"},
			{ID: "gin", Name: "Gin"},
			{ID: "rum", Name: "Rum"},
		},
		Subtypes: []core.Subtype{
			{ID: "single-malt", Name: "Single Malt", CategoryID: "whiskey"},
			{ID: "london-dry", Name: "London Dry", CategoryID: "gin"},
		},
		Brands: []core.Brand{
			{ID: "brand-a", Name: "Brand A", SubtypeID: "single-malt"},
			{ID: "brand-b", Name: "Brand B", SubtypeID: "london-dry"},
		},
	}
}

func runScorer(t *testing.T, log []core.Interaction, now time.Time) []*core.Item {
	t.Helper()
	n := &InteractionNode{History: stubHistory(log)}
	items, err := n.Process(context.Background(), &core.RecommendContext{Now: now}, testSnapshot().Items())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	return items
}

func findItem(t *testing.T, items []*core.Item, key core.Key) *core.Item {
	t.Helper()
	for _, it := range items {
		if it.Key == key {
			return it
		}
	}
	t.Fatalf("item %v not found", key)
	return nil
}

func TestInteractionNode_FreshRating(t *testing.T) {
	now := time.Now()
	items := runScorer(t, []core.Interaction{
		{ItemID: "brand-a", ItemKind: core.ItemKindBrand, Action: core.ActionRate, Rating: 5, Timestamp: now.UnixMilli()},
	}, now)

	// weight 3 * decay 1 + (5/5)*2 = 5.0
	got := items[0]
	if got.Key != (core.Key{Kind: core.ItemKindBrand, ID: "brand-a"}) {
		t.Fatalf("top item = %v, want brand-a", got.Key)
	}
	if math.Abs(got.Score-5.0) > 1e-9 {
		t.Fatalf("score = %v, want 5.0", got.Score)
	}

	for _, it := range items[1:] {
		if it.Score != 0 {
			t.Errorf("item %v score = %v, want 0", it.Key, it.Score)
		}
	}
}

func TestInteractionNode_EmptyLogKeepsCatalogOrder(t *testing.T) {
	items := runScorer(t, nil, time.Now())

	want := testSnapshot().Items()
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i].Key != want[i].Key {
			t.Errorf("position %d = %v, want %v (enumeration order must hold on ties)", i, items[i].Key, want[i].Key)
		}
		if items[i].Score != 0 {
			t.Errorf("item %v score = %v, want 0", items[i].Key, items[i].Score)
		}
	}
}

func TestInteractionNode_DecayMonotonicity(t *testing.T) {
	now := time.Now()
	recent := runScorer(t, []core.Interaction{
		{ItemID: "gin", ItemKind: core.ItemKindCategory, Action: core.ActionView, Timestamp: now.UnixMilli()},
	}, now)
	old := runScorer(t, []core.Interaction{
		{ItemID: "gin", ItemKind: core.ItemKindCategory, Action: core.ActionView, Timestamp: now.Add(-40 * 24 * time.Hour).UnixMilli()},
	}, now)

	key := core.Key{Kind: core.ItemKindCategory, ID: "gin"}
	recentScore := findItem(t, recent, key).Score
	oldScore := findItem(t, old, key).Score

	if recentScore <= oldScore {
		t.Fatalf("recent score %v must exceed older score %v", recentScore, oldScore)
	}
	if oldScore <= 0 {
		t.Fatalf("decayed score must stay positive, got %v", oldScore)
	}

	// 30-day time constant: a 30-day-old view decays to ~0.37.
	month := runScorer(t, []core.Interaction{
		{ItemID: "gin", ItemKind: core.ItemKindCategory, Action: core.ActionView, Timestamp: now.Add(-30 * 24 * time.Hour).UnixMilli()},
	}, now)
	if s := findItem(t, month, key).Score; math.Abs(s-math.Exp(-1)) > 1e-6 {
		t.Fatalf("30-day-old view score = %v, want ~%v", s, math.Exp(-1))
	}
}

func TestInteractionNode_WeightOrdering(t *testing.T) {
	now := time.Now()
	ts := now.UnixMilli()
	items := runScorer(t, []core.Interaction{
		{ItemID: "whiskey", ItemKind: core.ItemKindCategory, Action: core.ActionView, Timestamp: ts},
		{ItemID: "gin", ItemKind: core.ItemKindCategory, Action: core.ActionFavorite, Timestamp: ts},
		{ItemID: "rum", ItemKind: core.ItemKindCategory, Action: core.ActionRate, Rating: 4, Timestamp: ts},
	}, now)

	view := findItem(t, items, core.Key{Kind: core.ItemKindCategory, ID: "whiskey"}).Score
	favorite := findItem(t, items, core.Key{Kind: core.ItemKindCategory, ID: "gin"}).Score
	rate := findItem(t, items, core.Key{Kind: core.ItemKindCategory, ID: "rum"}).Score

	if !(view < favorite && favorite < rate) {
		t.Fatalf("want view < favorite < rate, got %v / %v / %v", view, favorite, rate)
	}
	for _, s := range []float64{view, favorite, rate} {
		if s < 0 {
			t.Fatalf("scores must be non-negative, got %v", s)
		}
	}
}

func TestInteractionNode_CompositeKeyNoCollision(t *testing.T) {
	// Same ID in two collections: interactions must not bleed across
	// kinds.
	snap := testSnapshot()
	snap.Brands = append(snap.Brands, core.Brand{ID: "gin", Name: "Gin The Brand", SubtypeID: "london-dry"})

	now := time.Now()
	n := &InteractionNode{History: stubHistory{
		{ItemID: "gin", ItemKind: core.ItemKindBrand, Action: core.ActionFavorite, Timestamp: now.UnixMilli()},
	}}
	items, err := n.Process(context.Background(), &core.RecommendContext{Now: now}, snap.Items())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	brand := findItem(t, items, core.Key{Kind: core.ItemKindBrand, ID: "gin"})
	category := findItem(t, items, core.Key{Kind: core.ItemKindCategory, ID: "gin"})

	if brand.Score <= 0 {
		t.Fatalf("brand score = %v, want > 0", brand.Score)
	}
	if category.Score != 0 {
		t.Fatalf("category score = %v, want 0 (no cross-kind bleed)", category.Score)
	}
}

func TestInteractionNode_SummingAndCategoryAffinity(t *testing.T) {
	now := time.Now()
	ts := now.UnixMilli()
	items := runScorer(t, []core.Interaction{
		{ItemID: "brand-a", ItemKind: core.ItemKindBrand, Action: core.ActionView, Timestamp: ts},
		{ItemID: "brand-a", ItemKind: core.ItemKindBrand, Action: core.ActionView, Timestamp: ts},
	}, now)

	brand := findItem(t, items, core.Key{Kind: core.ItemKindBrand, ID: "brand-a"})
	if math.Abs(brand.Score-2.0) > 1e-9 {
		t.Fatalf("two fresh views should sum to 2.0, got %v", brand.Score)
	}

	// brand-a rolls up to whiskey; affinity mirrors the summed score.
	affinity, ok := brand.Meta["category_affinity"].(float64)
	if !ok {
		t.Fatal("expected category_affinity meta on interacted item")
	}
	if math.Abs(affinity-2.0) > 1e-9 {
		t.Fatalf("whiskey affinity = %v, want 2.0", affinity)
	}
}
