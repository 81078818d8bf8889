package resolve

import (
	"context"
	"testing"

	"github.com/spiritsage/spiritkit/catalog"
	"github.com/spiritsage/spiritkit/core"
)

func testProvider() *catalog.Static {
	return catalog.NewStatic(&core.Snapshot{
		Categories: []core.Category{
			{ID: "whiskey", Name: "Whiskey", ImageURL: "https://img/whiskey.png"},
			{ID: "shared", Name: "Shared The Category"},
		},
		Subtypes: []core.Subtype{
			{ID: "single-malt", Name: "Single Malt", CategoryID: "whiskey"},
		},
		Brands: []core.Brand{
			{ID: "lagavulin-16", Name: "Lagavulin 16", SubtypeID: "single-malt", ImageURL: "https://img/laga.png"},
			{ID: "shared", Name: "Shared The Brand", SubtypeID: "single-malt"},
		},
	})
}

func runResolve(t *testing.T, keys ...core.Key) []Record {
	t.Helper()
	items := make([]*core.Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, core.NewItem(k))
	}
	n := &DetailNode{Provider: testProvider()}
	out, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	return Records(out)
}

func TestDetailNode_ResolvesEachCollection(t *testing.T) {
	recs := runResolve(t,
		core.Key{Kind: core.ItemKindBrand, ID: "lagavulin-16"},
		core.Key{Kind: core.ItemKindSubtype, ID: "single-malt"},
		core.Key{Kind: core.ItemKindCategory, ID: "whiskey"},
	)

	if len(recs) != 3 {
		t.Fatalf("resolved %d records, want 3", len(recs))
	}
	wantNames := []string{"Lagavulin 16", "Single Malt", "Whiskey"}
	wantKinds := []core.ItemKind{core.ItemKindBrand, core.ItemKindSubtype, core.ItemKindCategory}
	for i, rec := range recs {
		if rec.Name != wantNames[i] {
			t.Errorf("record %d name = %s, want %s", i, rec.Name, wantNames[i])
		}
		if rec.Kind != wantKinds[i] {
			t.Errorf("record %d kind = %s, want %s", i, rec.Kind, wantKinds[i])
		}
	}
}

func TestDetailNode_BrandWinsOnSharedID(t *testing.T) {
	// "shared" exists as both a brand and a category; the probe
	// priority brand -> subtype -> category must pick the brand.
	recs := runResolve(t, core.Key{Kind: core.ItemKindCategory, ID: "shared"})
	if len(recs) != 1 {
		t.Fatalf("resolved %d records, want 1", len(recs))
	}
	if recs[0].Name != "Shared The Brand" || recs[0].Kind != core.ItemKindBrand {
		t.Fatalf("got %+v, want the brand record", recs[0])
	}
}

func TestDetailNode_PlaceholderImage(t *testing.T) {
	recs := runResolve(t, core.Key{Kind: core.ItemKindSubtype, ID: "single-malt"})
	if len(recs) != 1 {
		t.Fatalf("resolved %d records, want 1", len(recs))
	}
	if recs[0].ImageURL != PlaceholderImageURL {
		t.Fatalf("image = %s, want placeholder", recs[0].ImageURL)
	}
}

func TestDetailNode_DropsUnresolvable(t *testing.T) {
	recs := runResolve(t,
		core.Key{Kind: core.ItemKindBrand, ID: "lagavulin-16"},
		core.Key{Kind: core.ItemKindBrand, ID: "deleted-brand"},
	)

	// The stale id is dropped silently; the list just shrinks.
	if len(recs) != 1 {
		t.Fatalf("resolved %d records, want 1", len(recs))
	}
	if recs[0].ID != "lagavulin-16" {
		t.Fatalf("record = %+v, want lagavulin-16", recs[0])
	}
}
