package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/spiritsage/spiritkit/core"
)

func item(kind core.ItemKind, id string, score float64) *core.Item {
	it := core.NewItem(core.Key{Kind: kind, ID: id})
	it.Score = score
	return it
}

func TestKindFilter(t *testing.T) {
	f := NewKindFilter(core.ItemKindCategory, core.ItemKindSubtype)

	tests := []struct {
		kind core.ItemKind
		want bool
	}{
		{core.ItemKindCategory, true},
		{core.ItemKindSubtype, true},
		{core.ItemKindBrand, false},
	}
	for _, tt := range tests {
		got, err := f.ShouldFilter(context.Background(), nil, item(tt.kind, "x", 0))
		if err != nil {
			t.Fatalf("ShouldFilter() error = %v", err)
		}
		if got != tt.want {
			t.Errorf("ShouldFilter(%s) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestExprFilter(t *testing.T) {
	f := NewExprFilter(`item.kind == "brand" && item.score < 1.0`)
	rctx := &core.RecommendContext{UserID: "u1"}

	got, err := f.ShouldFilter(context.Background(), rctx, item(core.ItemKindBrand, "b1", 0.5))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if !got {
		t.Error("low-score brand should be filtered")
	}

	got, err = f.ShouldFilter(context.Background(), rctx, item(core.ItemKindBrand, "b2", 2.0))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if got {
		t.Error("high-score brand should be kept")
	}
}

func TestExprFilter_EmptyExprKeepsAll(t *testing.T) {
	f := NewExprFilter("")
	got, err := f.ShouldFilter(context.Background(), nil, item(core.ItemKindBrand, "b1", 0))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if got {
		t.Error("empty expression must not filter anything")
	}
}

type erroringFilter struct{}

func (erroringFilter) Name() string { return "filter.boom" }
func (erroringFilter) ShouldFilter(context.Context, *core.RecommendContext, *core.Item) (bool, error) {
	return true, errors.New("boom")
}

func TestFilterNode(t *testing.T) {
	items := []*core.Item{
		item(core.ItemKindCategory, "whiskey", 1),
		item(core.ItemKindBrand, "lagavulin-16", 2),
		nil,
		item(core.ItemKindSubtype, "single-malt", 3),
	}

	n := &FilterNode{Filters: []Filter{
		erroringFilter{},
		NewKindFilter(core.ItemKindCategory),
	}}
	out, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// The erroring filter is skipped; the kind filter drops the
	// category; the nil entry never survives.
	if len(out) != 2 {
		t.Fatalf("got %d items, want 2", len(out))
	}
	if out[0].Key.ID != "lagavulin-16" || out[1].Key.ID != "single-malt" {
		t.Fatalf("unexpected survivors: %v, %v", out[0].Key, out[1].Key)
	}
}

func TestFilterNode_NoFiltersPassthrough(t *testing.T) {
	items := []*core.Item{item(core.ItemKindBrand, "b1", 0)}
	n := &FilterNode{}
	out, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0] != items[0] {
		t.Fatal("empty filter chain must pass items through unchanged")
	}
}
