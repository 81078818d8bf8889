// Package resolve expands selected catalog keys into display-ready
// records for UI consumers.
package resolve

import (
	"context"

	"github.com/spiritsage/spiritkit/core"
	"github.com/spiritsage/spiritkit/pipeline"
	"github.com/spiritsage/spiritkit/pkg/utils"
)

// PlaceholderImageURL fills in for catalog records without an image.
const PlaceholderImageURL = "https://placehold.co/300x300?text=SpiritSage"

// Record is the display shape handed to UI consumers.
type Record struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	ImageURL string        `json:"imageUrl"`
	Kind     core.ItemKind `json:"kind"`
}

// DetailNode resolves each selected item to its catalog record by
// probing collections in fixed priority: brand, then subtype, then
// category. The declared kind is not trusted for lookup; it exists so
// legacy ids recorded without a kind still resolve. Items that match
// nothing are dropped silently, so a stale snapshot can shorten the
// list below the quota without erroring.
type DetailNode struct {
	Provider core.SnapshotProvider
}

func (n *DetailNode) Name() string        { return "resolve.detail" }
func (n *DetailNode) Kind() pipeline.Kind { return pipeline.KindResolve }

func (n *DetailNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Provider == nil || len(items) == 0 {
		return items, nil
	}
	snap := n.Provider.Snapshot(ctx)
	if snap == nil {
		return nil, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		rec, source, ok := lookup(snap, it.Key.ID)
		if !ok {
			continue
		}
		it.Meta["name"] = rec.Name
		it.Meta["image_url"] = rec.ImageURL
		it.Meta["resolved_kind"] = rec.Kind
		it.PutLabel("resolve_source", utils.Label{Value: source, Source: "resolve"})
		out = append(out, it)
	}
	return out, nil
}

// Records converts resolved items into display records. Items the
// DetailNode did not annotate are skipped.
func Records(items []*core.Item) []Record {
	out := make([]Record, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		name, ok := it.Meta["name"].(string)
		if !ok {
			continue
		}
		kind, _ := it.Meta["resolved_kind"].(core.ItemKind)
		image, _ := it.Meta["image_url"].(string)
		out = append(out, Record{
			ID:       it.Key.ID,
			Name:     name,
			ImageURL: image,
			Kind:     kind,
		})
	}
	return out
}

// lookup probes brands, subtypes, then categories for id.
func lookup(snap *core.Snapshot, id string) (Record, string, bool) {
	for _, b := range snap.Brands {
		if b.ID == id {
			return Record{
				ID:       b.ID,
				Name:     b.Name,
				ImageURL: imageOrPlaceholder(b.ImageURL),
				Kind:     core.ItemKindBrand,
			}, "brands", true
		}
	}
	for _, st := range snap.Subtypes {
		if st.ID == id {
			return Record{
				ID:       st.ID,
				Name:     st.Name,
				ImageURL: imageOrPlaceholder(st.ImageURL),
				Kind:     core.ItemKindSubtype,
			}, "subtypes", true
		}
	}
	for _, c := range snap.Categories {
		if c.ID == id {
			return Record{
				ID:       c.ID,
				Name:     c.Name,
				ImageURL: imageOrPlaceholder(c.ImageURL),
				Kind:     core.ItemKindCategory,
			}, "categories", true
		}
	}
	return Record{}, "", false
}

func imageOrPlaceholder(url string) string {
	if url == "" {
		return PlaceholderImageURL
	}
	return url
}
