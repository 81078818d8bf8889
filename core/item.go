package core

import "github.com/spiritsage/spiritkit/pkg/utils"

// ItemKind discriminates the three catalog collections. IDs are only
// unique within one collection, so a bare ID never identifies an item.
type ItemKind string

const (
	ItemKindCategory ItemKind = "category"
	ItemKindSubtype  ItemKind = "subtype"
	ItemKindBrand    ItemKind = "brand"
)

// Key is the composite identity of a catalog item: (kind, id).
// All internal maps must be keyed by Key, never by ID alone.
type Key struct {
	Kind ItemKind
	ID   string
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.ID
}

// Item carries one catalog entity through the pipeline: identity,
// resolved top-level category, score, and explain labels.
// Score is recomputed from scratch on every pass and never persisted.
type Item struct {
	Key Key

	// CategoryID is the top-level category the item rolls up to
	// (a category's own ID, a subtype's parent, a brand's subtype's
	// parent). Empty when the parent chain is broken; such items are
	// still scored but form their own singleton group for diversity.
	CategoryID string

	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(key Key) *Item {
	return &Item{
		Key:    key,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel writes a label; same-key labels accumulate via the default
// merge rule so each stage's contribution stays traceable.
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
