package filter

import (
	"context"

	"github.com/spiritsage/spiritkit/core"
)

// KindFilter removes whole item kinds from the candidate set, e.g. a
// surface that only recommends brands.
type KindFilter struct {
	Exclude []core.ItemKind
}

func NewKindFilter(exclude ...core.ItemKind) *KindFilter {
	return &KindFilter{Exclude: exclude}
}

func (f *KindFilter) Name() string { return "filter.kind" }

func (f *KindFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	for _, kind := range f.Exclude {
		if item.Key.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}
