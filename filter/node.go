package filter

import (
	"context"

	"github.com/spiritsage/spiritkit/core"
	"github.com/spiritsage/spiritkit/pipeline"
	"github.com/spiritsage/spiritkit/pkg/utils"
)

// FilterNode runs a chain of filters; an item is removed as soon as
// any filter claims it. Filter errors skip that filter rather than
// abort the pass.
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		removed := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				continue
			}
			if ok {
				item.PutLabel("filtered", utils.Label{Value: "true", Source: f.Name()})
				removed = true
				break
			}
		}
		if removed {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}
