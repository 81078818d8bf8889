package pipeline

import (
	"context"

	"github.com/spiritsage/spiritkit/core"
)

// Pipeline chains recommendation stages into one pass:
// Score -> Filter -> ReRank -> Resolve.
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
