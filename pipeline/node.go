package pipeline

import (
	"context"

	"github.com/spiritsage/spiritkit/core"
)

// Kind tags a node with its pipeline stage, for observability and
// config validation.
type Kind string

const (
	KindScore   Kind = "score"   // score every catalog item from the interaction log
	KindFilter  Kind = "filter"  // drop candidates that fail eligibility rules
	KindReRank  Kind = "rerank"  // reorder/truncate the ranked list (diversity, top-n)
	KindResolve Kind = "resolve" // expand selected keys into display records
)

// Node is the smallest composable unit of the pipeline. Every stage
// takes the item list in and hands an item list out, so scoring,
// filtering, selection and resolution all compose the same way.
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder constructs a Node from a decoded config map.
type NodeBuilder = func(map[string]any) (Node, error)
