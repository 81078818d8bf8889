package filter

import (
	"context"

	"github.com/spiritsage/spiritkit/core"
	"github.com/spiritsage/spiritkit/pkg/dsl"
)

// ExprFilter removes items matching a CEL expression, so exclusion
// rules ship as config instead of code. An item is filtered when the
// expression evaluates to true; evaluation errors keep the item.
//
// Example: `item.kind == "category" && item.score == 0.0`
type ExprFilter struct {
	Expr string
}

func NewExprFilter(expr string) *ExprFilter {
	return &ExprFilter{Expr: expr}
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	if f.Expr == "" {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}
