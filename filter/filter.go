// Package filter drops candidates that fail eligibility rules before
// selection runs.
package filter

import (
	"context"

	"github.com/spiritsage/spiritkit/core"
)

// Filter decides whether a single item should be removed.
// true means filter out, false means keep.
type Filter interface {
	// Name returns the filter name, used as the filtered-reason label.
	Name() string

	// ShouldFilter reports whether item should be removed.
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
