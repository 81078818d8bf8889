package core

import (
	"time"

	"github.com/spiritsage/spiritkit/pkg/utils"
)

// RecommendContext carries per-pass request state through the pipeline.
type RecommendContext struct {
	UserID string
	Scene  string

	// Now anchors time-decay for the whole pass so every node sees the
	// same instant. Zero means "use wall clock".
	Now time.Time

	// Labels are user-level labels that can drive node behavior.
	Labels map[string]utils.Label

	// Params are request-level parameters (debug flags, quotas ...).
	Params map[string]any
}

// At returns the pass anchor time, falling back to the wall clock.
func (rctx *RecommendContext) At() time.Time {
	if rctx == nil || rctx.Now.IsZero() {
		return time.Now()
	}
	return rctx.Now
}

// PutLabel writes a user-level label, merging on key collision.
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel reads a user-level label.
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx == nil || rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
