// Package score ranks the full catalog from the interaction log,
// favoring recent and higher-weighted interactions.
package score

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/spiritsage/spiritkit/core"
	"github.com/spiritsage/spiritkit/pipeline"
	"github.com/spiritsage/spiritkit/pkg/utils"
)

const (
	// DefaultDecayDays is the exponential decay time constant: an
	// interaction from 30 days ago weighs ~0.37, from 90 days ~0.05.
	DefaultDecayDays = 30

	millisPerDay = 86_400_000
)

// HistorySource supplies the current interaction log, most recent
// first. history.Log satisfies it.
type HistorySource interface {
	Snapshot() []core.Interaction
}

// InteractionNode scores every incoming catalog item:
//
//	interactionScore = actionWeight * exp(-ageDays/decayDays) + ratingBonus
//
// Scores for the same (kind, id) sum across interactions. A second
// total accumulates per top-level category (category affinity); it
// does not rank items but is surfaced for explain and diversity
// diagnostics. Items never interacted with score zero and keep the
// catalog enumeration order, which is also the tie-break order.
type InteractionNode struct {
	History HistorySource

	// DecayDays overrides the decay time constant (default 30).
	DecayDays float64
}

func (n *InteractionNode) Name() string        { return "score.interaction" }
func (n *InteractionNode) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *InteractionNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	decayDays := n.DecayDays
	if decayDays <= 0 {
		decayDays = DefaultDecayDays
	}

	var log []core.Interaction
	if n.History != nil {
		log = n.History.Snapshot()
	}

	categoryOf := make(map[core.Key]string, len(items))
	for _, it := range items {
		if it != nil {
			categoryOf[it.Key] = it.CategoryID
		}
	}

	now := rctx.At().UnixMilli()
	itemScores := make(map[core.Key]float64, len(log))
	categoryScores := make(map[string]float64)

	for _, in := range log {
		ageDays := float64(now-in.Timestamp) / millisPerDay
		decay := math.Exp(-ageDays / decayDays)

		s := in.Action.Weight() * decay
		if in.Action == core.ActionRate && in.Rating > 0 {
			s += float64(in.Rating) / 5 * 2
		}

		key := in.Key()
		itemScores[key] += s
		if cat := categoryOf[key]; cat != "" {
			categoryScores[cat] += s
		}
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		it.Score = itemScores[it.Key]
		if affinity, ok := categoryScores[it.CategoryID]; ok && it.CategoryID != "" {
			it.Meta["category_affinity"] = affinity
		}
		if it.Score > 0 {
			it.PutLabel("score_source", utils.Label{Value: "interaction", Source: "score"})
			it.PutLabel("score_value", utils.Label{Value: fmt.Sprintf("%.4f", it.Score), Source: "score"})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].Score > items[j].Score
	})
	return items, nil
}
