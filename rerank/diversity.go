// Package rerank reorders and truncates the ranked candidate list.
package rerank

import (
	"context"
	"math/rand"

	"github.com/spiritsage/spiritkit/core"
	"github.com/spiritsage/spiritkit/pipeline"
	"github.com/spiritsage/spiritkit/pkg/utils"
)

// DefaultCount is the recommendation quota.
const DefaultCount = 5

// DiversityTopN selects up to N items from the score-sorted list,
// spreading picks across distinct top-level categories before filling
// remaining slots by raw score. Three phases:
//
//  1. diversity: walk the sorted list, take the first item of each
//     unseen category until the quota fills. Items without a resolved
//     category count as their own singleton category.
//  2. backfill: walk again, take anything unselected, in score order.
//  3. filler: if the catalog itself is smaller than the quota, append
//     remaining unselected items in shuffled order.
//
// Picks keep their phase as a label for explain.
type DiversityTopN struct {
	// N is the quota (default DefaultCount).
	N int

	// Rand drives the filler shuffle; nil uses the global source.
	Rand *rand.Rand
}

func (n *DiversityTopN) Name() string        { return "rerank.diversity_topn" }
func (n *DiversityTopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *DiversityTopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	quota := n.N
	if quota <= 0 {
		quota = DefaultCount
	}
	if len(items) == 0 {
		return nil, nil
	}

	selected := make([]*core.Item, 0, quota)
	picked := make(map[core.Key]bool, quota)
	seenCategory := make(map[string]bool, quota)

	// Phase 1: one item per distinct category, in score order.
	for _, it := range items {
		if len(selected) >= quota {
			break
		}
		if it == nil {
			continue
		}
		if it.CategoryID != "" {
			if seenCategory[it.CategoryID] {
				continue
			}
			seenCategory[it.CategoryID] = true
		}
		it.PutLabel("pick_phase", utils.Label{Value: "diversity", Source: "rerank"})
		selected = append(selected, it)
		picked[it.Key] = true
	}

	// Phase 2: backfill by raw score, ignoring categories.
	for _, it := range items {
		if len(selected) >= quota {
			break
		}
		if it == nil || picked[it.Key] {
			continue
		}
		it.PutLabel("pick_phase", utils.Label{Value: "backfill", Source: "rerank"})
		selected = append(selected, it)
		picked[it.Key] = true
	}

	// Phase 3: shuffled filler when the catalog is smaller than the
	// quota. After phase 2 only duplicates of already-picked keys can
	// remain, so this usually appends nothing.
	if len(selected) < quota {
		rest := make([]*core.Item, 0, len(items))
		for _, it := range items {
			if it == nil || picked[it.Key] {
				continue
			}
			rest = append(rest, it)
		}
		shuffle := rand.Shuffle
		if n.Rand != nil {
			shuffle = n.Rand.Shuffle
		}
		shuffle(len(rest), func(i, j int) {
			rest[i], rest[j] = rest[j], rest[i]
		})
		for _, it := range rest {
			if len(selected) >= quota {
				break
			}
			it.PutLabel("pick_phase", utils.Label{Value: "filler", Source: "rerank"})
			selected = append(selected, it)
			picked[it.Key] = true
		}
	}

	return selected, nil
}
