// Package builders registers the built-in node builders for
// config-driven pipeline assembly.
package builders

import (
	"fmt"

	"github.com/spiritsage/spiritkit/config"
	"github.com/spiritsage/spiritkit/core"
	"github.com/spiritsage/spiritkit/filter"
	"github.com/spiritsage/spiritkit/pipeline"
	"github.com/spiritsage/spiritkit/pkg/conv"
	"github.com/spiritsage/spiritkit/rerank"
	"github.com/spiritsage/spiritkit/score"
)

func init() {
	config.Register("score.interaction", BuildInteractionScoreNode)
	config.Register("rerank.diversity_topn", BuildDiversityTopNNode)
	config.Register("filter", BuildFilterNode)
	config.Register("resolve.detail", BuildDetailNode)
}

// BuildInteractionScoreNode builds the scorer. The history source is
// injected at runtime by whoever assembles the engine, so a
// config-built scorer starts detached and scores everything zero
// until one is attached.
func BuildInteractionScoreNode(cfg map[string]any) (pipeline.Node, error) {
	n := &score.InteractionNode{}
	if days := conv.ConfigGetInt64(cfg, "decay_days", 0); days > 0 {
		n.DecayDays = float64(days)
	}
	return n, nil
}

func BuildDiversityTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n := int(conv.ConfigGetInt64(cfg, "n", int64(rerank.DefaultCount)))
	return &rerank.DiversityTopN{N: n}, nil
}

func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "kind":
			kinds := conv.SliceAnyToString(filterMap["exclude"])
			exclude := make([]core.ItemKind, 0, len(kinds))
			for _, k := range kinds {
				exclude = append(exclude, core.ItemKind(k))
			}
			filters = append(filters, &filter.KindFilter{Exclude: exclude})
		case "expr":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("expr filter requires expr")
			}
			filters = append(filters, filter.NewExprFilter(expr))
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

// BuildDetailNode cannot wire a catalog provider from config; the
// resolver must be constructed in code.
func BuildDetailNode(cfg map[string]any) (pipeline.Node, error) {
	return nil, fmt.Errorf("resolve.detail requires a catalog provider; construct it in code (supported from config: score.interaction, rerank.diversity_topn, filter)")
}
