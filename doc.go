// Package spiritkit is the SpiritSage recommendation core: a
// deterministic, explainable, single-user recommender over a spirits
// catalog, driven entirely by the local interaction history.
//
// Design points:
//   - Pipeline-first: a recommendation pass is a chain of Nodes
//     (Score -> Filter -> ReRank -> Resolve)
//   - Labels-first: every stage tags the items it touched, so each
//     recommendation is traceable back to its interactions
//   - Node extensibility: custom stages plug in by implementing Node
package spiritkit

import "github.com/spiritsage/spiritkit/pipeline"

// Lightweight facade so users can import "spiritkit" for the core
// abstractions directly.
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindScore   = pipeline.KindScore
	KindFilter  = pipeline.KindFilter
	KindReRank  = pipeline.KindReRank
	KindResolve = pipeline.KindResolve
)
