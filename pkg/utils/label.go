package utils

// Label is the explainability carrier of the pipeline: every stage
// tags the items it touched so a recommendation can be traced back to
// the interactions and stages that produced it.
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // score / filter / rerank / resolve / rule ...
}

// MergeLabel merges two labels with the same key, keeping history:
// values accumulate with '|', sources with ','.
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
