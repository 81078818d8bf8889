package core

import "context"

// Category is a top-level spirit category (whiskey, gin, rum ...).
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// Subtype belongs to a category (single malt, london dry ...).
type Subtype struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url,omitempty"`
	CategoryID string `json:"category_id"`
}

// Brand belongs to a subtype.
type Brand struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url,omitempty"`
	SubtypeID string `json:"subtype_id"`
}

// Snapshot is a read-only view of the three catalog collections plus
// the upstream load state. The recommendation pass reads a fresh
// snapshot each time; nothing here is mutated by the pipeline.
type Snapshot struct {
	Categories []Category
	Subtypes   []Subtype
	Brands     []Brand

	Loading bool
	Err     error
}

// Ready reports whether the snapshot can back a recommendation pass.
func (s *Snapshot) Ready() bool {
	return s != nil && !s.Loading && s.Err == nil
}

// Len is the total number of catalog items across all collections.
func (s *Snapshot) Len() int {
	return len(s.Categories) + len(s.Subtypes) + len(s.Brands)
}

// CategoryOf resolves the top-level category an item rolls up to.
// Returns "" when the parent chain is broken (stale references).
func (s *Snapshot) CategoryOf(key Key) string {
	switch key.Kind {
	case ItemKindCategory:
		return key.ID
	case ItemKindSubtype:
		if st, ok := s.subtypeByID(key.ID); ok {
			return st.CategoryID
		}
		return ""
	case ItemKindBrand:
		b, ok := s.brandByID(key.ID)
		if !ok {
			return ""
		}
		if st, ok := s.subtypeByID(b.SubtypeID); ok {
			return st.CategoryID
		}
		return ""
	default:
		return ""
	}
}

// Items enumerates every catalog entity as a pipeline Item with its
// category resolved. The order is the stable catalog enumeration
// order (categories, then subtypes, then brands), which also serves
// as the tie-break order for equal scores.
func (s *Snapshot) Items() []*Item {
	subtypeCategory := make(map[string]string, len(s.Subtypes))
	for _, st := range s.Subtypes {
		subtypeCategory[st.ID] = st.CategoryID
	}

	out := make([]*Item, 0, s.Len())
	for _, c := range s.Categories {
		it := NewItem(Key{Kind: ItemKindCategory, ID: c.ID})
		it.CategoryID = c.ID
		out = append(out, it)
	}
	for _, st := range s.Subtypes {
		it := NewItem(Key{Kind: ItemKindSubtype, ID: st.ID})
		it.CategoryID = st.CategoryID
		out = append(out, it)
	}
	for _, b := range s.Brands {
		it := NewItem(Key{Kind: ItemKindBrand, ID: b.ID})
		it.CategoryID = subtypeCategory[b.SubtypeID]
		out = append(out, it)
	}
	return out
}

func (s *Snapshot) subtypeByID(id string) (Subtype, bool) {
	for _, st := range s.Subtypes {
		if st.ID == id {
			return st, true
		}
	}
	return Subtype{}, false
}

func (s *Snapshot) brandByID(id string) (Brand, bool) {
	for _, b := range s.Brands {
		if b.ID == id {
			return b, true
		}
	}
	return Brand{}, false
}

// SnapshotProvider supplies the current catalog snapshot.
// Implementations live in the catalog package; the returned snapshot
// carries its own loading/error state so callers never block on it.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) *Snapshot
}
