package core

// Action is a recorded user action against a catalog item.
type Action string

const (
	ActionView     Action = "view"
	ActionRate     Action = "rate"
	ActionFavorite Action = "favorite"
)

// Weight returns the base scoring weight of the action.
// Unknown actions weigh zero and contribute nothing.
func (a Action) Weight() float64 {
	switch a {
	case ActionView:
		return 1
	case ActionFavorite:
		return 2
	case ActionRate:
		return 3
	default:
		return 0
	}
}

// Interaction is an immutable event record appended to the history log.
// The JSON shape is the persisted wire format of the log.
type Interaction struct {
	// EventID is a ULID assigned on append, for tracing and dedup.
	EventID string `json:"event_id,omitempty"`

	ItemID   string   `json:"item_id"`
	ItemKind ItemKind `json:"item_kind"`
	Action   Action   `json:"action"`

	// Rating is 1-5 and only meaningful when Action is ActionRate.
	Rating int `json:"rating,omitempty"`

	// Timestamp is epoch milliseconds, set once at append time.
	Timestamp int64 `json:"timestamp"`
}

// Key returns the composite identity of the item acted upon.
func (in Interaction) Key() Key {
	return Key{Kind: in.ItemKind, ID: in.ItemID}
}
