package store

// This package only contains implementations; the interfaces live in
// core (core.Store, core.KeyValueStore).
//
// Example:
//
//	var st core.Store = store.NewMemoryStore()
//	var kv core.KeyValueStore = store.NewMemoryStore()
