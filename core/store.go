package core

import "context"

// Store is the domain-owned storage interface.
//
// Defined here and implemented by the store package (memory, redis,
// badger) so the domain layer never depends on infrastructure.
// Used for interaction-log persistence and catalog collection loads.
type Store interface {
	// Name returns the backend name, for logs.
	Name() string

	// Get reads one key. Returns ErrStoreNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes one key. ttl is optional, in seconds.
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete removes one key.
	Delete(ctx context.Context, key string) error

	// BatchGet reads many keys in one round trip; absent keys are
	// simply missing from the result.
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet writes many keys in one round trip.
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close releases backend resources.
	Close() error
}

// KeyValueStore extends Store with sorted-set and hash operations for
// backends that support them (redis, memory). Backends that do not may
// return ErrStoreNotSupported.
type KeyValueStore interface {
	Store

	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	ZScore(ctx context.Context, key string, member string) (float64, error)

	HGet(ctx context.Context, key, field string) ([]byte, error)
	HSet(ctx context.Context, key, field string, value []byte) error
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)
}

var (
	// ErrStoreNotFound means the key does not exist.
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreNotSupported means the backend lacks the operation.
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// IsStoreNotFound checks for a missing-key error from any backend.
func IsStoreNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil && domainErr.Module == ModuleStore {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
