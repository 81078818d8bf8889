package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/spiritsage/spiritkit/core"
)

// BadgerStore is an embedded, durable Store. It is the default home
// for the persisted interaction log: local, crash-safe, no server.
// Sorted-set and hash operations are not supported; callers that need
// them should use RedisStore or MemoryStore.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database at dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStoreWithDB wraps an already opened database, for callers
// that share one Badger instance across subsystems.
func NewBadgerStoreWithDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func (b *BadgerStore) Name() string { return "badger" }

func (b *BadgerStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return core.ErrStoreNotFound
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (b *BadgerStore) Set(ctx context.Context, key string, value []byte, ttl ...int) error {
	return b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value)
		if len(ttl) > 0 && ttl[0] > 0 {
			e = e.WithTTL(time.Duration(ttl[0]) * time.Second)
		}
		return txn.SetEntry(e)
	})
}

func (b *BadgerStore) Delete(ctx context.Context, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (b *BadgerStore) BatchGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	err := b.db.View(func(txn *badger.Txn) error {
		for _, k := range keys {
			item, err := txn.Get([]byte(k))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result[k] = val
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (b *BadgerStore) BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()

	for k, v := range kvs {
		e := badger.NewEntry([]byte(k), v)
		if len(ttl) > 0 && ttl[0] > 0 {
			e = e.WithTTL(time.Duration(ttl[0]) * time.Second)
		}
		if err := wb.SetEntry(e); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}

var _ core.Store = (*BadgerStore)(nil)
