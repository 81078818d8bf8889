package store

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spiritsage/spiritkit/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if _, err := m.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get(missing) error = %v, want ErrStoreNotFound", err)
	}

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Fatalf("Get() = %q, want v", got)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get(deleted) error = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if err := m.Set(ctx, "k", []byte("v"), 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := m.Get(ctx, "k"); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}

	// Rewrite with an already-expired deadline instead of sleeping.
	m.mu.Lock()
	past := time.Now().Add(-time.Second)
	m.data["k"].ttl = &past
	m.mu.Unlock()

	if _, err := m.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get() after expiry error = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_Batch(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if err := m.BatchSet(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := m.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("BatchGet() returned %d entries, want 2", len(got))
	}
	if string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Fatalf("BatchGet() = %v", got)
	}
}

func TestMemoryStore_ZSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	for member, score := range map[string]float64{
		"low": 1, "high": 3, "mid": 2,
	} {
		if err := m.ZAdd(ctx, "ranks", score, member); err != nil {
			t.Fatalf("ZAdd() error = %v", err)
		}
	}

	got, err := m.ZRange(ctx, "ranks", 0, -1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	want := []string{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ZRange() = %v, want %v", got, want)
		}
	}

	if s, err := m.ZScore(ctx, "ranks", "mid"); err != nil || s != 2 {
		t.Fatalf("ZScore(mid) = %v, %v", s, err)
	}
	if _, err := m.ZScore(ctx, "ranks", "absent"); !core.IsStoreNotFound(err) {
		t.Fatalf("ZScore(absent) error = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if err := m.HSet(ctx, "profile", "name", []byte("sage")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}
	if err := m.HSet(ctx, "profile", "scene", []byte("home")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}

	got, err := m.HGet(ctx, "profile", "name")
	if err != nil || string(got) != "sage" {
		t.Fatalf("HGet() = %q, %v", got, err)
	}

	all, err := m.HGetAll(ctx, "profile")
	if err != nil {
		t.Fatalf("HGetAll() error = %v", err)
	}
	if len(all) != 2 || string(all["scene"]) != "home" {
		t.Fatalf("HGetAll() = %v", all)
	}
}
