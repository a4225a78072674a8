package cache

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("empty cache should miss")
	}

	if err := c.Set(ctx, "k", []byte("outline"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "outline" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	// Expired entries are misses
	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	n, err := fc.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry should be gone after Clear")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := ShapeKeyOpts{Family: "polygon", Width: 800, Height: 600, Seed: 42}
	other := base
	other.Seed = 43
	if k.ShapeKey(base) == k.ShapeKey(other) {
		t.Error("different seeds should produce different shape keys")
	}
	if k.ShapeKey(base) != k.ShapeKey(base) {
		t.Error("ShapeKey should be deterministic")
	}
	if !strings.HasPrefix(k.ShapeKey(base), "shape:") {
		t.Errorf("unexpected shape key: %s", k.ShapeKey(base))
	}

	p1 := k.PuzzleKey(PuzzleKeyOpts{Shape: base, Rows: 2, Cols: 2})
	p2 := k.PuzzleKey(PuzzleKeyOpts{Shape: base, Rows: 3, Cols: 2})
	if p1 == p2 {
		t.Error("different grids should produce different puzzle keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "tenant:1:")
	key := scoped.ShapeKey(ShapeKeyOpts{Family: "cloud"})
	if !strings.HasPrefix(key, "tenant:1:shape:") {
		t.Errorf("ScopedKeyer ShapeKey should be prefixed: %s", key)
	}
}

func TestBounded(t *testing.T) {
	b := NewBounded[string, int](3)

	for i, k := range []string{"a", "b", "c"} {
		if evicted := b.Put(k, i); evicted {
			t.Fatalf("Put(%s) evicted below capacity", k)
		}
	}

	// Reading does not refresh position.
	if v, ok := b.Get("a"); !ok || v != 0 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}

	if !b.Put("d", 3) {
		t.Error("Put beyond capacity should evict")
	}
	if _, ok := b.Get("a"); ok {
		t.Error("oldest inserted entry should be evicted")
	}
	if got := b.Keys(); !slices.Equal(got, []string{"b", "c", "d"}) {
		t.Errorf("Keys() = %v", got)
	}

	// Updating keeps position.
	b.Put("b", 10)
	if got := b.Keys(); !slices.Equal(got, []string{"b", "c", "d"}) {
		t.Errorf("Keys() after update = %v", got)
	}

	b.Delete("c")
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Len() after Clear = %d", b.Len())
	}
}

func TestBoundedMinimumCapacity(t *testing.T) {
	b := NewBounded[int, int](0)
	if b.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1", b.Cap())
	}
	b.Put(1, 1)
	b.Put(2, 2)
	if _, ok := b.Get(1); ok {
		t.Error("capacity 1 should keep only the newest entry")
	}
}
