// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreBasicOperations(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)

	if err := s.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, ok, err := s.Get(ctx, "key1")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, want hit", ok, err)
	}
	if string(value) != "value1" {
		t.Errorf("Expected value1, got %q", value)
	}

	if _, ok, _ := s.Get(ctx, "key2"); ok {
		t.Error("Expected key2 to not exist")
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)

	buf := []byte("abc")
	_ = s.Set(ctx, "k", buf, 0)
	buf[0] = 'x'

	got, _, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller buffer: %q", got)
	}
	got[1] = 'y'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestMemoryStoreExpiration(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)

	_ = s.Set(ctx, "key1", []byte("v"), 50*time.Millisecond)
	if _, ok, _ := s.Get(ctx, "key1"); !ok {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(80 * time.Millisecond)

	if _, ok, _ := s.Get(ctx, "key1"); ok {
		t.Error("Expected key1 to be expired")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after lazy expiry", s.Len())
	}
}

func TestMemoryStorePurgeExpired(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)

	_ = s.Set(ctx, "short1", []byte("v"), 20*time.Millisecond)
	_ = s.Set(ctx, "short2", []byte("v"), 20*time.Millisecond)
	_ = s.Set(ctx, "long", []byte("v"), time.Hour)

	time.Sleep(40 * time.Millisecond)

	removed, err := s.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("PurgeExpired() = %d, want 2", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	stats := s.Stats()
	if stats.Evictions != 2 {
		t.Errorf("Evictions = %d, want 2", stats.Evictions)
	}
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
}

func TestMemoryStoreLRUEviction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2, time.Minute)

	_ = s.Set(ctx, "a", []byte("1"), 0)
	_ = s.Set(ctx, "b", []byte("2"), 0)
	_, _, _ = s.Get(ctx, "a") // a is now most recently used
	_ = s.Set(ctx, "c", []byte("3"), 0)

	if _, ok, _ := s.Get(ctx, "b"); ok {
		t.Error("Expected b to be evicted as least recently used")
	}
	for _, key := range []string{"a", "c"} {
		if _, ok, _ := s.Get(ctx, key); !ok {
			t.Errorf("Expected %s to remain", key)
		}
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2, time.Minute)

	_ = s.Set(ctx, "a", []byte("1"), 0)
	_ = s.Set(ctx, "a", []byte("2"), 0)

	got, _, _ := s.Get(ctx, "a")
	if string(got) != "2" {
		t.Errorf("Get() = %q, want 2", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestMemoryStoreDeleteAndClose(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)

	_ = s.Set(ctx, "a", []byte("1"), 0)
	_ = s.Set(ctx, "b", []byte("2"), 0)

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("Expected a to be deleted")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", s.Len())
	}
}

func TestMemoryStoreStats(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)

	_ = s.Set(ctx, "a", []byte("1"), 0)
	_, _, _ = s.Get(ctx, "a")
	_, _, _ = s.Get(ctx, "a")
	_, _, _ = s.Get(ctx, "b")

	stats := s.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d, want 2/1", stats.Hits, stats.Misses)
	}
	if rate := stats.HitRate(); rate < 66.6 || rate > 66.7 {
		t.Errorf("HitRate() = %f, want ~66.67", rate)
	}
	if (Stats{}).HitRate() != 0 {
		t.Error("HitRate() of empty stats should be 0")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(50, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j%10)
				_ = s.Set(ctx, key, []byte("v"), 0)
				_, _, _ = s.Get(ctx, key)
				if j%25 == 0 {
					_, _ = s.PurgeExpired(ctx)
				}
			}
		}(i)
	}
	wg.Wait()

	if s.Len() > 50 {
		t.Errorf("Len() = %d, exceeds capacity 50", s.Len())
	}
}

func TestNewStore(t *testing.T) {
	t.Run("default is memory", func(t *testing.T) {
		store, err := NewStore(Config{})
		if err != nil {
			t.Fatalf("NewStore() error = %v", err)
		}
		defer store.Close()
		if _, ok := store.(*MemoryStore); !ok {
			t.Errorf("NewStore() = %T, want *MemoryStore", store)
		}
	})

	t.Run("badger in memory", func(t *testing.T) {
		store, err := NewStore(Config{Backend: BackendBadger, InMemory: true})
		if err != nil {
			t.Fatalf("NewStore() error = %v", err)
		}
		defer store.Close()
		if _, ok := store.(*BadgerStore); !ok {
			t.Errorf("NewStore() = %T, want *BadgerStore", store)
		}
	})

	t.Run("badger requires path", func(t *testing.T) {
		if _, err := NewStore(Config{Backend: BackendBadger}); err == nil {
			t.Error("NewStore() should fail without path")
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := NewStore(Config{Backend: "redis"}); err == nil {
			t.Error("NewStore() should reject unknown backend")
		}
	})
}
