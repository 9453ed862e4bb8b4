package cache

import (
	"context"
	"testing"
	"time"
)

func TestLRUCache(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		ttl      time.Duration
		actions  func(c *LRUCache[string], t *testing.T)
	}{
		{
			name:     "set and get within TTL",
			capacity: 2,
			ttl:      time.Second,
			actions: func(c *LRUCache[string], t *testing.T) {
				c.Set("a", "1")
				if v, ok := c.Get("a"); !ok || v != "1" {
					t.Errorf("expected value=1, got=%v, ok=%v", v, ok)
				}
			},
		},
		{
			name:     "get after expiration",
			capacity: 2,
			ttl:      time.Millisecond * 50,
			actions: func(c *LRUCache[string], t *testing.T) {
				c.Set("a", "1")
				time.Sleep(time.Millisecond * 60)
				if _, ok := c.Get("a"); ok {
					t.Errorf("expected key to be expired")
				}
			},
		},
		{
			name:     "evict least recently used when over capacity",
			capacity: 2,
			ttl:      time.Second,
			actions: func(c *LRUCache[string], t *testing.T) {
				c.Set("a", "1")
				c.Set("b", "2")
				c.Get("a")
				c.Set("c", "3")
				if _, ok := c.Get("b"); ok {
					t.Errorf("expected key 'b' to be evicted")
				}
				if v, ok := c.Get("a"); !ok || v != "1" {
					t.Errorf("expected a=1, got %v", v)
				}
				if v, ok := c.Get("c"); !ok || v != "3" {
					t.Errorf("expected c=3, got %v", v)
				}
			},
		},
		{
			name:     "set if keeps entry when replace refuses",
			capacity: 2,
			ttl:      time.Second,
			actions: func(c *LRUCache[string], t *testing.T) {
				c.Set("a", "2")
				c.SetIf("a", "1", func(current string) bool { return "1" >= current })
				if v, _ := c.Get("a"); v != "2" {
					t.Errorf("expected a=2, got %v", v)
				}
				c.SetIf("a", "3", func(current string) bool { return "3" >= current })
				if v, _ := c.Get("a"); v != "3" {
					t.Errorf("expected a=3, got %v", v)
				}
			},
		},
		{
			name:     "set if stores missing and expired keys",
			capacity: 2,
			ttl:      time.Millisecond * 50,
			actions: func(c *LRUCache[string], t *testing.T) {
				never := func(string) bool { return false }
				c.SetIf("a", "1", never)
				if v, ok := c.Get("a"); !ok || v != "1" {
					t.Errorf("expected a=1, got %v", v)
				}
				time.Sleep(time.Millisecond * 60)
				c.SetIf("a", "2", never)
				if v, ok := c.Get("a"); !ok || v != "2" {
					t.Errorf("expected expired entry to be replaced, got %v", v)
				}
			},
		},
		{
			name:     "update value resets TTL",
			capacity: 2,
			ttl:      time.Millisecond * 50,
			actions: func(c *LRUCache[string], t *testing.T) {
				c.Set("a", "1")
				time.Sleep(time.Millisecond * 30)
				c.Set("a", "2")
				time.Sleep(time.Millisecond * 30)
				if v, ok := c.Get("a"); !ok || v != "2" {
					t.Errorf("expected updated value=2, got=%v", v)
				}
			},
		},
		{
			name:     "delete removes entry",
			capacity: 2,
			ttl:      time.Second,
			actions: func(c *LRUCache[string], t *testing.T) {
				c.Set("a", "1")
				c.Delete("a")
				c.Delete("missing")
				if _, ok := c.Get("a"); ok {
					t.Errorf("expected key 'a' to be deleted")
				}
				if c.Size() != 0 {
					t.Errorf("expected empty cache, got size %d", c.Size())
				}
			},
		},
		{
			name:     "zero capacity stores nothing",
			capacity: 0,
			ttl:      time.Second,
			actions: func(c *LRUCache[string], t *testing.T) {
				c.Set("a", "1")
				if _, ok := c.Get("a"); ok {
					t.Errorf("expected nothing to be cached")
				}
			},
		},
		{
			name:     "janitor removes expired",
			capacity: 2,
			ttl:      time.Millisecond * 50,
			actions: func(c *LRUCache[string], t *testing.T) {
				ctx, cancel := context.WithCancel(context.Background())
				defer cancel()
				if err := c.Start(ctx); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				c.Set("a", "1")
				time.Sleep(time.Millisecond * 60)

				c.cleanup()

				if c.Size() != 0 {
					t.Errorf("expected janitor cleanup to remove expired key")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewLRUCache[string](tt.capacity, tt.ttl)
			tt.actions(c, t)
		})
	}
}
