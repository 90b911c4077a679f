package cache_test

import (
	"testing"
	"time"

	"github.com/kharel/fintrack-bff-go/internal/infra/cache"
)

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("key1", "value1")
	val, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val != "value1" {
		t.Errorf("expected 'value1', got '%s'", val)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	_, ok := c.Get("nonexistent")
	if ok {
		t.Fatal("expected cache miss for nonexistent key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := cache.New[string](50 * time.Millisecond)

	c.Set("key1", "value1")
	time.Sleep(100 * time.Millisecond)

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected cache entry to be expired")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("key1", "value1")
	c.Delete("key1")

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestCache_DeletePrefix(t *testing.T) {
	c := cache.New[float64](5 * time.Minute)

	c.Set("user-1:summary:month", 10)
	c.Set("user-1:summary:year", 20)
	c.Set("user-2:summary:month", 30)

	c.DeletePrefix("user-1:")

	if _, ok := c.Get("user-1:summary:month"); ok {
		t.Fatal("expected user-1 month entry to be deleted")
	}
	if _, ok := c.Get("user-1:summary:year"); ok {
		t.Fatal("expected user-1 year entry to be deleted")
	}
	if _, ok := c.Get("user-2:summary:month"); !ok {
		t.Fatal("expected user-2 entry to survive")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
