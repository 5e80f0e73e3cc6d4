package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndPrefixed(t *testing.T) {
	k1 := Key("https://example.com/page")
	k2 := Key("https://example.com/page")
	if k1 != k2 {
		t.Error("Expected stable keys for identical URLs")
	}
	if !strings.HasPrefix(k1, "pagelint:v1:") {
		t.Errorf("Unexpected key prefix: %s", k1)
	}
	if Key("https://example.com/other") == k1 {
		t.Error("Different URLs must not collide")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("body"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "body" {
		t.Errorf("Get = %q, %v", val, found)
	}

	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("k", []byte("cached"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "cached" {
		t.Errorf("Get = %q, %v", val, found)
	}

	// An already-expired entry is dropped on read.
	if err := c.Set("stale", []byte("old"), -time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get("stale"); found {
		t.Error("Expected expired entry to be dropped")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.disk.Set("k", []byte("from-disk"), time.Hour); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "from-disk" {
		t.Fatalf("Get = %q, %v", val, found)
	}
	if _, found := c.memory.Get("k"); !found {
		t.Error("Expected disk hit to be promoted to memory")
	}
}
