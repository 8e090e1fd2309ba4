package cache

import (
	"strings"
	"testing"
	"time"
)

func TestHashKey(t *testing.T) {
	a := HashKey("list_users", "user", "0", "20")
	b := HashKey("list_users", "user", "0", "20")
	c := HashKey("list_users", "user", "1", "20")

	if a != b {
		t.Error("identical parts must hash to the same key")
	}
	if a == c {
		t.Error("different parts must hash to different keys")
	}
	if !strings.HasPrefix(a, "list_users:") {
		t.Errorf("key should keep its namespace prefix, got %q", a)
	}
}

func TestListTTL(t *testing.T) {
	if ttl := ListTTL("heartCount"); ttl != 3*time.Second {
		t.Errorf("aggregate sort TTL = %v, want 3s", ttl)
	}
	if ttl := ListTTL("username"); ttl != 10*time.Second {
		t.Errorf("static sort TTL = %v, want 10s", ttl)
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache

	if _, err := c.Get("k"); err != ErrCacheDisabled {
		t.Error("nil cache Get should report disabled")
	}
	if err := c.Set("k", "v", time.Second); err != ErrCacheDisabled {
		t.Error("nil cache Set should report disabled")
	}
	if err := c.Close(); err != nil {
		t.Error("nil cache Close should be a no-op")
	}
}
