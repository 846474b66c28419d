package cache

import (
	"context"
	"testing"
)

// The cache is optional; a nil cache must behave as a permanent miss
// without panicking, since the server runs without Redis configured.
func TestNilCacheIsSafe(t *testing.T) {
	var c *FollowSetCache
	ctx := context.Background()

	if ids, ok := c.Get(ctx, 1); ok || ids != nil {
		t.Errorf("nil cache Get = (%v, %v), want miss", ids, ok)
	}
	c.Set(ctx, 1, []uint{2, 3})
	c.Invalidate(ctx, 1)
}

func TestNewFollowSetCacheNilClient(t *testing.T) {
	if c := NewFollowSetCache(nil); c != nil {
		t.Errorf("NewFollowSetCache(nil) = %v, want nil", c)
	}
}
