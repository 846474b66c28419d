// Package cache holds the optional Redis-backed follow-set cache.
// The follow feed reads a viewer's followed-author ids on every page;
// caching the set keeps that read off PostgreSQL. The cache is a pure
// accelerator: a nil *FollowSetCache always misses and every mutation
// of the follow graph invalidates the viewer's entry.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyFollowingFmt = "following:%d"
	followingTTL    = 5 * time.Minute
)

// FollowSetCache caches each user's followed-author id set in Redis
type FollowSetCache struct {
	rdb *redis.Client
}

// NewFollowSetCache creates a cache over the given client. A nil
// client yields a nil cache, which is safe to call.
func NewFollowSetCache(rdb *redis.Client) *FollowSetCache {
	if rdb == nil {
		return nil
	}
	return &FollowSetCache{rdb: rdb}
}

func followingKey(userID uint) string {
	return fmt.Sprintf(keyFollowingFmt, userID)
}

// Get returns the cached author ids and whether the entry was present
func (c *FollowSetCache) Get(ctx context.Context, userID uint) ([]uint, bool) {
	if c == nil {
		return nil, false
	}
	raws, err := c.rdb.SMembers(ctx, followingKey(userID)).Result()
	if err != nil || len(raws) == 0 {
		return nil, false
	}
	ids := make([]uint, 0, len(raws))
	for _, s := range raws {
		// the sentinel marks a cached-but-empty set
		if s == "0" {
			continue
		}
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, false
		}
		ids = append(ids, uint(id))
	}
	return ids, true
}

// Set replaces the cached set for a user. An empty id list is cached
// too, with a zero sentinel member so the key survives.
func (c *FollowSetCache) Set(ctx context.Context, userID uint, authorIDs []uint) {
	if c == nil {
		return
	}
	key := followingKey(userID)
	members := make([]interface{}, 0, len(authorIDs)+1)
	members = append(members, "0")
	for _, id := range authorIDs {
		members = append(members, strconv.FormatUint(uint64(id), 10))
	}

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, followingTTL)
	pipe.Exec(ctx)
}

// Invalidate drops a user's cached set after a follow or unfollow
func (c *FollowSetCache) Invalidate(ctx context.Context, userID uint) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, followingKey(userID))
}
