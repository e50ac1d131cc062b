// internal/cache/odds_cache.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// OddsCache is a read-through Redis cache for odds lookups on the public
// read endpoints. Snapshots are immutable once quoted, so a cached snapshot
// can never serve a stale price; placement still reads the store inside its
// own transaction and never consults this cache.
//
// A nil *OddsCache is valid and behaves as a permanent miss, so callers do
// not branch on whether Redis is configured.
type OddsCache struct {
	r   *redis.Client
	ttl time.Duration
}

// New creates an OddsCache over the given client. Returns nil when the
// client is nil.
func New(r *redis.Client, ttl time.Duration) *OddsCache {
	if r == nil {
		return nil
	}
	return &OddsCache{r: r, ttl: ttl}
}

// ConnectRedis opens and pings a Redis client.
func ConnectRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

func keySnapshot(id string) string  { return "odds:snapshot:" + id }
func keyEventOdds(id string) string { return "odds:event:" + id }

// GetSnapshot loads a cached snapshot into dst, reporting whether it was found.
func (c *OddsCache) GetSnapshot(ctx context.Context, id string, dst any) (bool, error) {
	return c.get(ctx, keySnapshot(id), dst)
}

// SetSnapshot caches a snapshot by id.
func (c *OddsCache) SetSnapshot(ctx context.Context, id string, v any) error {
	return c.set(ctx, keySnapshot(id), v)
}

// GetEventOdds loads the cached snapshot list for an event into dst.
func (c *OddsCache) GetEventOdds(ctx context.Context, eventID string, dst any) (bool, error) {
	return c.get(ctx, keyEventOdds(eventID), dst)
}

// SetEventOdds caches the snapshot list for an event. The list grows as new
// quotes arrive, so it expires on the configured TTL rather than living as
// long as the immutable per-snapshot entries.
func (c *OddsCache) SetEventOdds(ctx context.Context, eventID string, v any) error {
	return c.set(ctx, keyEventOdds(eventID), v)
}

func (c *OddsCache) get(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil {
		return false, nil
	}
	b, err := c.r.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *OddsCache) set(ctx context.Context, key string, v any) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.r.Set(ctx, key, b, c.ttl).Err()
}
