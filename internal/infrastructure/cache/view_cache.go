package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	viewKeyPrefix       = "view:"
	generationKeyPrefix = "view-gen:"
)

// setIfGenerationScript stores a view only if the path has not been
// invalidated since the caller read its generation.
// KEYS[1] view key, KEYS[2] generation key
// ARGV[1] expected generation, ARGV[2] payload, ARGV[3] ttl in ms (0 = none)
var setIfGenerationScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ttl)
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// Cached views, keyed by the route that renders them.
const (
	AdminViewPath     = "/admin"
	DashboardViewPath = "/dashboard"
)

// ViewCache stores rendered view payloads per route path so that a write
// can mark a route stale.
//
// Every Invalidate bumps the path's generation. A reader that rebuilds a view
// reads Generation first and passes it to Set, which drops the payload when
// an invalidation happened in between.
type ViewCache interface {
	Get(ctx context.Context, path string, dest interface{}) (bool, error)
	Generation(ctx context.Context, path string) (int64, error)
	Set(ctx context.Context, path string, generation int64, value interface{}) (bool, error)
	Invalidate(ctx context.Context, paths ...string) error
}

type redisViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisViewCache(client *redis.Client, ttl time.Duration) ViewCache {
	return &redisViewCache{
		client: client,
		ttl:    ttl,
	}
}

func viewKey(path string) string {
	return viewKeyPrefix + path
}

func generationKey(path string) string {
	return generationKeyPrefix + path
}

// Get loads the cached payload for path into dest. It returns false on a miss.
func (c *redisViewCache) Get(ctx context.Context, path string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, viewKey(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get view %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode view %s: %w", path, err)
	}
	return true, nil
}

// Generation returns the number of invalidations seen by path.
func (c *redisViewCache) Generation(ctx context.Context, path string) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey(path)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get view generation %s: %w", path, err)
	}
	return generation, nil
}

// Set stores value for path if path is still at generation. It reports
// whether the value was stored.
func (c *redisViewCache) Set(ctx context.Context, path string, generation int64, value interface{}) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode view %s: %w", path, err)
	}

	stored, err := setIfGenerationScript.Run(ctx, c.client,
		[]string{viewKey(path), generationKey(path)},
		strconv.FormatInt(generation, 10), raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("set view %s: %w", path, err)
	}
	return stored == 1, nil
}

// Invalidate drops the cached payloads so the next read recomputes them.
func (c *redisViewCache) Invalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, path := range paths {
			pipe.Incr(ctx, generationKey(path))
			pipe.Del(ctx, viewKey(path))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate views %v: %w", paths, err)
	}
	return nil
}
