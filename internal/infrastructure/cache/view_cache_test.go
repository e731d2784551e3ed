package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedView struct {
	Total int      `json:"total"`
	Names []string `json:"names"`
}

func newTestViewCache(t *testing.T) (ViewCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisViewCache(client, time.Minute), mr
}

func TestRedisViewCache_GetMiss(t *testing.T) {
	viewCache, _ := newTestViewCache(t)

	var view cachedView
	found, err := viewCache.Get(context.Background(), AdminViewPath, &view)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisViewCache_SetThenGet(t *testing.T) {
	viewCache, mr := newTestViewCache(t)
	ctx := context.Background()

	want := cachedView{Total: 2, Names: []string{"Ana", "Budi"}}
	stored, err := viewCache.Set(ctx, AdminViewPath, 0, want)
	require.NoError(t, err)
	assert.True(t, stored)

	assert.True(t, mr.Exists("view:/admin"))
	assert.Equal(t, time.Minute, mr.TTL("view:/admin"))

	var got cachedView
	found, err := viewCache.Get(ctx, AdminViewPath, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestRedisViewCache_Invalidate(t *testing.T) {
	viewCache, mr := newTestViewCache(t)
	ctx := context.Background()

	_, err := viewCache.Set(ctx, AdminViewPath, 0, cachedView{Total: 1})
	require.NoError(t, err)
	_, err = viewCache.Set(ctx, DashboardViewPath, 0, cachedView{Total: 1})
	require.NoError(t, err)

	require.NoError(t, viewCache.Invalidate(ctx, AdminViewPath))

	assert.False(t, mr.Exists("view:/admin"))
	assert.True(t, mr.Exists("view:/dashboard"))

	generation, err := viewCache.Generation(ctx, AdminViewPath)
	require.NoError(t, err)
	assert.Equal(t, int64(1), generation)

	var got cachedView
	found, err := viewCache.Get(ctx, AdminViewPath, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisViewCache_GenerationStartsAtZero(t *testing.T) {
	viewCache, _ := newTestViewCache(t)

	generation, err := viewCache.Generation(context.Background(), DashboardViewPath)

	require.NoError(t, err)
	assert.Zero(t, generation)
}

func TestRedisViewCache_SetAfterInvalidateIsDropped(t *testing.T) {
	viewCache, mr := newTestViewCache(t)
	ctx := context.Background()

	generation, err := viewCache.Generation(ctx, AdminViewPath)
	require.NoError(t, err)

	// a doctor write lands while the view is being rebuilt
	require.NoError(t, viewCache.Invalidate(ctx, AdminViewPath))

	stored, err := viewCache.Set(ctx, AdminViewPath, generation, cachedView{Total: 1})
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists("view:/admin"))

	fresh, err := viewCache.Generation(ctx, AdminViewPath)
	require.NoError(t, err)
	stored, err = viewCache.Set(ctx, AdminViewPath, fresh, cachedView{Total: 2})
	require.NoError(t, err)
	assert.True(t, stored)

	var got cachedView
	found, err := viewCache.Get(ctx, AdminViewPath, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, got.Total)
}

func TestRedisViewCache_InvalidateNothing(t *testing.T) {
	viewCache, _ := newTestViewCache(t)

	assert.NoError(t, viewCache.Invalidate(context.Background()))
}

func TestRedisViewCache_RedisDown(t *testing.T) {
	viewCache, mr := newTestViewCache(t)
	mr.Close()

	err := viewCache.Invalidate(context.Background(), AdminViewPath)
	assert.Error(t, err)
}
