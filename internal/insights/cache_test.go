package insights

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	cache, err := NewRedisCache(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.Get(ctx, "Finance")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "Finance", Fallback(), 7*24*time.Hour))

	got, ok, err := cache.Get(ctx, "Finance")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Fallback(), *got)

	mr.FastForward(8 * 24 * time.Hour)
	_, ok, err = cache.Get(ctx, "Finance")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire")
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	cache, err := NewRedisCache(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, mr.Set(CacheKey("Finance"), "not json"))

	_, _, err = cache.Get(ctx, "Finance")
	assert.Error(t, err)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
