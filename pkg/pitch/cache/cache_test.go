package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/primeharmonic/swipe/pkg/kv"
	"github.com/primeharmonic/swipe/pkg/pitch"
	"github.com/primeharmonic/swipe/pkg/pitch/cache"
)

func TestPlanCache_HitReturnsEquivalentPlan(t *testing.T) {
	store := kv.NewMemory()
	pc := cache.New(store)
	ctx := context.Background()
	cfg := pitch.DefaultConfig()

	miss, err := pc.Get(ctx, 16000, cfg)
	require.NoError(t, err)
	require.NotNil(t, miss)

	hit, err := pc.Get(ctx, 16000, cfg)
	require.NoError(t, err)
	require.Equal(t, miss.Pc, hit.Pc)
	require.Equal(t, miss.D, hit.D)
	require.Equal(t, miss.Ws, hit.Ws)
	require.Equal(t, miss.FERBs, hit.FERBs)
	require.Equal(t, miss.Primes, hit.Primes)
	require.Equal(t, miss.OutputFrames(16000), hit.OutputFrames(16000))
}

func TestPlanCache_DistinctParamsDistinctEntries(t *testing.T) {
	store := kv.NewMemory()
	pc := cache.New(store)
	ctx := context.Background()

	low := pitch.DefaultConfig()
	high := pitch.DefaultConfig()
	high.MinHz, high.MaxHz = 200, 700

	lowPlan, err := pc.Get(ctx, 16000, low)
	require.NoError(t, err)
	highPlan, err := pc.Get(ctx, 16000, high)
	require.NoError(t, err)

	require.NotEqual(t, lowPlan.Pc[0], highPlan.Pc[0])
}

func TestPlanCache_PurgeDropsEntries(t *testing.T) {
	store := kv.NewMemory()
	pc := cache.New(store)
	ctx := context.Background()

	low := pitch.DefaultConfig()
	high := pitch.DefaultConfig()
	high.MinHz, high.MaxHz = 200, 700

	_, err := pc.Get(ctx, 16000, low)
	require.NoError(t, err)
	_, err = pc.Get(ctx, 16000, high)
	require.NoError(t, err)

	n, err := pc.Purge(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = pc.Purge(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPlanCache_InvalidConfigPropagatesError(t *testing.T) {
	store := kv.NewMemory()
	pc := cache.New(store)

	cfg := pitch.DefaultConfig()
	cfg.MinHz = 0

	_, err := pc.Get(context.Background(), 16000, cfg)
	require.Error(t, err)
}
