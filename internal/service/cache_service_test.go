package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCacheServiceDisabledAlwaysMisses(t *testing.T) {
	repo := newFakeCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)

	svc.Set(context.Background(), "k", "v")
	var out string
	assert.False(t, svc.Get(context.Background(), "k", &out))
	assert.Empty(t, repo.values)
	assert.Equal(t, 0, repo.gets)

	var nilService *CacheService
	assert.False(t, nilService.Enabled())
	assert.False(t, nilService.Get(context.Background(), "k", &out))
	nilService.Invalidate(context.Background(), "k*")
}

func TestCacheServiceRoundTripAndMetrics(t *testing.T) {
	repo := newFakeCacheRepo()
	metrics := NewMetricsService()
	svc := NewCacheService(repo, metrics, 0, zap.NewNop(), true)
	ctx := context.Background()

	var out map[string]int
	assert.False(t, svc.Get(ctx, "counts", &out))

	svc.Set(ctx, "counts", map[string]int{"a": 1})
	require.True(t, svc.Get(ctx, "counts", &out))
	assert.Equal(t, 1, out["a"])

	svc.Evict(ctx, "counts")
	assert.False(t, svc.Get(ctx, "counts", &out))

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	lookups := map[string]float64{}
	for _, family := range families {
		if family.GetName() != "cache_lookups_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			lookups[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(1), lookups["hit"])
	assert.Equal(t, float64(2), lookups["miss"])
}
