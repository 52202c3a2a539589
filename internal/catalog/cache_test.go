package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridfold/catalogd/internal/logging"
	"github.com/gridfold/catalogd/pkg/catalogd"
)

func TestCacheGetOrBuildStoresOnMiss(t *testing.T) {
	cache := NewCache()
	key := catalogd.NewZoomKey(5)
	want := catalogd.CatalogView{"public.a": {Schema: "public", Table: "a"}}

	builds := 0
	view, err := cache.GetOrBuild(key, func() (catalogd.CatalogView, error) {
		builds++
		return want, nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, view)
	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, cache.Len())

	// Hit: the build function must not run again.
	view, err = cache.GetOrBuild(key, func() (catalogd.CatalogView, error) {
		builds++
		return nil, errors.New("must not be called")
	})
	require.NoError(t, err)
	assert.Equal(t, want, view)
	assert.Equal(t, 1, builds)
}

func TestCacheGetOrBuildFailureStoresNothing(t *testing.T) {
	cache := NewCache()
	key := catalogd.NewZoomKey(5)

	_, err := cache.GetOrBuild(key, func() (catalogd.CatalogView, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.False(t, cache.Contains(key))

	// The next attempt builds again and can succeed.
	view, err := cache.GetOrBuild(key, func() (catalogd.CatalogView, error) {
		return catalogd.CatalogView{}, nil
	})
	require.NoError(t, err)
	assert.NotNil(t, view)
	assert.True(t, cache.Contains(key))
}

func TestCacheConcurrentBuildsSingleFetch(t *testing.T) {
	source := &fakeSource{
		entries: []catalogd.RawCatalogEntry{rawEntry("public.a", "public.a")},
		gate:    make(chan struct{}),
	}
	builder := NewBuilder(source, logging.NewNullLogger())
	cache := NewCache()
	key := catalogd.NewZoomKey(7.125)

	const n = 32
	var start, done sync.WaitGroup
	start.Add(n)
	done.Add(n)
	views := make([]catalogd.CatalogView, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			start.Done()
			start.Wait()
			views[i], errs[i] = cache.GetOrBuild(key, func() (catalogd.CatalogView, error) {
				return builder.Build(context.Background(), key.Float64(), nil)
			})
		}(i)
	}

	start.Wait()
	close(source.gate)
	done.Wait()

	assert.Equal(t, int64(1), source.fetchCount.Load())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, views[0], views[i])
	}
}

func TestCacheDistinctKeysBuildIndependently(t *testing.T) {
	cache := NewCache()
	builds := 0
	build := func() (catalogd.CatalogView, error) {
		builds++
		return catalogd.CatalogView{}, nil
	}

	_, err := cache.GetOrBuild(catalogd.NewZoomKey(5), build)
	require.NoError(t, err)
	_, err = cache.GetOrBuild(catalogd.NewZoomKey(6), build)
	require.NoError(t, err)

	assert.Equal(t, 2, builds)
	assert.Equal(t, 2, cache.Len())
}

func TestCacheKeyNormalization(t *testing.T) {
	cache := NewCache()
	builds := 0
	build := func() (catalogd.CatalogView, error) {
		builds++
		return catalogd.CatalogView{}, nil
	}

	// Zooms that differ only beyond the key precision share an entry.
	_, err := cache.GetOrBuild(catalogd.NewZoomKey(5.00001), build)
	require.NoError(t, err)
	_, err = cache.GetOrBuild(catalogd.NewZoomKey(5.00004), build)
	require.NoError(t, err)

	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheClear(t *testing.T) {
	cache := NewCache()
	cache.Put(catalogd.NewZoomKey(5), catalogd.CatalogView{})
	cache.Put(catalogd.NewZoomKey(6), catalogd.CatalogView{})
	require.Equal(t, 2, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	assert.False(t, cache.Contains(catalogd.NewZoomKey(5)))
}

func TestCachePutReplacesWholesale(t *testing.T) {
	cache := NewCache()
	key := catalogd.NewZoomKey(5)

	first := catalogd.CatalogView{"public.a": {Schema: "public", Table: "a"}}
	cache.Put(key, first)

	second := catalogd.CatalogView{"public.b": {Schema: "public", Table: "b"}}
	cache.Put(key, second)

	got, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, second, got)
	assert.NotContains(t, got, "public.a")
}
