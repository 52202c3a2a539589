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

// recordingBuild returns a BuildFunc that records which keys were built.
func recordingBuild(t *testing.T) (BuildFunc, func() []catalogd.ZoomKey) {
	t.Helper()
	var mu sync.Mutex
	var built []catalogd.ZoomKey

	build := func(ctx context.Context, key catalogd.ZoomKey) (catalogd.CatalogView, error) {
		mu.Lock()
		defer mu.Unlock()
		built = append(built, key)
		return catalogd.CatalogView{}, nil
	}
	snapshot := func() []catalogd.ZoomKey {
		mu.Lock()
		defer mu.Unlock()
		return append([]catalogd.ZoomKey(nil), built...)
	}
	return build, snapshot
}

func newTestPrefetcher(t *testing.T, cache *Cache, build BuildFunc) *Prefetcher {
	t.Helper()
	p := NewPrefetcher(PrefetcherConfig{
		Cache:   cache,
		Build:   build,
		Log:     logging.NewNullLogger(),
		ZoomMin: catalogd.DefaultZoomMin,
		ZoomMax: catalogd.DefaultZoomMax,
	})
	t.Cleanup(p.Close)
	return p
}

func TestWarmBuildsBothNeighbors(t *testing.T) {
	cache := NewCache()
	build, built := recordingBuild(t)
	p := newTestPrefetcher(t, cache, build)

	p.Warm(catalogd.NewZoomKey(5))
	p.Flush()

	assert.ElementsMatch(t, []catalogd.ZoomKey{catalogd.NewZoomKey(4), catalogd.NewZoomKey(6)}, built())
	assert.True(t, cache.Contains(catalogd.NewZoomKey(4)))
	assert.True(t, cache.Contains(catalogd.NewZoomKey(6)))
}

func TestWarmDropsNeighborsOutsideDomain(t *testing.T) {
	cache := NewCache()
	build, built := recordingBuild(t)
	p := newTestPrefetcher(t, cache, build)

	// The lower edge must not warm -1, the upper edge must not warm 23.
	p.Warm(catalogd.NewZoomKey(0))
	p.Warm(catalogd.NewZoomKey(22))
	p.Flush()

	assert.ElementsMatch(t, []catalogd.ZoomKey{catalogd.NewZoomKey(1), catalogd.NewZoomKey(21)}, built())
}

func TestWarmSkipsCachedNeighbors(t *testing.T) {
	cache := NewCache()
	cache.Put(catalogd.NewZoomKey(4), catalogd.CatalogView{})
	build, built := recordingBuild(t)
	p := newTestPrefetcher(t, cache, build)

	p.Warm(catalogd.NewZoomKey(5))
	p.Flush()

	assert.Equal(t, []catalogd.ZoomKey{catalogd.NewZoomKey(6)}, built())
}

func TestWarmFailureIsSilent(t *testing.T) {
	cache := NewCache()
	build := func(ctx context.Context, key catalogd.ZoomKey) (catalogd.CatalogView, error) {
		return nil, errors.New("tile server down")
	}
	p := newTestPrefetcher(t, cache, build)

	// Must not panic, must not cache anything.
	p.Warm(catalogd.NewZoomKey(5))
	p.Flush()

	assert.Equal(t, 0, cache.Len())
}

func TestWarmFullQueueDropsJobs(t *testing.T) {
	cache := NewCache()

	release := make(chan struct{})
	var mu sync.Mutex
	builds := 0
	build := func(ctx context.Context, key catalogd.ZoomKey) (catalogd.CatalogView, error) {
		<-release
		mu.Lock()
		builds++
		mu.Unlock()
		return catalogd.CatalogView{}, nil
	}

	p := NewPrefetcher(PrefetcherConfig{
		Cache:   cache,
		Build:   build,
		Log:     logging.NewNullLogger(),
		Workers: 1,
		Queue:   1,
	})
	defer p.Close()

	// Flood well past worker plus queue capacity; Warm must never block.
	for z := 1.0; z <= 20; z++ {
		p.Warm(catalogd.NewZoomKey(z))
	}
	close(release)
	p.Flush()

	mu.Lock()
	defer mu.Unlock()
	assert.Greater(t, builds, 0)
	assert.Less(t, builds, 40)
}

func TestPrefetcherCloseIsIdempotent(t *testing.T) {
	cache := NewCache()
	build, _ := recordingBuild(t)
	p := NewPrefetcher(PrefetcherConfig{Cache: cache, Build: build, Log: logging.NewNullLogger()})

	p.Close()
	assert.NotPanics(t, p.Close)
}

func TestNewPrefetcherPanicsOnNilDeps(t *testing.T) {
	build, _ := recordingBuild(t)
	log := logging.NewNullLogger()

	assert.Panics(t, func() { NewPrefetcher(PrefetcherConfig{Build: build, Log: log}) })
	assert.Panics(t, func() { NewPrefetcher(PrefetcherConfig{Cache: NewCache(), Log: log}) })
	assert.Panics(t, func() { NewPrefetcher(PrefetcherConfig{Cache: NewCache(), Build: build}) })
}

func TestWarmSharesSingleFlightWithCache(t *testing.T) {
	cache := NewCache()
	var mu sync.Mutex
	builds := 0
	build := func(ctx context.Context, key catalogd.ZoomKey) (catalogd.CatalogView, error) {
		mu.Lock()
		builds++
		mu.Unlock()
		return catalogd.CatalogView{}, nil
	}
	p := newTestPrefetcher(t, cache, build)

	// Repeated warms of the same center do not rebuild cached neighbors.
	p.Warm(catalogd.NewZoomKey(5))
	p.Flush()
	p.Warm(catalogd.NewZoomKey(5))
	p.Flush()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 2, builds)
}
