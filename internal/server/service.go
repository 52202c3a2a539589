// Package server exposes the catalog over HTTP.
package server

import (
	"context"

	"github.com/gridfold/catalogd/internal/catalog"
	"github.com/gridfold/catalogd/pkg/catalogd"
)

// SnapshotProvider yields the current schema zoom-range snapshot.
// *registry.Registry implements it.
type SnapshotProvider interface {
	Snapshot() []catalogd.SchemaZoomEntry
}

// Warmer schedules background cache warming around a zoom key.
// *catalog.Prefetcher implements it.
type Warmer interface {
	Warm(center catalogd.ZoomKey)
}

// Service answers catalog requests, going through the cache and kicking
// off neighbor warming for interactive requests.
type Service struct {
	registry SnapshotProvider
	builder  *catalog.Builder
	cache    *catalog.Cache
	warmer   Warmer
	log      catalogd.Logger
}

// NewService wires a Service. The warmer may be nil to disable
// prefetching; every other dependency is required and a nil value panics.
func NewService(registry SnapshotProvider, builder *catalog.Builder, cache *catalog.Cache, warmer Warmer, log catalogd.Logger) *Service {
	if registry == nil {
		panic("registry cannot be nil")
	}
	if builder == nil {
		panic("builder cannot be nil")
	}
	if cache == nil {
		panic("cache cannot be nil")
	}
	if log == nil {
		panic("log cannot be nil")
	}
	return &Service{
		registry: registry,
		builder:  builder,
		cache:    cache,
		warmer:   warmer,
		log:      log,
	}
}

// Catalog returns the catalog view for zoom, building it on a cache miss.
// When interactive is set the zoom's neighbors are queued for background
// warming after a successful build; warming failures never surface here.
func (s *Service) Catalog(ctx context.Context, zoom float64, interactive bool) (catalogd.CatalogView, error) {
	key := catalogd.NewZoomKey(zoom)

	view, err := s.cache.GetOrBuild(key, func() (catalogd.CatalogView, error) {
		return s.builder.Build(ctx, key.Float64(), s.registry.Snapshot())
	})
	if err != nil {
		return nil, err
	}

	if interactive && s.warmer != nil {
		s.warmer.Warm(key)
	}
	return view, nil
}
