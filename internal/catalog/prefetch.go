package catalog

import (
	"context"
	"sync"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// BuildFunc builds the catalog view for one zoom key. The prefetcher
// calls it through the cache's single-flight path, so a concurrent
// interactive request for the same key shares the same build.
type BuildFunc func(ctx context.Context, key catalogd.ZoomKey) (catalogd.CatalogView, error)

// PrefetcherConfig carries the dependencies and sizing for a Prefetcher.
type PrefetcherConfig struct {
	Cache   *Cache
	Build   BuildFunc
	Log     catalogd.Logger
	ZoomMin float64
	ZoomMax float64

	// Workers and Queue default to catalogd.DefaultPrefetchWorkers and
	// catalogd.DefaultPrefetchQueue when zero.
	Workers int
	Queue   int
}

// Prefetcher warms the cache for the zoom levels adjacent to a requested
// one, on a bounded background pool.
//
// Warming is strictly best-effort: a full queue drops the job, an
// out-of-domain neighbor is skipped, and a failed build is only logged.
// Nothing here ever surfaces to the request that triggered the warm.
type Prefetcher struct {
	cache   *Cache
	build   BuildFunc
	log     catalogd.Logger
	zoomMin float64
	zoomMax float64

	ctx    context.Context
	cancel context.CancelFunc

	jobs    chan catalogd.ZoomKey
	workers sync.WaitGroup

	// pending tracks enqueued jobs so Flush can wait for quiescence.
	pending   sync.WaitGroup
	closeOnce sync.Once
}

// NewPrefetcher creates a Prefetcher and starts its workers. Panics if
// the cache, build function or logger is nil.
func NewPrefetcher(cfg PrefetcherConfig) *Prefetcher {
	if cfg.Cache == nil {
		panic("cache cannot be nil")
	}
	if cfg.Build == nil {
		panic("build cannot be nil")
	}
	if cfg.Log == nil {
		panic("log cannot be nil")
	}
	if cfg.ZoomMax <= cfg.ZoomMin {
		cfg.ZoomMin = catalogd.DefaultZoomMin
		cfg.ZoomMax = catalogd.DefaultZoomMax
	}
	if cfg.Workers <= 0 {
		cfg.Workers = catalogd.DefaultPrefetchWorkers
	}
	if cfg.Queue <= 0 {
		cfg.Queue = catalogd.DefaultPrefetchQueue
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Prefetcher{
		cache:   cfg.Cache,
		build:   cfg.Build,
		log:     cfg.Log,
		zoomMin: cfg.ZoomMin,
		zoomMax: cfg.ZoomMax,
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan catalogd.ZoomKey, cfg.Queue),
	}

	p.workers.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker()
	}
	return p
}

// Warm enqueues builds for the zoom neighbors of center (one step down
// and one step up). Neighbors outside [ZoomMin, ZoomMax] are dropped,
// never clamped onto another level. Already-cached neighbors are skipped,
// and a full queue drops the job rather than blocking the caller.
//
// Warm must not be called after Close.
func (p *Prefetcher) Warm(center catalogd.ZoomKey) {
	for _, neighbor := range center.Neighbors() {
		if !neighbor.InDomain(p.zoomMin, p.zoomMax) {
			p.log.Verbose("prefetch: neighbor %s outside zoom domain [%v, %v], dropping", neighbor, p.zoomMin, p.zoomMax)
			continue
		}
		if p.cache.Contains(neighbor) {
			continue
		}

		p.pending.Add(1)
		select {
		case p.jobs <- neighbor:
		default:
			p.pending.Done()
			p.log.Verbose("prefetch: queue full, dropping warm for %s", neighbor)
		}
	}
}

func (p *Prefetcher) worker() {
	defer p.workers.Done()
	for key := range p.jobs {
		p.run(key)
	}
}

func (p *Prefetcher) run(key catalogd.ZoomKey) {
	defer p.pending.Done()

	if p.cache.Contains(key) {
		return
	}
	_, err := p.cache.GetOrBuild(key, func() (catalogd.CatalogView, error) {
		return p.build(p.ctx, key)
	})
	if err != nil {
		p.log.Error("prefetch: warming zoom %s failed: %v", key, err)
		return
	}
	p.log.Verbose("prefetch: warmed zoom %s", key)
}

// Flush blocks until every job enqueued so far has finished. Intended
// for tests and shutdown.
func (p *Prefetcher) Flush() {
	p.pending.Wait()
}

// Close stops accepting work, cancels in-flight builds and waits for the
// workers to exit. Safe to call more than once.
func (p *Prefetcher) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
		p.cancel()
		p.workers.Wait()
	})
}
