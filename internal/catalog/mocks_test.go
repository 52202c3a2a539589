package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// fakeSource is a Source returning canned entries, counting fetches.
type fakeSource struct {
	entries []catalogd.RawCatalogEntry
	err     error

	// fetchCount is incremented on every FetchRaw call.
	fetchCount atomic.Int64

	// gate, when set, is closed by the test to release in-flight fetches.
	gate chan struct{}
}

func (f *fakeSource) FetchRaw(ctx context.Context) ([]catalogd.RawCatalogEntry, error) {
	f.fetchCount.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func (f *fakeSource) TileURL(tileKey string) string {
	return fmt.Sprintf("http://tileserv:7800/tiles/%s/{z}/{x}/{y}.pbf", tileKey)
}

func rawEntry(tileKey, description string) catalogd.RawCatalogEntry {
	return catalogd.RawCatalogEntry{TileKey: tileKey, Description: description}
}
