// Package catalog computes zoom-filtered catalog views and caches them
// per zoom key.
package catalog

import (
	"context"
	"strings"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// Source provides the raw catalog records a build consumes.
// *tiles.Fetcher implements it.
type Source interface {
	// FetchRaw retrieves the current raw catalog entries.
	FetchRaw(ctx context.Context) ([]catalogd.RawCatalogEntry, error)

	// TileURL builds the templated tile address for entries that did not
	// publish their own URL.
	TileURL(tileKey string) string
}

// Builder assembles catalog views for a zoom level from a raw catalog and
// a registry snapshot.
//
// Build is a pure function of its inputs apart from the fetch itself: the
// same snapshot and raw catalog always produce the same view. It never
// retries; a failed fetch fails the build and nothing is cached.
type Builder struct {
	source Source
	log    catalogd.Logger
}

// NewBuilder creates a Builder reading from source. Panics if source or
// log is nil.
func NewBuilder(source Source, log catalogd.Logger) *Builder {
	if source == nil {
		panic("source cannot be nil")
	}
	if log == nil {
		panic("log cannot be nil")
	}
	return &Builder{source: source, log: log}
}

// Build fetches the raw catalog and filters it down to the schemas valid
// at zoom. The "public" schema always passes the filter regardless of the
// snapshot. Entries whose description does not carry at least
// "schema.table" are skipped. Duplicate output keys keep the first
// occurrence.
func (b *Builder) Build(ctx context.Context, zoom float64, snapshot []catalogd.SchemaZoomEntry) (catalogd.CatalogView, error) {
	validSchemas := make(map[string]struct{}, len(snapshot)+1)
	validSchemas[catalogd.PublicSchema] = struct{}{}
	for _, e := range snapshot {
		if e.ValidAt(zoom) {
			validSchemas[e.Name] = struct{}{}
		}
	}

	raw, err := b.source.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}

	view := make(catalogd.CatalogView, len(raw))
	for _, entry := range raw {
		schema, table, ok := splitDescription(entry.Description)
		if !ok {
			b.log.Verbose("catalog: entry %q description %q has no schema.table, skipping", entry.TileKey, entry.Description)
			continue
		}
		if _, valid := validSchemas[schema]; !valid {
			continue
		}

		key := schema + "." + table
		if _, exists := view[key]; exists {
			b.log.Verbose("catalog: duplicate key %q from entry %q, keeping first", key, entry.TileKey)
			continue
		}

		url := entry.URL
		if url == "" {
			url = b.source.TileURL(entry.TileKey)
		}
		view[key] = catalogd.CatalogEntry{Schema: schema, Table: table, URL: url}
	}

	b.log.Verbose("catalog: built view for zoom %v with %d entries (%d schemas valid)", zoom, len(view), len(validSchemas))
	return view, nil
}

// splitDescription extracts schema and table from the first two segments
// of a dotted description. A trailing third segment (a suffix such as a
// geometry column) is ignored.
func splitDescription(description string) (schema, table string, ok bool) {
	parts := strings.SplitN(description, ".", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
