// Package tiles talks to the external vector tile server.
//
// The tile server publishes its table catalog as JSON in one of two
// shapes: a document with a top-level "tiles" object keyed by tile key,
// or a flat object whose keys are the tile keys themselves. The fetcher
// normalizes both into the same entry list.
package tiles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// defaultTimeout bounds a single catalog fetch when the caller's context
// carries no deadline of its own.
const defaultTimeout = 15 * time.Second

// rawTileInfo is a single catalog record as published by the tile server.
type rawTileInfo struct {
	Description string `json:"description"`
	URL         string `json:"url"`
}

// nestedDocument is the wrapped catalog shape: {"tiles": {key: info}}.
type nestedDocument struct {
	Tiles map[string]rawTileInfo `json:"tiles"`
}

// Fetcher retrieves the tile server's catalog document.
//
// Thread-Safety: safe for concurrent use; the embedded http.Client is
// thread-safe and the remaining fields are read-only after construction.
type Fetcher struct {
	baseURL     string
	catalogPath string
	client      *http.Client
	log         catalogd.Logger
}

// NewFetcher creates a Fetcher for the tile server at baseURL. Pass a nil
// client to use a default one with a request timeout. Panics if baseURL
// is empty or log is nil.
func NewFetcher(baseURL, catalogPath string, client *http.Client, log catalogd.Logger) *Fetcher {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}
	if log == nil {
		panic("log cannot be nil")
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if catalogPath == "" {
		catalogPath = catalogd.DefaultCatalogPath
	}

	return &Fetcher{
		baseURL:     strings.TrimRight(baseURL, "/"),
		catalogPath: catalogPath,
		client:      client,
		log:         log,
	}
}

// FetchRaw retrieves and normalizes the catalog document. Entries are
// returned sorted by tile key so downstream deduplication is
// deterministic. Entries without a description are skipped with a log
// line rather than failing the whole fetch.
//
// Network failures, non-2xx responses and malformed JSON all return an
// error wrapping catalogd.ErrFetch.
func (f *Fetcher) FetchRaw(ctx context.Context) ([]catalogd.RawCatalogEntry, error) {
	url := f.baseURL + f.catalogPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", catalogd.ErrFetch, url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", catalogd.ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", catalogd.ErrFetch, url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", catalogd.ErrFetch, url, err)
	}

	records, err := decodeCatalog(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", catalogd.ErrFetch, url, err)
	}

	entries := make([]catalogd.RawCatalogEntry, 0, len(records))
	for key, info := range records {
		if info.Description == "" {
			f.log.Verbose("tiles: catalog entry %q has no description, skipping", key)
			continue
		}
		entries = append(entries, catalogd.RawCatalogEntry{
			TileKey:     key,
			Description: info.Description,
			URL:         info.URL,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].TileKey < entries[j].TileKey })

	f.log.Verbose("tiles: fetched %d catalog entries from %s", len(entries), url)
	return entries, nil
}

// decodeCatalog accepts both published catalog shapes and returns the
// records keyed by tile key.
func decodeCatalog(body []byte) (map[string]rawTileInfo, error) {
	var nested nestedDocument
	if err := json.Unmarshal(body, &nested); err == nil && nested.Tiles != nil {
		return nested.Tiles, nil
	}

	var flat map[string]rawTileInfo
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, err
	}
	// The flat shape may still carry a "tiles" key when the wrapped shape
	// failed to decode above; treat that as malformed rather than a record.
	if _, ok := flat["tiles"]; ok && len(flat) == 1 {
		return nil, fmt.Errorf("catalog document has an unrecognized tiles object")
	}
	// In the flat shape the key itself encodes schema.table, so it doubles
	// as the description when the record carries none.
	for key, info := range flat {
		if info.Description == "" {
			info.Description = key
			flat[key] = info
		}
	}
	return flat, nil
}

// TileURL builds the templated tile address for a catalog entry that did
// not publish its own URL.
func (f *Fetcher) TileURL(tileKey string) string {
	return fmt.Sprintf("%s/tiles/%s/{z}/{x}/{y}.pbf", f.baseURL, tileKey)
}
