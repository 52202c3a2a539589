package registry

// SQL query constants for registry operations. Centralizing queries here
// keeps SQL separate from Go code.

const (
	// querySchemaZoomRanges lists every schema's zoom range, highest
	// prefetch priority first. The secondary sort keys make snapshot order
	// deterministic when priorities tie.
	querySchemaZoomRanges = `
		SELECT schema_name, min_zoom, max_zoom, prefetch_priority
		FROM map_schemas
		ORDER BY prefetch_priority DESC, schema_name ASC
	`
)
