package catalogd

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Clean shutdown
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to the registry database
)

const (
	// ZoomKeyPrecision is the number of decimals a zoom value is rounded to
	// when it becomes a cache key. The synchronous build path and the
	// background warm path both use this constant; a mismatch would make
	// warmed entries invisible to later requests.
	ZoomKeyPrecision = 3

	// DefaultZoomMin and DefaultZoomMax bound the slippy-map zoom domain.
	// Warm targets outside the domain are dropped.
	DefaultZoomMin = 0
	DefaultZoomMax = 22

	// PublicSchema is the default, ungrouped namespace. It passes the zoom
	// filter at every zoom level regardless of registry contents.
	PublicSchema = "public"

	// DefaultCatalogPath is the tile server's catalog endpoint path.
	DefaultCatalogPath = "/catalog"

	// DefaultListenAddr is the HTTP listen address when none is configured.
	DefaultListenAddr = ":8080"

	// DefaultPrefetchWorkers is the size of the background warm pool.
	DefaultPrefetchWorkers = 2

	// DefaultPrefetchQueue is the warm pool's job queue capacity. Warm
	// requests beyond capacity are dropped, never blocked on.
	DefaultPrefetchQueue = 16
)

const (
	// DefaultRetryInitialDelay is the initial delay before the first retry
	// of a registry connection attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the maximum delay between connection retries.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the maximum number of connection retries.
	// Catalog builds are never retried; this applies only to establishing
	// the registry database connection.
	DefaultRetryMaxAttempts = 3

	// DefaultManagementDB is the database used for server-level operations
	// when none is specified in the connection parameters.
	DefaultManagementDB = "postgres"
)
