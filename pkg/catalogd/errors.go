package catalogd

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	view, err := cache.GetOrBuild(key, build)
//	if errors.Is(err, catalogd.ErrFetch) {
//	    // Tile server unreachable or returned garbage; respond 500.
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the registry database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrDatabase indicates the schema registry query failed. The registry
	// degrades to an empty snapshot; the process keeps running.
	ErrDatabase = errors.New("registry query failed")

	// ErrFetch indicates the tile server catalog could not be retrieved or
	// decoded. The build that triggered the fetch fails; nothing is cached.
	ErrFetch = errors.New("tile catalog fetch failed")

	// ErrBadZoom indicates an inbound request carried an unparsable or
	// missing zoom value.
	ErrBadZoom = errors.New("invalid zoom value")

	// ErrUnsupportedAuthMethod indicates the requested database
	// authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	}

	// Check for common connection error patterns from wrapped pgx errors.
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
