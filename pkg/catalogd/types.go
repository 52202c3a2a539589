package catalogd

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// SchemaZoomEntry is one row of the schema registry: a named group of map
// layers together with the zoom range in which the group is servable.
// Entries are immutable once loaded; the registry replaces whole snapshots.
type SchemaZoomEntry struct {
	// Name is the schema (layer group) name, e.g. "elv".
	Name string

	// MinZoom and MaxZoom bound the zoom range, inclusive on both ends.
	MinZoom float64
	MaxZoom float64

	// PrefetchPriority orders schemas for listing consumers, highest first.
	PrefetchPriority int
}

// ValidAt reports whether the schema is servable at the given zoom.
// Both bounds are inclusive.
func (e SchemaZoomEntry) ValidAt(zoom float64) bool {
	return zoom >= e.MinZoom && zoom <= e.MaxZoom
}

// RawCatalogEntry is a single normalized entry of the external tile server's
// catalog document. It is read-only input: catalogd never writes it back.
type RawCatalogEntry struct {
	// TileKey is the identifier the tile server routes tile requests on.
	TileKey string

	// Description encodes "<schema>.<table>[.<suffix>]".
	Description string

	// URL is the embedded URL template, when the catalog shape carries one.
	URL string
}

// CatalogEntry is one servable layer in a built catalog view.
type CatalogEntry struct {
	Schema string `json:"schema"`
	Table  string `json:"table"`
	URL    string `json:"url"`
}

// CatalogView maps "<schema>.<table>" to its catalog entry. Views are
// immutable once built; a rebuild replaces the view wholesale.
type CatalogView map[string]CatalogEntry

// ZoomKey is a zoom value normalized to the cache key precision. Two zooms
// that differ only beyond ZoomKeyPrecision decimals map to the same key.
type ZoomKey float64

// NewZoomKey normalizes a raw zoom value to cache key precision.
func NewZoomKey(zoom float64) ZoomKey {
	scale := math.Pow10(ZoomKeyPrecision)
	return ZoomKey(math.Round(zoom*scale) / scale)
}

// Float64 returns the normalized zoom value.
func (k ZoomKey) Float64() float64 { return float64(k) }

// String formats the key without trailing zeros, for logs and metrics.
func (k ZoomKey) String() string {
	return strconv.FormatFloat(float64(k), 'f', -1, 64)
}

// Neighbors returns the keys one zoom level below and above, in that order.
// Callers are responsible for dropping neighbors outside the zoom domain.
func (k ZoomKey) Neighbors() [2]ZoomKey {
	return [2]ZoomKey{NewZoomKey(float64(k) - 1), NewZoomKey(float64(k) + 1)}
}

// InDomain reports whether the key lies inside [min, max].
func (k ZoomKey) InDomain(min, max float64) bool {
	return float64(k) >= min && float64(k) <= max
}

// ServiceConfig contains all parameters needed to run the catalog service.
type ServiceConfig struct {
	// ListenAddr is the HTTP listen address, e.g. ":8080".
	ListenAddr string

	// TileServerURL is the base address of the external tile server.
	TileServerURL string

	// CatalogPath is the path of the tile server's catalog endpoint,
	// joined to TileServerURL. Defaults to DefaultCatalogPath.
	CatalogPath string

	// ZoomMin and ZoomMax bound the zoom domain for prefetching.
	// Neighbor keys outside the domain are dropped, not clamped.
	ZoomMin float64
	ZoomMax float64

	// PrefetchWorkers is the size of the background warm pool.
	PrefetchWorkers int

	// PrefetchQueue is the warm pool's job queue capacity.
	PrefetchQueue int

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks the ServiceConfig for required fields and consistent
// values. It returns a multi-error if several validations fail.
func (c *ServiceConfig) Validate() error {
	var errs []error

	if c.TileServerURL == "" {
		errs = append(errs, fmt.Errorf("TileServerURL is required: %w", ErrInvalidConfig))
	}
	if c.ListenAddr == "" {
		errs = append(errs, fmt.Errorf("ListenAddr is required: %w", ErrInvalidConfig))
	}
	if c.ZoomMin > c.ZoomMax {
		errs = append(errs, fmt.Errorf("ZoomMin (%v) exceeds ZoomMax (%v): %w", c.ZoomMin, c.ZoomMax, ErrInvalidConfig))
	}
	if c.PrefetchWorkers < 0 {
		errs = append(errs, fmt.Errorf("PrefetchWorkers cannot be negative: %w", ErrInvalidConfig))
	}
	if c.PrefetchQueue < 0 {
		errs = append(errs, fmt.Errorf("PrefetchQueue cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents resolved registry database connection
// parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use.
	AuthMethod AuthMethod

	// Additional connection parameters.
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (AuthMethodAzureEntraID).
	// With all three set, Service Principal authentication is used;
	// otherwise the DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance), required for AuthMethodGoogleIAM.
	GoogleInstance string
}

// AuthMethod represents the type of database authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
