// Package retry provides transient-error classification and exponential
// backoff for establishing the registry database connection.
//
// Catalog builds and tile-server fetches are deliberately never retried;
// a request that wants fresh data re-requests. This package is used only
// by the connectors in internal/db, where a transient network blip during
// process startup would otherwise be fatal.
package retry
