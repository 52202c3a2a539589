package db

import (
	"context"
	"time"
)

// TokenProvider abstracts cloud token acquisition for database
// authentication. This enables testability (mock providers) and keeps the
// connector independent of any one cloud SDK.
type TokenProvider interface {
	// GetToken acquires an OAuth token for database authentication.
	// The token is used as the password when connecting to cloud-hosted
	// PostgreSQL. Returns the token string and its expiry time.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String returns a human-readable description for logging.
	// Must NOT include secrets.
	String() string
}

// AzurePostgreSQLScope is the OAuth scope for Azure Database for
// PostgreSQL; Azure AD issues tokens for PostgreSQL access against this
// resource identifier.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"
