package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsTransientPgErrors(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	transientCodes := []string{
		"08000", // connection_exception
		"08006", // connection_failure
		"53300", // too_many_connections
		"57P01", // admin_shutdown
		"40001", // serialization_failure
		"40P01", // deadlock_detected
		"55P03", // lock_not_available
	}
	for _, code := range transientCodes {
		assert.True(t, c.IsTransient(&pgconn.PgError{Code: code}), "code %s", code)
	}

	permanentCodes := []string{
		"28P01", // invalid_password
		"3D000", // invalid_catalog_name
		"42601", // syntax_error
		"42P01", // undefined_table
	}
	for _, code := range permanentCodes {
		assert.False(t, c.IsTransient(&pgconn.PgError{Code: code}), "code %s", code)
	}
}

func TestIsTransientNetworkErrors(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	assert.True(t, c.IsTransient(syscall.ECONNREFUSED))
	assert.True(t, c.IsTransient(fmt.Errorf("dial: %w", syscall.ECONNRESET)))
	assert.True(t, c.IsTransient(errors.New("read tcp: connection reset by peer")))
	assert.True(t, c.IsTransient(errors.New("dial tcp 10.0.0.1:5432: i/o timeout")))
}

func TestIsTransientContextErrors(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	assert.False(t, c.IsTransient(context.Canceled))
	assert.False(t, c.IsTransient(context.DeadlineExceeded))
	assert.False(t, c.IsTransient(fmt.Errorf("connect: %w", context.Canceled)))
}

func TestIsTransientMisc(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	assert.False(t, c.IsTransient(nil))
	assert.False(t, c.IsTransient(errors.New("column does not exist")))
}
