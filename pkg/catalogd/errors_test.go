package catalogd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"invalid config", ErrInvalidConfig, ExitConfigError},
		{"wrapped invalid config", fmt.Errorf("loading: %w", ErrInvalidConfig), ExitConfigError},
		{"unsupported auth method", ErrUnsupportedAuthMethod, ExitConfigError},
		{"connection failed", ErrConnectionFailed, ExitConnectionError},
		{"pgx connection refused", errors.New("failed to connect to `host=db`: connection refused"), ExitConnectionError},
		{"dns failure", errors.New("dial tcp: lookup db: no such host"), ExitConnectionError},
		{"fetch error", ErrFetch, ExitGeneralError},
		{"unclassified", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}
