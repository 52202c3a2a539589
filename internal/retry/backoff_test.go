package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoffGrowth(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithJitter(0),
	)

	assert.Equal(t, 100*time.Millisecond, b.NextDelay(0))
	assert.Equal(t, 200*time.Millisecond, b.NextDelay(1))
	assert.Equal(t, 400*time.Millisecond, b.NextDelay(2))
	assert.Equal(t, 800*time.Millisecond, b.NextDelay(3))
}

func TestExponentialBackoffCapsAtMaxDelay(t *testing.T) {
	b := NewExponentialBackoff(20,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(1*time.Second),
		WithMultiplier(2.0),
		WithJitter(0),
	)

	assert.Equal(t, 1*time.Second, b.NextDelay(10))
	assert.Equal(t, 1*time.Second, b.NextDelay(50))
}

func TestExponentialBackoffJitterSpread(t *testing.T) {
	// Jitter values 0 and 1 map onto the extremes of the spread.
	low := NewExponentialBackoff(3,
		WithInitialDelay(1*time.Second),
		WithJitter(0.1),
		WithJitterFunc(func() float64 { return 0 }),
	)
	high := NewExponentialBackoff(3,
		WithInitialDelay(1*time.Second),
		WithJitter(0.1),
		WithJitterFunc(func() float64 { return 1 }),
	)

	assert.Equal(t, 900*time.Millisecond, low.NextDelay(0))
	assert.Equal(t, 1100*time.Millisecond, high.NextDelay(0))
}

func TestExponentialBackoffMaxAttempts(t *testing.T) {
	assert.Equal(t, 3, NewExponentialBackoff(3).MaxAttempts())
	assert.Equal(t, 0, NewExponentialBackoff(0).MaxAttempts())
	assert.Equal(t, -1, NewExponentialBackoff(-1).MaxAttempts())
}
