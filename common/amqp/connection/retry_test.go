package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRetryEventuallySucceeds(t *testing.T) {
	calls := 0
	ok := retry(context.Background(), zerolog.Nop(), newBackoff(time.Millisecond), func() bool { return false }, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	assert.True(t, ok)
	assert.Equal(t, 3, calls)
}

func TestRetryStops(t *testing.T) {
	ok := retry(context.Background(), zerolog.Nop(), newBackoff(time.Millisecond), func() bool { return true }, func() error {
		t.Fatal("fn must not run once stopped")
		return nil
	})
	assert.False(t, ok)
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := retry(ctx, zerolog.Nop(), newBackoff(time.Second), func() bool { return false }, func() error {
		return errors.New("down")
	})
	assert.False(t, ok)
}

func TestNewBackoffFloor(t *testing.T) {
	b := newBackoff(0)
	assert.Equal(t, minRetryDelay, b.Max)
	assert.Equal(t, minRetryDelay, b.Min)
}
