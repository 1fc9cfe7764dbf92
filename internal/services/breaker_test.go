package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	b := NewBreaker()
	failing := func() error { return errors.New("upstream down") }

	for i := 0; i < b.maxFailures; i++ {
		err := b.Execute(failing)
		require.EqualError(t, err, "upstream down")
	}

	// Further calls are rejected without invoking fn.
	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.False(t, called)
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b := NewBreaker()
	failing := func() error { return errors.New("blip") }

	for i := 0; i < b.maxFailures-1; i++ {
		_ = b.Execute(failing)
	}
	require.NoError(t, b.Execute(func() error { return nil }))

	// The earlier failures no longer count toward opening.
	for i := 0; i < b.maxFailures-1; i++ {
		_ = b.Execute(failing)
	}
	err := b.Execute(func() error { return nil })
	assert.NoError(t, err)
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	b := NewBreaker()
	b.cooldown = 10 * time.Millisecond

	for i := 0; i < b.maxFailures; i++ {
		_ = b.Execute(func() error { return errors.New("down") })
	}
	require.ErrorIs(t, b.Execute(func() error { return nil }), ErrBreakerOpen)

	time.Sleep(b.cooldown + 5*time.Millisecond)

	// After the cooldown the breaker probes with real calls again and a run
	// of successes closes it.
	for i := 0; i < b.halfOpenMaxCalls; i++ {
		require.NoError(t, b.Execute(func() error { return nil }))
	}
	assert.Equal(t, breakerClosed, b.state)
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker()
	b.cooldown = 10 * time.Millisecond

	for i := 0; i < b.maxFailures; i++ {
		_ = b.Execute(func() error { return errors.New("down") })
	}

	time.Sleep(b.cooldown + 5*time.Millisecond)

	require.Error(t, b.Execute(func() error { return errors.New("still down") }))
	assert.ErrorIs(t, b.Execute(func() error { return nil }), ErrBreakerOpen)
}
