package services

import (
	"errors"
	"sync"
	"time"
)

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

var ErrBreakerOpen = errors.New("external service temporarily unavailable")

// Breaker is a small circuit breaker guarding the story-generation call, so a
// failing upstream does not hold every request for the full HTTP timeout.
type Breaker struct {
	mu              sync.Mutex
	state           breakerState
	failureCount    int
	successCount    int
	lastFailureTime time.Time

	maxFailures      int
	cooldown         time.Duration
	halfOpenMaxCalls int
}

func NewBreaker() *Breaker {
	return &Breaker{
		state:            breakerClosed,
		maxFailures:      5,
		cooldown:         30 * time.Second,
		halfOpenMaxCalls: 3,
	}
}

// Execute runs fn unless the breaker is open.
func (b *Breaker) Execute(fn func() error) error {
	if !b.allow() {
		return ErrBreakerOpen
	}

	if err := fn(); err != nil {
		b.recordFailure()
		return err
	}

	b.recordSuccess()
	return nil
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerClosed:
		return true
	case breakerOpen:
		if time.Since(b.lastFailureTime) >= b.cooldown {
			b.state = breakerHalfOpen
			b.successCount = 0
			return true
		}
		return false
	case breakerHalfOpen:
		return b.successCount < b.halfOpenMaxCalls
	}
	return false
}

func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	b.lastFailureTime = time.Now()

	switch b.state {
	case breakerClosed:
		if b.failureCount >= b.maxFailures {
			b.state = breakerOpen
		}
	case breakerHalfOpen:
		b.state = breakerOpen
	}
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerClosed:
		b.failureCount = 0
	case breakerHalfOpen:
		b.successCount++
		if b.successCount >= b.halfOpenMaxCalls {
			b.state = breakerClosed
			b.failureCount = 0
		}
	}
}
