package service

import (
	"context"
	"time"
)

// Latency simulates network delay before an operation resolves.
type Latency interface {
	Wait(ctx context.Context) error
}

// FixedLatency waits the same duration before every operation. Since the delay
// is constant, operations resolve in the order they were submitted.
type FixedLatency time.Duration

// Wait blocks for the configured duration or until ctx is done.
func (l FixedLatency) Wait(ctx context.Context) error {
	if l <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(l))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoLatency resolves immediately. Tests use it to run synchronously.
type NoLatency struct{}

func (NoLatency) Wait(ctx context.Context) error {
	return ctx.Err()
}

// NewLatency picks FixedLatency for positive durations and NoLatency otherwise.
func NewLatency(d time.Duration) Latency {
	if d <= 0 {
		return NoLatency{}
	}
	return FixedLatency(d)
}
