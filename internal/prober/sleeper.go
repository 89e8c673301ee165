package prober

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Sleeper waits between trials.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// ClockSleeper sleeps on a clockwork clock and returns early with the
// context error when ctx is done.
type ClockSleeper struct {
	clock clockwork.Clock
}

func NewClockSleeper(clock clockwork.Clock) *ClockSleeper {
	return &ClockSleeper{clock: clock}
}

func (s *ClockSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := s.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
