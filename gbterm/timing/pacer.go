package timing

import (
	"log/slog"
	"time"
)

// Pacer spaces frames at least one period apart.
//
// Each wait is measured from the moment the previous wait finished. A frame
// that arrives late is released immediately and nothing is carried over, so
// one slow frame costs at most one skipped wait and never a burst of
// catch-up frames.
type Pacer struct {
	clock    Clock
	period   time.Duration
	previous time.Time

	frames  int64
	overrun int64
	started time.Time
}

// NewPacer creates a pacer. A nil clock selects SystemClock and a
// non-positive period selects DefaultFramePeriod.
func NewPacer(period time.Duration, clock Clock) *Pacer {
	if clock == nil {
		clock = SystemClock{}
	}
	if period <= 0 {
		period = DefaultFramePeriod
	}
	now := clock.Now()
	return &Pacer{
		clock:    clock,
		period:   period,
		previous: now,
		started:  now,
	}
}

func (p *Pacer) Period() time.Duration { return p.period }

// WaitForNextFrame sleeps for whatever is left of the period since the
// previous call returned.
func (p *Pacer) WaitForNextFrame() {
	elapsed := p.clock.Now().Sub(p.previous)
	if elapsed < p.period {
		p.clock.Sleep(p.period - elapsed)
	} else {
		p.overrun++
	}
	p.previous = p.clock.Now()
	p.frames++

	if p.frames%300 == 0 {
		wall := p.previous.Sub(p.started)
		slog.Debug("Frame pacing",
			"frames", p.frames,
			"overruns", p.overrun,
			"fps", float64(p.frames)*float64(time.Second)/float64(wall))
	}
}

// Reset restarts the period from now, e.g. after the loop was suspended.
func (p *Pacer) Reset() {
	p.previous = p.clock.Now()
	p.started = p.previous
	p.frames = 0
	p.overrun = 0
}

// Overruns returns how many frames arrived after their period had already elapsed.
func (p *Pacer) Overruns() int64 { return p.overrun }

var _ Limiter = (*Pacer)(nil)
