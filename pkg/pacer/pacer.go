// Package pacer spaces frame captures at a fixed rate.
package pacer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrInvalidFPS is returned for a non-positive frame rate.
var ErrInvalidFPS = errors.New("pacer: fps must be positive")

// Stats summarizes the intervals observed between frame slots.
type Stats struct {
	Count        int           // intervals observed, one less than slots
	Total        time.Duration // sum of intervals
	Max          time.Duration // longest interval
	MaxDeviation time.Duration // largest distance from the nominal interval
}

// Observe adds one interval measured against the nominal interval.
func (s *Stats) Observe(elapsed, nominal time.Duration) {
	s.Count++
	s.Total += elapsed
	if elapsed > s.Max {
		s.Max = elapsed
	}
	dev := elapsed - nominal
	if dev < 0 {
		dev = -dev
	}
	if dev > s.MaxDeviation {
		s.MaxDeviation = dev
	}
}

// Average returns the mean interval.
func (s Stats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Pacer blocks callers until the next frame slot. Late slots are not made
// up with a burst of immediate frames.
type Pacer struct {
	interval time.Duration
	limiter  *rate.Limiter

	mu    sync.Mutex
	last  time.Time
	stats Stats
}

// New creates a pacer for fps frames per second.
func New(fps float64) (*Pacer, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFPS, fps)
	}
	interval := time.Duration(float64(time.Second) / fps)
	return &Pacer{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Interval returns the nominal time between slots.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Wait blocks until the next slot and returns the time since the previous
// one. The first call returns immediately with 0. When ctx ends first, Wait
// returns ctx.Err() and the slot is released.
func (p *Pacer) Wait(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r := p.limiter.Reserve()
	if d := r.Delay(); d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			r.Cancel()
			return 0, ctx.Err()
		}
	}

	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last.IsZero() {
		p.last = now
		return 0, nil
	}
	elapsed := now.Sub(p.last)
	p.last = now
	p.stats.Observe(elapsed, p.interval)
	return elapsed, nil
}

// Stats returns the interval statistics so far.
func (p *Pacer) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
