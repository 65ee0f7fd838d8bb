// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package countdown

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// DeadlineLayout renders the deadline in the countdown suffix
const DeadlineLayout = "Jan 2, 2006 3:04 PM"

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Format renders the time left until deadline as "DDDd HHh MMm SSs until <deadline>".
// Past the deadline the components go negative and are padded as text, so one
// second late reads "0-1d -1h -1m -1s". This is not clamped.
func Format(deadline, now time.Time) string {
	diff := deadline.UnixMilli() - now.UnixMilli()

	days := floorDiv(diff, msPerDay)
	hours := floorDiv(diff%msPerDay, msPerHour)
	minutes := floorDiv(diff%msPerHour, msPerMinute)
	seconds := floorDiv(diff%msPerMinute, msPerSecond)

	return pad(days, 3) + "d " +
		pad(hours, 2) + "h " +
		pad(minutes, 2) + "m " +
		pad(seconds, 2) + "s until " +
		deadline.Format(DeadlineLayout)
}

// Active reports whether now is at or before deadline
func Active(deadline, now time.Time) bool {
	return !now.After(deadline)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// pad left-pads the decimal text of n with zeros, sign included
func pad(n int64, width int) string {
	s := strconv.FormatInt(n, 10)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// Ticker recomputes the countdown once per interval
type Ticker struct {
	deadline time.Time
	interval time.Duration
	now      func() time.Time
	current  atomic.Pointer[string]
}

// Option configures a Ticker
type Option func(*Ticker)

// WithInterval changes the tick interval (default one second)
func WithInterval(d time.Duration) Option {
	return func(t *Ticker) { t.interval = d }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(t *Ticker) { t.now = now }
}

func NewTicker(deadline time.Time, opts ...Option) *Ticker {
	t := &Ticker{
		deadline: deadline,
		interval: time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	empty := ""
	t.current.Store(&empty)
	return t
}

// Deadline returns the fixed deadline
func (t *Ticker) Deadline() time.Time {
	return t.deadline
}

// Current returns the last computed countdown, empty before the first tick
func (t *Ticker) Current() string {
	return *t.current.Load()
}

// Run ticks until ctx is done. onTick may be nil.
func (t *Ticker) Run(ctx context.Context, onTick func(string)) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s := Format(t.deadline, t.now())
			t.current.Store(&s)
			if onTick != nil {
				onTick(s)
			}
		}
	}
}
