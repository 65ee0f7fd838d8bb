// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package countdown

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"
)

var deadline = time.Date(2025, time.January, 15, 23, 59, 0, 0, time.Local)

var shape = regexp.MustCompile(`^\d{3}d \d{2}h \d{2}m \d{2}s until Jan 15, 2025 11:59 PM$`)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			"five days before",
			time.Date(2025, time.January, 10, 23, 59, 0, 0, time.Local),
			"005d 00h 00m 00s until Jan 15, 2025 11:59 PM",
		},
		{
			"mixed components",
			time.Date(2025, time.January, 14, 20, 58, 57, 0, time.Local),
			"001d 03h 00m 03s until Jan 15, 2025 11:59 PM",
		},
		{
			"sub-second remainder truncates",
			deadline.Add(-1500 * time.Millisecond),
			"000d 00h 00m 01s until Jan 15, 2025 11:59 PM",
		},
		{
			"exactly at deadline",
			deadline,
			"000d 00h 00m 00s until Jan 15, 2025 11:59 PM",
		},
		{
			"more than 999 days out",
			deadline.Add(-1000 * 24 * time.Hour),
			"1000d 00h 00m 00s until Jan 15, 2025 11:59 PM",
		},
		{
			"one second late is not clamped",
			deadline.Add(time.Second),
			"0-1d -1h -1m -1s until Jan 15, 2025 11:59 PM",
		},
		{
			"a day and a half late",
			deadline.Add(36 * time.Hour),
			"0-2d -12h 00m 00s until Jan 15, 2025 11:59 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(deadline, tt.now); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_Shape(t *testing.T) {
	start := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.Local)
	for now := start; now.Before(deadline); now = now.Add(7*time.Hour + 13*time.Minute + 17*time.Second) {
		got := Format(deadline, now)
		if !shape.MatchString(got) {
			t.Fatalf("Format(%s) = %q does not match the fixed shape", now, got)
		}
	}
}

func TestActive(t *testing.T) {
	if !Active(deadline, deadline.Add(-time.Minute)) {
		t.Error("expected active before deadline")
	}
	if !Active(deadline, deadline) {
		t.Error("expected active at the deadline")
	}
	if Active(deadline, deadline.Add(time.Millisecond)) {
		t.Error("expected inactive after deadline")
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		n     int64
		width int
		want  string
	}{
		{5, 3, "005"},
		{42, 2, "42"},
		{123, 2, "123"},
		{-1, 3, "0-1"},
		{-1, 2, "-1"},
		{-12, 2, "-12"},
	}
	for _, tt := range tests {
		if got := pad(tt.n, tt.width); got != tt.want {
			t.Errorf("pad(%d, %d) = %q, want %q", tt.n, tt.width, got, tt.want)
		}
	}
}

func TestTicker(t *testing.T) {
	now := time.Date(2025, time.January, 10, 23, 59, 0, 0, time.Local)
	ticker := NewTicker(deadline,
		WithInterval(5*time.Millisecond),
		WithClock(func() time.Time { return now }),
	)

	if ticker.Current() != "" {
		t.Errorf("expected empty countdown before first tick, got %q", ticker.Current())
	}

	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	var ticks []string
	done := make(chan error, 1)
	go func() {
		done <- ticker.Run(ctx, func(s string) {
			mu.Lock()
			ticks = append(ticks, s)
			mu.Unlock()
		})
	}()

	deadlineWait := time.Now().Add(5 * time.Second)
	for {
		mu.Lock()
		n := len(ticks)
		mu.Unlock()
		if n >= 2 {
			break
		}
		if time.Now().After(deadlineWait) {
			t.Fatal("ticker did not tick")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}

	want := "005d 00h 00m 00s until Jan 15, 2025 11:59 PM"
	if ticker.Current() != want {
		t.Errorf("Current() = %q, want %q", ticker.Current(), want)
	}
}
