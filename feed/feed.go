// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/fiesta-awwards/docstore"
	"github.com/danielhkuo/fiesta-awwards/models"
)

var ErrAlreadyStarted = errors.New("feed already started")

// Subscription is a live query: snapshots until the channel closes, then Err
// reports why it ended. *docstore.Watch implements it.
type Subscription interface {
	Snapshots() <-chan docstore.Snapshot
	Err() error
	Stop()
}

// Source opens subscriptions
type Source interface {
	Subscribe(ctx context.Context, q docstore.Query) Subscription
}

// StoreSource subscribes through a document store client
type StoreSource struct {
	Client *docstore.Client
}

func (s StoreSource) Subscribe(ctx context.Context, q docstore.Query) Subscription {
	return s.Client.Watch(ctx, q)
}

// State is an immutable view of the feed. Nominations must not be modified.
type State struct {
	Nominations []models.Nomination
	Loaded      bool
	Loading     bool
	UpdatedAt   time.Time
}

// Feed keeps the nomination list in sync with the store, newest first
type Feed struct {
	src   Source
	state atomic.Pointer[State]

	mu        sync.Mutex
	started   bool
	sub       Subscription
	done      chan struct{}
	ended     chan struct{}
	endOnce   sync.Once
	observers map[chan State]struct{}
}

func New(src Source) *Feed {
	f := &Feed{
		src:       src,
		done:      make(chan struct{}),
		ended:     make(chan struct{}),
		observers: make(map[chan State]struct{}),
	}
	f.state.Store(&State{Nominations: []models.Nomination{}, Loading: true})
	return f
}

// Query is the live query the feed subscribes to
func Query() docstore.Query {
	return docstore.Query{Collection: docstore.Nominations, Desc: true}
}

// Start subscribes to the nominations collection. The subscription lives
// until Stop is called or ctx is done.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.started {
		return ErrAlreadyStarted
	}
	f.started = true

	f.sub = f.src.Subscribe(ctx, Query())
	go f.consume(f.sub)
	return nil
}

// Stop cancels the subscription and waits for the feed to wind down
func (f *Feed) Stop() {
	f.mu.Lock()
	sub := f.sub
	f.sub = nil
	started := f.started
	f.mu.Unlock()

	if sub != nil {
		sub.Stop()
	}
	if started {
		<-f.done
	}
	f.end()
}

// State returns the current state. It never observes a half-applied snapshot.
func (f *Feed) State() State {
	return *f.state.Load()
}

// Done is closed once the subscription has ended, for whatever reason
func (f *Feed) Done() <-chan struct{} {
	return f.ended
}

// Observe delivers the current state and then every replacement. Slow
// observers only see the latest state. The channel is closed when ctx is
// done or the feed ends.
func (f *Feed) Observe(ctx context.Context) <-chan State {
	ch := make(chan State, 1)

	f.mu.Lock()
	ch <- f.State()
	select {
	case <-f.ended:
		f.mu.Unlock()
		close(ch)
		return ch
	default:
	}
	f.observers[ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-f.ended:
		}
		f.mu.Lock()
		if _, ok := f.observers[ch]; ok {
			delete(f.observers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}()

	return ch
}

func (f *Feed) consume(sub Subscription) {
	defer close(f.done)
	defer f.end()

	for snap := range sub.Snapshots() {
		f.publish(&State{
			Nominations: FromSnapshot(snap.Docs),
			Loaded:      true,
			UpdatedAt:   snap.ReadAt,
		})
	}

	if err := sub.Err(); err != nil {
		slog.Error("error fetching nominations", "error", err)
		prev := f.State()
		f.publish(&State{
			Nominations: prev.Nominations,
			Loaded:      prev.Loaded,
			UpdatedAt:   prev.UpdatedAt,
		})
	}
}

func (f *Feed) publish(s *State) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state.Store(s)
	for ch := range f.observers {
		select {
		case ch <- *s:
		default:
			// Drop the stale state the observer has not picked up yet
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- *s:
			default:
			}
		}
	}
}

func (f *Feed) end() {
	f.endOnce.Do(func() {
		f.mu.Lock()
		close(f.ended)
		for ch := range f.observers {
			delete(f.observers, ch)
			close(ch)
		}
		f.mu.Unlock()
	})
}
