// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"sync"
)

// Watch is a live query. It delivers a full snapshot right away and again
// after every committed write to the collection. Writes that land while the
// consumer is busy are coalesced into the next snapshot.
//
//	w := client.Watch(ctx, docstore.Query{Collection: docstore.Nominations, Desc: true})
//	defer w.Stop()
//	for snap := range w.Snapshots() {
//		...
//	}
//	if err := w.Err(); err != nil {
//		...
//	}
//
// A failed query ends the watch: Snapshots is closed and Err reports the
// failure. There is no retry.
type Watch struct {
	c         *Client
	q         Query
	snapshots chan Snapshot
	kick      chan struct{}
	cancel    context.CancelFunc
	done      chan struct{}

	mu  sync.Mutex
	err error
}

// Watch starts a live query. It runs until Stop is called, ctx is done or a query fails.
func (c *Client) Watch(ctx context.Context, q Query) *Watch {
	ctx, cancel := context.WithCancel(ctx)
	w := &Watch{
		c:         c,
		q:         q,
		snapshots: make(chan Snapshot),
		kick:      make(chan struct{}, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	c.mu.Lock()
	set, ok := c.watches[q.Collection]
	if !ok {
		set = make(map[*Watch]struct{})
		c.watches[q.Collection] = set
	}
	set[w] = struct{}{}
	c.mu.Unlock()

	w.kick <- struct{}{}
	go w.run(ctx)
	return w
}

// Snapshots is closed when the watch ends
func (w *Watch) Snapshots() <-chan Snapshot {
	return w.snapshots
}

// Err returns the query failure that ended the watch, or nil
func (w *Watch) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Done is closed once the watch has fully stopped
func (w *Watch) Done() <-chan struct{} {
	return w.done
}

// Stop cancels the live query and waits for it to finish. Safe to call more than once.
func (w *Watch) Stop() {
	w.cancel()
	<-w.done
}

func (w *Watch) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.snapshots)
	defer w.c.unregister(w)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.kick:
		}

		docs, err := w.c.Query(ctx, w.q)
		if err != nil {
			if ctx.Err() == nil {
				w.mu.Lock()
				w.err = err
				w.mu.Unlock()
			}
			return
		}

		select {
		case w.snapshots <- Snapshot{Docs: docs, ReadAt: w.c.now()}:
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) notify(collection string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for w := range c.watches[collection] {
		select {
		case w.kick <- struct{}{}:
		default:
		}
	}
}

func (c *Client) unregister(w *Watch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.watches[w.q.Collection]; ok {
		delete(set, w)
		if len(set) == 0 {
			delete(c.watches, w.q.Collection)
		}
	}
}
