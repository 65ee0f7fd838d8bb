// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/danielhkuo/fiesta-awwards/docstore"
	"github.com/danielhkuo/fiesta-awwards/models"
	"github.com/danielhkuo/fiesta-awwards/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSub is a subscription driven by the test
type fakeSub struct {
	ch      chan docstore.Snapshot
	once    sync.Once
	mu      sync.Mutex
	err     error
	stopped bool
}

func newFakeSub() *fakeSub {
	return &fakeSub{ch: make(chan docstore.Snapshot)}
}

func (s *fakeSub) Snapshots() <-chan docstore.Snapshot { return s.ch }

func (s *fakeSub) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *fakeSub) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.once.Do(func() { close(s.ch) })
}

func (s *fakeSub) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.once.Do(func() { close(s.ch) })
}

type fakeSource struct {
	sub   *fakeSub
	query docstore.Query
}

func (f *fakeSource) Subscribe(ctx context.Context, q docstore.Query) Subscription {
	f.query = q
	return f.sub
}

func nominationDoc(id, name string) docstore.Document {
	return docstore.Document{
		ID: id,
		Data: map[string]any{
			"type":    models.TypePerson,
			"nominee": map[string]any{"name": name, "category": "Best TA"},
		},
	}
}

func waitState(t *testing.T, f *Feed, cond func(State) bool) State {
	t.Helper()
	var s State
	testutil.WaitFor(t, 5*time.Second, func() bool {
		s = f.State()
		return cond(s)
	})
	return s
}

func TestFeed_InitialStateIsLoading(t *testing.T) {
	f := New(&fakeSource{sub: newFakeSub()})

	s := f.State()
	if !s.Loading || s.Loaded {
		t.Errorf("expected loading and not loaded, got %+v", s)
	}
	if s.Nominations == nil || len(s.Nominations) != 0 {
		t.Errorf("expected empty list, got %v", s.Nominations)
	}
	f.Stop()
}

func TestFeed_SubscribesNewestFirst(t *testing.T) {
	src := &fakeSource{sub: newFakeSub()}
	f := New(src)
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer f.Stop()

	if src.query.Collection != docstore.Nominations || !src.query.Desc {
		t.Errorf("unexpected query %+v", src.query)
	}
	if err := f.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestFeed_ZeroDocumentsIsLoadedAndEmpty(t *testing.T) {
	sub := newFakeSub()
	f := New(&fakeSource{sub: sub})
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer f.Stop()

	sub.ch <- docstore.Snapshot{}

	s := waitState(t, f, func(s State) bool { return s.Loaded })
	if len(s.Nominations) != 0 {
		t.Errorf("expected empty list, got %d", len(s.Nominations))
	}
	if s.Loading {
		t.Error("expected loading to be cleared")
	}
}

func TestFeed_ReplacesListOnEverySnapshot(t *testing.T) {
	sub := newFakeSub()
	f := New(&fakeSource{sub: sub})
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer f.Stop()

	sub.ch <- docstore.Snapshot{Docs: []docstore.Document{nominationDoc("a", "Alice")}}
	waitState(t, f, func(s State) bool { return len(s.Nominations) == 1 })

	sub.ch <- docstore.Snapshot{Docs: []docstore.Document{
		nominationDoc("b", "Bob"),
		nominationDoc("a", "Alice"),
		{ID: "broken", Data: map[string]any{"type": models.TypePerson}},
	}}
	s := waitState(t, f, func(s State) bool { return len(s.Nominations) == 2 })

	if s.Nominations[0].ID != "b" || s.Nominations[1].ID != "a" {
		t.Errorf("expected snapshot order [b a], got [%s %s]", s.Nominations[0].ID, s.Nominations[1].ID)
	}
}

func TestFeed_ErrorKeepsLastList(t *testing.T) {
	sub := newFakeSub()
	f := New(&fakeSource{sub: sub})
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer f.Stop()

	sub.ch <- docstore.Snapshot{Docs: []docstore.Document{nominationDoc("a", "Alice")}}
	waitState(t, f, func(s State) bool { return len(s.Nominations) == 1 })

	sub.fail(errors.New("permission denied"))

	select {
	case <-f.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("feed did not end after subscription error")
	}

	s := f.State()
	if len(s.Nominations) != 1 || s.Nominations[0].ID != "a" {
		t.Errorf("expected last list to survive the error, got %v", s.Nominations)
	}
	if s.Loading {
		t.Error("expected loading to be cleared after error")
	}
}

func TestFeed_ErrorBeforeFirstSnapshotClearsLoading(t *testing.T) {
	sub := newFakeSub()
	f := New(&fakeSource{sub: sub})
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer f.Stop()

	sub.fail(errors.New("unavailable"))
	<-f.Done()

	s := f.State()
	if s.Loading || s.Loaded {
		t.Errorf("expected not loading and not loaded, got %+v", s)
	}
}

func TestFeed_StopCancelsSubscription(t *testing.T) {
	sub := newFakeSub()
	f := New(&fakeSource{sub: sub})
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	f.Stop()
	f.Stop()

	sub.mu.Lock()
	stopped := sub.stopped
	sub.mu.Unlock()
	if !stopped {
		t.Error("expected subscription to be stopped")
	}
}

func TestFeed_Observe(t *testing.T) {
	sub := newFakeSub()
	f := New(&fakeSource{sub: sub})
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer f.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	states := f.Observe(ctx)

	first := <-states
	if !first.Loading {
		t.Errorf("expected first observed state to be loading, got %+v", first)
	}

	sub.ch <- docstore.Snapshot{Docs: []docstore.Document{nominationDoc("a", "Alice")}}

	select {
	case s := <-states:
		if len(s.Nominations) != 1 {
			t.Errorf("expected 1 nomination, got %d", len(s.Nominations))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no state observed")
	}

	cancel()
	testutil.WaitFor(t, 5*time.Second, func() bool {
		select {
		case _, ok := <-states:
			return !ok
		default:
			return false
		}
	})
}

func TestFeed_ObserveClosesWhenFeedStops(t *testing.T) {
	sub := newFakeSub()
	f := New(&fakeSource{sub: sub})
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	states := f.Observe(context.Background())
	<-states
	f.Stop()

	if _, ok := <-states; ok {
		t.Error("expected observer channel to close")
	}

	// Observing an ended feed yields the final state and a closed channel
	late := f.Observe(context.Background())
	if _, ok := <-late; !ok {
		t.Error("expected final state before close")
	}
	if _, ok := <-late; ok {
		t.Error("expected closed channel")
	}
}

func TestFeed_WithDocumentStore(t *testing.T) {
	store, _ := testutil.SetupTestStore(t)

	f := New(StoreSource{Client: store})
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer f.Stop()

	waitState(t, f, func(s State) bool { return s.Loaded })

	first := testutil.CreateTestNomination(t, store, models.TypePerson, "Alice", "Best TA", "")
	time.Sleep(2 * time.Millisecond)
	second := testutil.CreateTestNomination(t, store, models.TypeOther, "Bob", "Best Mentor", "Carol")

	s := waitState(t, f, func(s State) bool { return len(s.Nominations) == 2 })
	if s.Nominations[0].ID != second || s.Nominations[1].ID != first {
		t.Errorf("expected newest first, got %s, %s", s.Nominations[0].ID, s.Nominations[1].ID)
	}
	if s.Nominations[0].Nominator == nil || s.Nominations[0].Nominator.Name != "Carol" {
		t.Errorf("expected nominator Carol, got %+v", s.Nominations[0].Nominator)
	}
}
