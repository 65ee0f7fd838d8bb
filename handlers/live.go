// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/fiesta-awwards/cliparse"
	"github.com/danielhkuo/fiesta-awwards/countdown"
	"github.com/danielhkuo/fiesta-awwards/feed"
	"github.com/danielhkuo/fiesta-awwards/models"
	"github.com/danielhkuo/fiesta-awwards/views"
)

const (
	liveWriteTimeout = 10 * time.Second
	liveReadLimit    = 4096
)

// Live message types
const (
	MessageFeed      = "feed"
	MessageCountdown = "countdown"
)

// FeedMessage is pushed on every feed change and every query change
type FeedMessage struct {
	Type    string         `json:"type"`
	Loaded  bool           `json:"loaded"`
	Total   int            `json:"total"`
	Query   string         `json:"query"`
	Content *views.Content `json:"content"`
}

// CountdownMessage is pushed every tick
type CountdownMessage struct {
	Type      string `json:"type"`
	Countdown string `json:"countdown"`
	Active    bool   `json:"active"`
}

// QueryMessage is sent by the client whenever the search term changes
type QueryMessage struct {
	Query string `json:"query"`
}

// LiveHandler serves GET /live. Each connection owns its own feed
// subscription and countdown timer, both released when the socket closes.
type LiveHandler struct {
	src      feed.Source
	deadline time.Time
	interval time.Duration
	upgrader websocket.Upgrader
	active   atomic.Int64
}

func NewLiveHandler(src feed.Source, cfg cliparse.Config) *LiveHandler {
	return &LiveHandler{
		src:      src,
		deadline: cfg.Deadline,
		interval: time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Active returns the number of open live connections
func (h *LiveHandler) Active() int64 {
	return h.active.Load()
}

// Live handles GET /live?q=
func (h *LiveHandler) Live(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	h.active.Add(1)
	defer h.active.Add(-1)
	defer conn.Close()
	conn.SetReadLimit(liveReadLimit)

	var writeMu sync.Mutex
	write := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		return conn.WriteJSON(v)
	}

	queries := make(chan string, 1)
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		<-ctx.Done()
		// Unblocks the reader
		return conn.Close()
	})

	g.Go(func() error {
		return readQueries(conn, queries)
	})

	g.Go(func() error {
		return h.pushFeed(ctx, r.URL.Query().Get("q"), queries, write)
	})

	g.Go(func() error {
		return h.pushCountdown(ctx, write)
	})

	slog.Info("live connection opened", "remote", r.RemoteAddr)
	err = g.Wait()
	slog.Info("live connection closed", "remote", r.RemoteAddr, "reason", err)
}

// readQueries forwards search terms until the client goes away.
// Malformed messages are ignored.
func readQueries(conn *websocket.Conn, queries chan string) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg QueryMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		select {
		case <-queries:
		default:
		}
		queries <- msg.Query
	}
}

func (h *LiveHandler) pushFeed(ctx context.Context, query string, queries <-chan string, write func(any) error) error {
	f := feed.New(h.src)
	if err := f.Start(ctx); err != nil {
		return err
	}
	defer f.Stop()

	states := f.Observe(ctx)
	var state feed.State
	have := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-states:
			if !ok {
				// The subscription ended; keep serving the last list
				states = nil
				continue
			}
			state, have = s, true
		case q := <-queries:
			query = q
			if !have {
				continue
			}
		}

		if err := write(feedMessage(state, query, h.deadline)); err != nil {
			return err
		}
	}
}

func (h *LiveHandler) pushCountdown(ctx context.Context, write func(any) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var werr error
	ticker := countdown.NewTicker(h.deadline, countdown.WithInterval(h.interval))
	ticker.Run(ctx, func(s string) {
		err := write(CountdownMessage{
			Type:      MessageCountdown,
			Countdown: s,
			Active:    countdown.Active(h.deadline, time.Now()),
		})
		if err != nil && werr == nil {
			werr = err
			cancel()
		}
	})
	return werr
}

func feedMessage(s feed.State, query string, deadline time.Time) FeedMessage {
	page := views.Build(views.Input{
		Route:    models.RouteHome,
		Now:      time.Now(),
		Deadline: deadline,
		Feed:     s,
		Query:    query,
	})
	return FeedMessage{
		Type:    MessageFeed,
		Loaded:  s.Loaded,
		Total:   len(s.Nominations),
		Query:   query,
		Content: page.Content,
	}
}
