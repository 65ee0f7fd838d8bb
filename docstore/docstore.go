// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/danielhkuo/fiesta-awwards/db"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrExists   = errors.New("document already exists")
)

// Collections used by the application
const (
	Nominations = "nominations"
	Users       = "users"
	Votes       = "votes"
	JuryScores  = "juryScores"
)

// Document is a single JSON document in a collection
type Document struct {
	Collection string
	ID         string
	Data       map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Query selects a collection ordered by document creation time
type Query struct {
	Collection string
	// IDPrefix keeps only documents whose id starts with it
	IDPrefix string
	Desc     bool
	Limit    int
}

// Snapshot is the full result of a query at ReadAt
type Snapshot struct {
	Docs   []Document
	ReadAt time.Time
}

// Option configures a Client
type Option func(*Client)

// WithClock replaces time.Now for document timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client is the handle on the document store. Create one at startup and share it.
type Client struct {
	db     *sql.DB
	driver string
	now    func() time.Time

	mu      sync.Mutex
	watches map[string]map[*Watch]struct{}
}

func New(conn *sql.DB, driver string, opts ...Option) *Client {
	c := &Client{
		db:      conn,
		driver:  driver,
		now:     time.Now,
		watches: make(map[string]map[*Watch]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close stops every live query. The underlying *sql.DB is left open.
func (c *Client) Close() {
	c.mu.Lock()
	var all []*Watch
	for _, set := range c.watches {
		for w := range set {
			all = append(all, w)
		}
	}
	c.mu.Unlock()

	for _, w := range all {
		w.Stop()
	}
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Get returns a single document or ErrNotFound
func (c *Client) Get(ctx context.Context, collection, id string) (Document, error) {
	return c.get(ctx, c.db, collection, id, false)
}

// Add stores data under a fresh id and returns it
func (c *Client) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := c.insert(ctx, c.db, collection, id, data); err != nil {
		return "", err
	}
	c.notify(collection)
	return id, nil
}

// Set creates the document or replaces its data
func (c *Client) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if err := c.upsert(ctx, c.db, collection, id, data); err != nil {
		return err
	}
	c.notify(collection)
	return nil
}

// Merge creates the document or overwrites only the given top-level fields
func (c *Client) Merge(ctx context.Context, collection, id string, data map[string]any) error {
	return c.RunTransaction(ctx, func(tx *Tx) error {
		return tx.Merge(collection, id, data)
	})
}

// Delete removes a document. Deleting a missing document is not an error.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	_, err := c.db.ExecContext(ctx, c.bind(`
		DELETE FROM document WHERE collection = ? AND id = ?
	`), collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	c.notify(collection)
	return nil
}

// Query runs q once
func (c *Client) Query(ctx context.Context, q Query) ([]Document, error) {
	return c.query(ctx, c.db, q)
}

func (c *Client) query(ctx context.Context, qr queryer, q Query) ([]Document, error) {
	order := "ASC"
	if q.Desc {
		order = "DESC"
	}
	stmt := `
		SELECT id, data, created_at, updated_at
		FROM document
		WHERE collection = ?`
	args := []any{q.Collection}
	if q.IDPrefix != "" {
		stmt += ` AND id LIKE ? ESCAPE '\'`
		args = append(args, likePrefix(q.IDPrefix))
	}
	stmt += `
		ORDER BY created_at ` + order + `, id ` + order
	if q.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := qr.QueryContext(ctx, c.bind(stmt), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.Collection, err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var raw string
		var created, updated int64
		doc := Document{Collection: q.Collection}
		if err := rows.Scan(&doc.ID, &raw, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", q.Collection, err)
		}
		// SQLite LIKE ignores ASCII case
		if q.IDPrefix != "" && !strings.HasPrefix(doc.ID, q.IDPrefix) {
			continue
		}
		doc.Data = decode(q.Collection, doc.ID, raw)
		doc.CreatedAt = time.UnixMilli(created)
		doc.UpdatedAt = time.UnixMilli(updated)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", q.Collection, err)
	}

	return docs, nil
}

func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

func (c *Client) get(ctx context.Context, q queryer, collection, id string, lock bool) (Document, error) {
	stmt := `
		SELECT data, created_at, updated_at
		FROM document
		WHERE collection = ? AND id = ?`
	if lock && c.driver == db.DriverPostgres {
		stmt += " FOR UPDATE"
	}

	var raw string
	var created, updated int64
	err := q.QueryRowContext(ctx, c.bind(stmt), collection, id).Scan(&raw, &created, &updated)
	if err == sql.ErrNoRows {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}

	return Document{
		Collection: collection,
		ID:         id,
		Data:       decode(collection, id, raw),
		CreatedAt:  time.UnixMilli(created),
		UpdatedAt:  time.UnixMilli(updated),
	}, nil
}

func (c *Client) insert(ctx context.Context, q queryer, collection, id string, data map[string]any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}

	now := c.now().UnixMilli()
	_, err = q.ExecContext(ctx, c.bind(`
		INSERT INTO document (collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`), collection, id, string(payload), now, now)
	if isUniqueViolation(err) {
		return ErrExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (c *Client) upsert(ctx context.Context, q queryer, collection, id string, data map[string]any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}

	now := c.now().UnixMilli()
	_, err = q.ExecContext(ctx, c.bind(`
		INSERT INTO document (collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE
		SET data = excluded.data, updated_at = excluded.updated_at
	`), collection, id, string(payload), now, now)
	if err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (c *Client) bind(query string) string {
	return db.Rebind(c.driver, query)
}

// decode never fails: a document whose payload is not a JSON object has nil Data
func decode(collection, id, raw string) map[string]any {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		slog.Warn("malformed document", "collection", collection, "id", id, "error", err)
		return nil
	}
	return data
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
