// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Tx is a read-modify-write transaction over documents.
// Live queries on the touched collections fire once, after commit.
type Tx struct {
	c       *Client
	ctx     context.Context
	tx      *sql.Tx
	touched map[string]struct{}
}

// RunTransaction runs fn in a transaction. Returning an error rolls it back.
func (c *Client) RunTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	tx := &Tx{c: c, ctx: ctx, tx: sqlTx, touched: make(map[string]struct{})}
	if err := fn(tx); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	for collection := range tx.touched {
		c.notify(collection)
	}
	return nil
}

// Get reads a document, locking it for the rest of the transaction where the database supports it
func (t *Tx) Get(collection, id string) (Document, error) {
	return t.c.get(t.ctx, t.tx, collection, id, true)
}

// Create stores a new document and fails with ErrExists if the id is taken
func (t *Tx) Create(collection, id string, data map[string]any) error {
	if err := t.c.insert(t.ctx, t.tx, collection, id, data); err != nil {
		return err
	}
	t.touched[collection] = struct{}{}
	return nil
}

// Add stores data under a fresh id
func (t *Tx) Add(collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := t.Create(collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Set creates the document or replaces its data
func (t *Tx) Set(collection, id string, data map[string]any) error {
	if err := t.c.upsert(t.ctx, t.tx, collection, id, data); err != nil {
		return err
	}
	t.touched[collection] = struct{}{}
	return nil
}

// Merge overwrites the given top-level fields, keeping the rest of the document
func (t *Tx) Merge(collection, id string, data map[string]any) error {
	merged := make(map[string]any, len(data))
	existing, err := t.Get(collection, id)
	switch {
	case err == ErrNotFound:
	case err != nil:
		return err
	default:
		for k, v := range existing.Data {
			merged[k] = v
		}
	}
	for k, v := range data {
		merged[k] = v
	}
	return t.Set(collection, id, merged)
}

// Query lists documents inside the transaction
func (t *Tx) Query(q Query) ([]Document, error) {
	return t.c.query(t.ctx, t.tx, q)
}
