// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package docstore is a small document database on top of SQL.

Documents are JSON objects grouped into collections and addressed by id.
The client is constructed once at startup and shared by reference:

	conn, _ := db.Open(db.DriverSQLite, "file:fiesta.db")
	store := docstore.New(conn, db.DriverSQLite)
	defer store.Close()

# Writes

	id, err := store.Add(ctx, docstore.Nominations, data)   // fresh uuid
	err = store.Set(ctx, docstore.Users, uid, data)         // create or replace
	err = store.Merge(ctx, docstore.Users, uid, fields)     // create or merge fields

Read-modify-write goes through a transaction:

	err = store.RunTransaction(ctx, func(tx *docstore.Tx) error {
		doc, err := tx.Get(docstore.Nominations, id)
		...
		return tx.Set(docstore.Nominations, id, doc.Data)
	})

# Live Queries

Watch delivers a full Snapshot of a collection, ordered by creation time,
first on start and then after every committed write made through the same
client. See Watch for the lifecycle.
*/
package docstore
