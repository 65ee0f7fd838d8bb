// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the SQL database and creates its schema.

# Drivers

Two drivers are registered:

  - sqlite: modernc.org/sqlite (pure Go, default)
  - postgres: github.com/lib/pq

	conn, err := db.Open(db.DriverSQLite, "file:fiesta.db")

SQLite connections are limited to one open connection.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - document: JSON documents keyed by (collection, id), with creation and
    update times in Unix milliseconds

Nominations, users, votes and jury scores are all collections in this table;
see package docstore.

# Placeholders

Queries are written with ? placeholders; Rebind converts them to $N for
PostgreSQL.
*/
package db
