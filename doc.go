// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the FiesTA Awwards server.

FiesTA Awwards collects nominations for teaching-assistant awards, shows
them in a live newest-first feed with a search filter, and counts down to
the nomination deadline. Signed-in users nominate and vote; jurors score.

# Starting the Server

The server reads a .env file, environment variables or CLI flags:

	IDENTITY_SECRET=... IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - IDENTITY_SECRET (--identity-secret): Secret for sign-in assertions
  - IP_HASH_SALT (--ip-salt): Salt for voter IP hashes

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:fiesta.db)
  - DEADLINE (--deadline): 2006-01-02T15:04:05 in local time
  - RULES_PATH (--rules): YAML rules and jury file (default: rules.yaml)
  - SESSION_TTL (--session-ttl): Session lifetime (default: 24h)

# Architecture

  - handlers: HTTP handlers for pages, nominations, votes, jury, sessions, live
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON helpers
  - feed: Live nomination list over a store subscription
  - search: Client-side filter
  - countdown: Deadline formatting and ticker
  - views: Page composition
  - docstore: JSON document store with live queries
  - identity, users: Sign-in sessions and profiles
  - rules: Rules, categories and jury, hot reloaded
  - auth: Signatures, tokens and hashing
  - db: Connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
