// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the FiesTA Awwards API.

# Handler Types

Each handler is a struct built from the shared clients and config:

  - PageHandler: the four routes (/, /jury, /rules, /leaderboard)
  - NominationHandler: create, list and fetch nominations
  - VoteHandler: community votes
  - JuryHandler: jury scores
  - SessionHandler: sign-in and sign-out
  - LiveHandler: websocket push of the feed and countdown

	pages := handlers.NewPageHandler(appFeed, ruleStore, ticker, cfg)

# Pages

	GET /            → Home (nomination list, ?q= filter, ?search= pre-population)
	GET /jury        → Jury (jury members and jury ranking)
	GET /rules       → Rules
	GET /leaderboard → Leaderboard (ranked by votes, then jury score)

?search= on / is moved into a one-shot cookie and the client is redirected
to the bare path, so the term is applied once and disappears from the URL.

# Nominations and Voting

	POST /nominations                    → Create (session, before the deadline)
	GET  /nominations?q=                 → List
	GET  /nominations/{id}               → Get
	POST /nominations/{id}/votes         → Vote (session, before the deadline, once per user)
	POST /nominations/{id}/jury-scores   → Score (session, jurors only, 0-10)

Votes and jury scores are written in a transaction together with the
nomination's totalVotes or juryScore.

# Live Updates

	GET /live?q=

Every connection gets its own feed subscription and a one second countdown.
The client may send {"query": "..."} to change the filter. Both the
subscription and the timer end when the socket closes.
*/
package handlers
