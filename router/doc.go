// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the FiesTA Awwards API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{
		Store:    store,
		Feed:     appFeed,
		Identity: idc,
		Rules:    ruleStore,
		Ticker:   ticker,
		Config:   cfg,
	})

# Endpoints

Health:

	GET /health

Pages (session optional):

	GET /            - Nomination list (?q=, ?search=)
	GET /jury        - Jury members and jury ranking
	GET /rules       - Rules and categories
	GET /leaderboard - Ranking by votes

Nominations:

	POST /nominations                  - Nominate (session)
	GET  /nominations                  - List, filtered by ?q=
	GET  /nominations/{id}             - One nomination
	POST /nominations/{id}/votes       - Vote (session)
	POST /nominations/{id}/jury-scores - Jury score (session, jurors)

Sessions:

	POST   /session - Sign in with a signed assertion
	GET    /session - Current session
	DELETE /session - Sign out

Live:

	GET /live?q= - Websocket feed and countdown

Unknown GET paths answer 404 with the JSON error envelope.
*/
package router
