// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/fiesta-awwards/cliparse"
	"github.com/danielhkuo/fiesta-awwards/countdown"
	"github.com/danielhkuo/fiesta-awwards/docstore"
	"github.com/danielhkuo/fiesta-awwards/feed"
	"github.com/danielhkuo/fiesta-awwards/handlers"
	"github.com/danielhkuo/fiesta-awwards/identity"
	"github.com/danielhkuo/fiesta-awwards/middleware"
	"github.com/danielhkuo/fiesta-awwards/rules"
)

// Deps are the long-lived clients the handlers share
type Deps struct {
	Store    *docstore.Client
	Feed     *feed.Feed
	Identity *identity.Client
	Rules    *rules.Store
	Ticker   *countdown.Ticker
	Config   cliparse.Config
}

func NewRouter(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(d.Feed, d.Rules, d.Ticker, d.Config)
	nominationHandler := handlers.NewNominationHandler(d.Store, d.Feed, d.Rules, d.Config)
	voteHandler := handlers.NewVoteHandler(d.Store, d.Config)
	juryHandler := handlers.NewJuryHandler(d.Store, d.Rules)
	sessionHandler := handlers.NewSessionHandler(d.Identity)
	liveHandler := handlers.NewLiveHandler(feed.StoreSource{Client: d.Store}, d.Config)

	optional := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.OptionalSession(d.Identity, h))
	}
	required := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(d.Identity, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Pages
	mux.HandleFunc("GET /{$}", optional(pageHandler.Home))
	mux.HandleFunc("GET /jury", optional(pageHandler.Jury))
	mux.HandleFunc("GET /rules", optional(pageHandler.Rules))
	mux.HandleFunc("GET /leaderboard", optional(pageHandler.Leaderboard))

	// Nominations
	mux.HandleFunc("POST /nominations", required(nominationHandler.Create))
	mux.HandleFunc("GET /nominations", middleware.WithLogging(nominationHandler.List))
	mux.HandleFunc("GET /nominations/{id}", middleware.WithLogging(nominationHandler.Get))

	// Voting
	mux.HandleFunc("POST /nominations/{id}/votes", required(voteHandler.Vote))
	mux.HandleFunc("POST /nominations/{id}/jury-scores", required(juryHandler.Score))

	// Sessions
	mux.HandleFunc("POST /session", middleware.WithLogging(sessionHandler.SignIn))
	mux.HandleFunc("GET /session", required(sessionHandler.Current))
	mux.HandleFunc("DELETE /session", required(sessionHandler.SignOut))

	// Live updates
	mux.HandleFunc("GET /live", middleware.WithLogging(liveHandler.Live))

	// Anything else
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Page not found")
	})

	return mux
}
