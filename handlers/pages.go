// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/danielhkuo/fiesta-awwards/cliparse"
	"github.com/danielhkuo/fiesta-awwards/countdown"
	"github.com/danielhkuo/fiesta-awwards/feed"
	"github.com/danielhkuo/fiesta-awwards/middleware"
	"github.com/danielhkuo/fiesta-awwards/models"
	"github.com/danielhkuo/fiesta-awwards/rules"
	"github.com/danielhkuo/fiesta-awwards/views"
)

// SearchCookie carries a ?search= term across the redirect that strips it
const SearchCookie = "fiesta_search"

type PageHandler struct {
	feed   *feed.Feed
	rules  *rules.Store
	ticker *countdown.Ticker
	cfg    cliparse.Config
}

func NewPageHandler(f *feed.Feed, rs *rules.Store, ticker *countdown.Ticker, cfg cliparse.Config) *PageHandler {
	return &PageHandler{feed: f, rules: rs, ticker: ticker, cfg: cfg}
}

// PageResponse is a page shell plus the data of its route
type PageResponse struct {
	views.Page
	Leaderboard []models.LeaderboardEntry `json:"leaderboard,omitempty"`
	Jury        *JuryPanel                `json:"jury,omitempty"`
	Rules       *rules.Rules              `json:"rules,omitempty"`
}

type JuryPanel struct {
	Members  []rules.Juror             `json:"members"`
	Rankings []models.LeaderboardEntry `json:"rankings"`
}

// Home handles GET /.
// A ?search= term is stored in a one-shot cookie and the client is sent back
// to the bare path; the next request applies the term and clears the cookie.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	if term := r.URL.Query().Get("search"); term != "" {
		// The term is percent-decoded once more; "+" stays literal
		if decoded, err := url.PathUnescape(term); err == nil {
			term = decoded
		}
		http.SetCookie(w, &http.Cookie{
			Name:     SearchCookie,
			Value:    url.QueryEscape(term),
			Path:     models.RouteHome,
			MaxAge:   300,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
		return
	}

	query := r.URL.Query().Get("q")
	if c, err := r.Cookie(SearchCookie); err == nil {
		if query == "" {
			if v, err := url.QueryUnescape(c.Value); err == nil {
				query = v
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:   SearchCookie,
			Value:  "",
			Path:   models.RouteHome,
			MaxAge: -1,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, PageResponse{
		Page: h.page(r, models.RouteHome, query),
	})
}

// Jury handles GET /jury
func (h *PageHandler) Jury(w http.ResponseWriter, r *http.Request) {
	members := h.rules.Get().Jury
	if members == nil {
		members = []rules.Juror{}
	}

	middleware.JSONResponse(w, http.StatusOK, PageResponse{
		Page: h.page(r, models.RouteJury, ""),
		Jury: &JuryPanel{
			Members:  members,
			Rankings: RankByJury(h.feed.State().Nominations),
		},
	})
}

// Rules handles GET /rules
func (h *PageHandler) Rules(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, PageResponse{
		Page:  h.page(r, models.RouteRules, ""),
		Rules: h.rules.Get(),
	})
}

// Leaderboard handles GET /leaderboard
func (h *PageHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, PageResponse{
		Page:        h.page(r, models.RouteLeaderboard, ""),
		Leaderboard: RankByVotes(h.feed.State().Nominations),
	})
}

func (h *PageHandler) page(r *http.Request, route, query string) views.Page {
	in := views.Input{
		Route:     route,
		Now:       time.Now(),
		Deadline:  h.cfg.Deadline,
		Countdown: h.ticker.Current(),
		Feed:      h.feed.State(),
		Query:     query,
	}
	if s, ok := middleware.SessionFrom(r.Context()); ok {
		in.User = &s.User
	}
	return views.Build(in)
}
