// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/fiesta-awwards/countdown"
	"github.com/danielhkuo/fiesta-awwards/feed"
	"github.com/danielhkuo/fiesta-awwards/models"
	"github.com/danielhkuo/fiesta-awwards/search"
)

const (
	ClosedBanner      = "Nominations and community voting are now closed. The jury panel is currently evaluating the nominations. Thank you for participating! 🎉"
	SearchPlaceholder = "Search by name, category or nominator..."
)

// Content states of the home route
const (
	ContentLoading   = "loading"
	ContentEmpty     = "empty"
	ContentNoResults = "no_results"
	ContentList      = "list"
)

// Input is everything a page depends on
type Input struct {
	Route     string
	Now       time.Time
	Deadline  time.Time
	Countdown string
	User      *models.User
	Feed      feed.State
	Query     string
}

type Page struct {
	Route             string     `json:"route"`
	Countdown         string     `json:"countdown"`
	Banner            string     `json:"banner,omitempty"`
	ShowSearch        bool       `json:"show_search"`
	SearchPlaceholder string     `json:"search_placeholder,omitempty"`
	Query             string     `json:"query,omitempty"`
	ShowRulesButton   bool       `json:"show_rules_button"`
	CanNominate       bool       `json:"can_nominate"`
	User              *UserBadge `json:"user,omitempty"`
	Content           *Content   `json:"content,omitempty"`
}

// UserBadge is the signed-in user in the header
type UserBadge struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Initials    string `json:"initials"`
}

// Content is the body of the home route
type Content struct {
	State       string `json:"state"`
	Title       string `json:"title,omitempty"`
	Text        string `json:"text,omitempty"`
	ShowSignIn  bool   `json:"show_sign_in,omitempty"`
	Nominations []Card `json:"nominations,omitempty"`
}

type Card struct {
	models.Nomination
	Age string `json:"age"`
}

// Build assembles the page shell for route and, on the home route, its content
func Build(in Input) Page {
	expired := !countdown.Active(in.Deadline, in.Now)

	p := Page{
		Route:           in.Route,
		Countdown:       in.Countdown,
		ShowRulesButton: in.Route != models.RouteRules,
		CanNominate:     in.User != nil && !expired,
	}

	if expired && in.Route == models.RouteHome {
		p.Banner = ClosedBanner
	}

	if in.User != nil {
		p.User = &UserBadge{
			DisplayName: in.User.DisplayName,
			PhotoURL:    in.User.PhotoURL,
			Initials:    Initials(in.User.DisplayName),
		}
	}

	if in.Route == models.RouteHome {
		p.ShowSearch = true
		p.SearchPlaceholder = SearchPlaceholder
		p.Query = in.Query
		p.Content = homeContent(in)
	}

	return p
}

func homeContent(in Input) *Content {
	if in.Feed.Loading {
		return &Content{State: ContentLoading, Title: "Loading nominations..."}
	}

	all := in.Feed.Nominations
	filtered := search.Filter(all, in.Query)

	switch search.Classify(len(all), filtered, in.Query) {
	case search.OutcomeNoNominations:
		return &Content{
			State:      ContentEmpty,
			Title:      "No nominations yet",
			Text:       "Be the first one to kick things off!",
			ShowSignIn: in.User == nil,
		}
	case search.OutcomeNoResults:
		return &Content{
			State: ContentNoResults,
			Title: "No results found",
			Text:  "Try adjusting your search terms",
		}
	}

	cards := make([]Card, len(filtered))
	for i, n := range filtered {
		cards[i] = Card{Nomination: n, Age: Age(n.CreatedAt, in.Now)}
	}
	return &Content{State: ContentList, Nominations: cards}
}

// Age renders how long ago t was, e.g. "3 hours ago"
func Age(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Initials takes the first letter of each word of name, upper-cased.
// An empty name yields "?".
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Split(name, " ") {
		r, _ := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}
