// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/danielhkuo/fiesta-awwards/countdown"
	"github.com/danielhkuo/fiesta-awwards/models"
	"github.com/danielhkuo/fiesta-awwards/testutil"
	"github.com/danielhkuo/fiesta-awwards/views"
)

func newPageHandler(app *testApp) *PageHandler {
	return NewPageHandler(app.feed, app.rules, countdown.NewTicker(app.cfg.Deadline), app.cfg)
}

func seedNominations(t *testing.T, app *testApp) {
	t.Helper()
	testutil.CreateTestNomination(t, app.store, models.TypePerson, "Alice", "Best TA", "")
	testutil.CreateTestNomination(t, app.store, models.TypeOther, "Bob", "Best Mentor", "Carol")
	app.waitForNominations(t, 2)
}

func TestHome(t *testing.T) {
	app := setupApp(t, testutil.GetTestConfig())
	handler := newPageHandler(app)
	seedNominations(t, app)
	token := app.signIn(t, "uid-alice", "Alice Smith", "alice@example.com")

	tests := []struct {
		name        string
		path        string
		token       string
		wantState   string
		wantCount   int
		wantNominat bool
	}{
		{"signed out", "/", "", views.ContentList, 2, false},
		{"signed in", "/", token, views.ContentList, 2, true},
		{"query", "/?q=carol", "", views.ContentList, 1, false},
		{"no results", "/?q=zzz", "", views.ContentNoResults, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var headers map[string]string
			if tt.token != "" {
				headers = testutil.BearerHeader(tt.token)
			}
			w := app.serveOptional(handler.Home, testutil.MakeRequest("GET", tt.path, nil, headers))
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp PageResponse
			testutil.AssertJSON(t, w, &resp)

			if resp.Route != models.RouteHome || !resp.ShowSearch || !resp.ShowRulesButton {
				t.Errorf("Unexpected page shell %+v", resp.Page)
			}
			if resp.Banner != "" {
				t.Errorf("Expected no banner while open, got %q", resp.Banner)
			}
			if resp.CanNominate != tt.wantNominat {
				t.Errorf("Expected can_nominate %v, got %v", tt.wantNominat, resp.CanNominate)
			}
			if resp.Content == nil || resp.Content.State != tt.wantState {
				t.Fatalf("Expected content state %q, got %+v", tt.wantState, resp.Content)
			}
			if len(resp.Content.Nominations) != tt.wantCount {
				t.Errorf("Expected %d nominations, got %d", tt.wantCount, len(resp.Content.Nominations))
			}
		})
	}
}

func TestHome_SearchParameterIsConsumedOnce(t *testing.T) {
	app := setupApp(t, testutil.GetTestConfig())
	handler := newPageHandler(app)
	seedNominations(t, app)

	// ?search= is moved into a cookie and stripped from the URL
	w := app.serveOptional(handler.Home, testutil.MakeRequest("GET", "/?search=Best%2520Mentor", nil, nil))
	testutil.AssertStatus(t, w, http.StatusFound)
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SearchCookie {
		t.Fatalf("Expected search cookie, got %v", cookies)
	}

	// The next request applies the term and clears the cookie
	req := testutil.MakeRequest("GET", "/", nil, nil)
	req.AddCookie(cookies[0])
	w = app.serveOptional(handler.Home, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp PageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Query != "Best Mentor" {
		t.Errorf("Expected query 'Best Mentor', got %q", resp.Query)
	}
	if len(resp.Content.Nominations) != 1 || resp.Content.Nominations[0].Nominee.Name != "Bob" {
		t.Errorf("Expected only Bob, got %+v", resp.Content.Nominations)
	}
	cleared := w.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Errorf("Expected search cookie to be cleared, got %v", cleared)
	}

	// Without the cookie the full list is back
	w = app.serveOptional(handler.Home, testutil.MakeRequest("GET", "/", nil, nil))
	resp = PageResponse{}
	testutil.AssertJSON(t, w, &resp)
	if resp.Query != "" || len(resp.Content.Nominations) != 2 {
		t.Errorf("Expected full list, got query %q and %d nominations", resp.Query, len(resp.Content.Nominations))
	}

	// "+" survives the second decode
	for _, tc := range []struct {
		path string
		want string
	}{
		{"/?search=C%2B%2B", "C++"},
		{"/?search=C%252B%252B", "C++"},
		{"/?search=Best%20Mentor", "Best Mentor"},
	} {
		w = app.serveOptional(handler.Home, testutil.MakeRequest("GET", tc.path, nil, nil))
		testutil.AssertStatus(t, w, http.StatusFound)
		cookies = w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("Expected search cookie for %s, got %v", tc.path, cookies)
		}

		req = testutil.MakeRequest("GET", "/", nil, nil)
		req.AddCookie(cookies[0])
		w = app.serveOptional(handler.Home, req)
		resp = PageResponse{}
		testutil.AssertJSON(t, w, &resp)
		if resp.Query != tc.want {
			t.Errorf("%s: expected query %q, got %q", tc.path, tc.want, resp.Query)
		}
	}
}

func TestHome_Closed(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.Deadline = testutil.ClosedDeadline
	app := setupApp(t, cfg)
	handler := newPageHandler(app)
	app.waitForNominations(t, 0)
	token := app.signIn(t, "uid-alice", "Alice", "alice@example.com")

	w := app.serveOptional(handler.Home, testutil.MakeRequest("GET", "/", nil, testutil.BearerHeader(token)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp PageResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Banner != views.ClosedBanner {
		t.Errorf("Expected closed banner, got %q", resp.Banner)
	}
	if resp.CanNominate {
		t.Error("Expected nominating to be disabled after the deadline")
	}
	if resp.Content.State != views.ContentEmpty {
		t.Errorf("Expected empty state, got %q", resp.Content.State)
	}
}

func TestOtherPages(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.Deadline = testutil.ClosedDeadline
	app := setupApp(t, cfg)
	handler := newPageHandler(app)
	seedNominations(t, app)

	tests := []struct {
		name      string
		route     string
		handler   http.HandlerFunc
		wantRules bool
		check     func(t *testing.T, resp PageResponse, raw string)
	}{
		{
			name:      "leaderboard",
			route:     models.RouteLeaderboard,
			handler:   handler.Leaderboard,
			wantRules: true,
			check: func(t *testing.T, resp PageResponse, raw string) {
				if len(resp.Leaderboard) != 2 {
					t.Fatalf("Expected 2 entries, got %d", len(resp.Leaderboard))
				}
				if resp.Leaderboard[0].VotesLabel != "0 votes" {
					t.Errorf("Unexpected votes label %q", resp.Leaderboard[0].VotesLabel)
				}
			},
		},
		{
			name:      "jury",
			route:     models.RouteJury,
			handler:   handler.Jury,
			wantRules: true,
			check: func(t *testing.T, resp PageResponse, raw string) {
				if resp.Jury == nil || len(resp.Jury.Members) != 2 || len(resp.Jury.Rankings) != 2 {
					t.Fatalf("Unexpected jury panel %+v", resp.Jury)
				}
				if strings.Contains(raw, "judge@example.com") {
					t.Error("Juror emails must not be exposed")
				}
			},
		},
		{
			name:      "rules",
			route:     models.RouteRules,
			handler:   handler.Rules,
			wantRules: false,
			check: func(t *testing.T, resp PageResponse, raw string) {
				if resp.Rules == nil || len(resp.Rules.Categories) == 0 {
					t.Errorf("Expected rules with categories, got %+v", resp.Rules)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.serveOptional(tt.handler, testutil.MakeRequest("GET", tt.route, nil, nil))
			testutil.AssertStatus(t, w, http.StatusOK)

			raw := w.Body.String()
			var resp PageResponse
			if err := json.Unmarshal([]byte(raw), &resp); err != nil {
				t.Fatal(err)
			}

			if resp.Route != tt.route {
				t.Errorf("Expected route %s, got %s", tt.route, resp.Route)
			}
			if resp.Banner != "" || resp.ShowSearch || resp.Content != nil {
				t.Errorf("Only the home route has a banner, search and list, got %+v", resp.Page)
			}
			if resp.ShowRulesButton != tt.wantRules {
				t.Errorf("Expected show_rules_button %v, got %v", tt.wantRules, resp.ShowRulesButton)
			}
			tt.check(t, resp, raw)
		})
	}
}

