// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/fiesta-awwards/countdown"
	"github.com/danielhkuo/fiesta-awwards/feed"
	"github.com/danielhkuo/fiesta-awwards/identity"
	"github.com/danielhkuo/fiesta-awwards/models"
	"github.com/danielhkuo/fiesta-awwards/rules"
	"github.com/danielhkuo/fiesta-awwards/testutil"
)

func setupRouter(t *testing.T) (*http.ServeMux, *identity.Client) {
	t.Helper()

	store, _ := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()

	f := feed.New(feed.StoreSource{Client: store})
	if err := f.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(f.Stop)

	idc := identity.New(cfg.IdentitySecret, cfg.SessionTTL, nil)

	return NewRouter(Deps{
		Store:    store,
		Feed:     f,
		Identity: idc,
		Rules:    rules.NewStore(rules.Default()),
		Ticker:   countdown.NewTicker(cfg.Deadline),
		Config:   cfg,
	}), idc
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := setupRouter(t)

	// 400, 401, 404 are all valid responses depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/jury"},
		{"GET", "/rules"},
		{"GET", "/leaderboard"},
		{"POST", "/nominations"},
		{"GET", "/nominations"},
		{"GET", "/nominations/test-id"},
		{"POST", "/nominations/test-id/votes"},
		{"POST", "/nominations/test-id/jury-scores"},
		{"POST", "/session"},
		{"GET", "/session"},
		{"DELETE", "/session"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	mux, idc := setupRouter(t)
	cfg := testutil.GetTestConfig()

	s, err := idc.SignIn(context.Background(), identity.Assertion{
		UID:       "uid-alice",
		Email:     "alice@example.com",
		Signature: testutil.SignInRequest(cfg, "uid-alice", "", "").Signature,
	})
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name           string
		method         string
		path           string
		headers        map[string]string
		expectedStatus int
	}{
		{"nominate signed out", "POST", "/nominations", nil, http.StatusUnauthorized},
		{"vote signed out", "POST", "/nominations/x/votes", nil, http.StatusUnauthorized},
		{"jury signed out", "POST", "/nominations/x/jury-scores", nil, http.StatusUnauthorized},
		{"session signed out", "GET", "/session", nil, http.StatusUnauthorized},
		{"session signed in", "GET", "/session", testutil.BearerHeader(s.Token), http.StatusOK},
		{"vote on missing nomination", "POST", "/nominations/x/votes", testutil.BearerHeader(s.Token), http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, tc.path, nil, tc.headers)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}
}

func TestPages(t *testing.T) {
	mux, _ := setupRouter(t)

	for _, route := range []string{models.RouteHome, models.RouteJury, models.RouteRules, models.RouteLeaderboard} {
		t.Run(route, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", route, nil))
			testutil.AssertStatus(t, w, http.StatusOK)
		})
	}

	t.Run("unknown page", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/nowhere", nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := setupRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/nominations"},
		{"DELETE", "/nominations/test-id"},
		{"DELETE", "/nominations/test-id/votes"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}
