// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/fiesta-awwards/auth"
	"github.com/danielhkuo/fiesta-awwards/cliparse"
	"github.com/danielhkuo/fiesta-awwards/db"
	"github.com/danielhkuo/fiesta-awwards/docstore"
	"github.com/danielhkuo/fiesta-awwards/models"
)

// OpenDeadline is far enough ahead that nominations and voting are open in tests
var OpenDeadline = time.Date(2099, time.January, 15, 23, 59, 0, 0, time.Local)

// ClosedDeadline has already passed
var ClosedDeadline = time.Date(2025, time.January, 15, 23, 59, 0, 0, time.Local)

// SetupTestDB creates a fresh SQLite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a document store over a fresh test database.
// Both are closed when the test ends.
func SetupTestStore(t *testing.T) (*docstore.Client, *sql.DB) {
	t.Helper()

	conn := SetupTestDB(t)
	store := docstore.New(conn, db.DriverSQLite)
	t.Cleanup(func() {
		store.Close()
		conn.Close()
	})
	return store, conn
}

// GetTestConfig returns a standard test configuration with an open voting period
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "file:test.db",
		DatabaseType:   db.DriverSQLite,
		IdentitySecret: "test-identity-secret",
		IPHashSalt:     "test-ip-salt",
		Deadline:       OpenDeadline,
		RulesPath:      "rules.yaml",
		SessionTTL:     time.Hour,
	}
}

// CreateTestNomination stores a nomination document and returns its ID.
// nominator is only written for the "other" type.
func CreateTestNomination(t *testing.T, store *docstore.Client, nomType, name, category, nominator string) string {
	t.Helper()

	data := map[string]any{
		"type":       nomType,
		"nominee":    map[string]any{"name": name, "category": category},
		"totalVotes": 0,
		"juryScore":  0,
		"createdAt":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if nomType == models.TypeOther {
		data["nominator"] = map[string]any{"name": nominator}
		data["recommendation"] = "Because " + name + " deserves it"
	}

	id, err := store.Add(context.Background(), docstore.Nominations, data)
	if err != nil {
		t.Fatalf("Failed to create test nomination: %v", err)
	}

	return id
}

// SignInRequest builds a correctly signed sign-in request for uid
func SignInRequest(cfg cliparse.Config, uid, displayName, email string) models.SignInRequest {
	return models.SignInRequest{
		UID:         uid,
		DisplayName: displayName,
		Email:       email,
		Signature:   auth.SignAssertion(uid, cfg.IdentitySecret),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// BearerHeader returns the Authorization header for a session token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// WaitFor polls cond until it returns true or the timeout expires
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
