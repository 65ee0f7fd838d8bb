// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/danielhkuo/fiesta-awwards/auth"
	"github.com/danielhkuo/fiesta-awwards/identity"
)

type sessionKey struct{}

// SessionLookup resolves a bearer token to a session
type SessionLookup interface {
	Lookup(token string) (identity.Session, bool)
}

// RequireSession rejects requests without a live bearer session with 401
func RequireSession(sessions SessionLookup, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ParseBearer(r.Header.Get("Authorization"))
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
			return
		}

		s, ok := sessions.Lookup(token)
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Session expired or invalid")
			return
		}

		next(w, r.WithContext(WithSession(r.Context(), s)))
	}
}

// OptionalSession attaches the session when a valid bearer token is present
func OptionalSession(sessions SessionLookup, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, err := auth.ParseBearer(r.Header.Get("Authorization")); err == nil {
			if s, ok := sessions.Lookup(token); ok {
				r = r.WithContext(WithSession(r.Context(), s))
			}
		}
		next(w, r)
	}
}

func WithSession(ctx context.Context, s identity.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session attached by RequireSession or OptionalSession
func SessionFrom(ctx context.Context) (identity.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(identity.Session)
	return s, ok
}
