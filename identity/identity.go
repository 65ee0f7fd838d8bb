// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/fiesta-awwards/auth"
	"github.com/danielhkuo/fiesta-awwards/models"
)

var (
	ErrInvalidAssertion = errors.New("invalid identity assertion")
	ErrUnknownSession   = errors.New("unknown or expired session")
)

// Assertion is the profile handed over by the identity provider, signed with
// the shared identity secret.
type Assertion struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
	Signature   string
}

// Session is a signed-in user
type Session struct {
	Token     string
	User      models.User
	ExpiresAt time.Time
}

// ProfileWriter persists the user profile on every sign-in
type ProfileWriter interface {
	CreateOrUpdate(ctx context.Context, u models.User) (models.User, error)
}

// Option configures a Client
type Option func(*Client)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client validates assertions and keeps sessions in memory
type Client struct {
	secret   string
	ttl      time.Duration
	profiles ProfileWriter
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]Session
}

// New creates the identity client. profiles may be nil.
func New(secret string, ttl time.Duration, profiles ProfileWriter, opts ...Option) *Client {
	c := &Client{
		secret:   secret,
		ttl:      ttl,
		profiles: profiles,
		now:      time.Now,
		sessions: make(map[string]Session),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignIn validates the assertion and opens a session. A failure to save the
// profile is logged and does not fail the sign-in.
func (c *Client) SignIn(ctx context.Context, a Assertion) (Session, error) {
	if err := auth.ValidateAssertion(a.UID, a.Signature, c.secret); err != nil {
		slog.Error("error signing in", "uid", a.UID, "error", err)
		return Session{}, ErrInvalidAssertion
	}

	now := c.now()
	user := models.User{
		UID:         a.UID,
		DisplayName: a.DisplayName,
		Email:       a.Email,
		PhotoURL:    a.PhotoURL,
		CreatedAt:   now,
		LastLoginAt: now,
	}

	if c.profiles != nil {
		saved, err := c.profiles.CreateOrUpdate(ctx, user)
		if err != nil {
			slog.Error("error saving user data", "uid", a.UID, "error", err)
		} else {
			user = saved
		}
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return Session{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	s := Session{Token: token, User: user, ExpiresAt: now.Add(c.ttl)}

	c.mu.Lock()
	c.sessions[token] = s
	c.mu.Unlock()

	slog.Info("user signed in", "uid", user.UID)
	return s, nil
}

// SignOut ends the session
func (c *Client) SignOut(ctx context.Context, token string) error {
	c.mu.Lock()
	s, ok := c.sessions[token]
	delete(c.sessions, token)
	c.mu.Unlock()

	if !ok || c.expired(s) {
		slog.Error("error signing out", "error", ErrUnknownSession)
		return ErrUnknownSession
	}

	slog.Info("user signed out", "uid", s.User.UID)
	return nil
}

// Lookup returns the live session for token
func (c *Client) Lookup(token string) (Session, bool) {
	c.mu.RLock()
	s, ok := c.sessions[token]
	c.mu.RUnlock()

	if !ok || c.expired(s) {
		return Session{}, false
	}
	return s, true
}

// Len returns the number of stored sessions, expired ones included until swept
func (c *Client) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

// Sweep drops expired sessions and returns how many were removed
func (c *Client) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for token, s := range c.sessions {
		if c.expired(s) {
			delete(c.sessions, token)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done
func (c *Client) RunJanitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				slog.Debug("expired sessions removed", "count", n)
			}
		}
	}
}

func (c *Client) expired(s Session) bool {
	return !c.now().Before(s.ExpiresAt)
}
