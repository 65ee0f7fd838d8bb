// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/fiesta-awwards/auth"
	"github.com/danielhkuo/fiesta-awwards/identity"
	"github.com/danielhkuo/fiesta-awwards/middleware"
	"github.com/danielhkuo/fiesta-awwards/models"
)

type SessionHandler struct {
	identity *identity.Client
}

func NewSessionHandler(idc *identity.Client) *SessionHandler {
	return &SessionHandler{identity: idc}
}

// SignIn handles POST /session
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s, err := h.identity.SignIn(r.Context(), identity.Assertion{
		UID:         req.UID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		PhotoURL:    req.PhotoURL,
		Signature:   req.Signature,
	})
	if errors.Is(err, identity.ErrInvalidAssertion) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign-in failed")
		return
	}
	if err != nil {
		slog.Error("failed to sign in", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Sign-in failed")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, sessionResponse(s))
}

// SignOut handles DELETE /session. Failures are logged and never surface.
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token, err := auth.ParseBearer(r.Header.Get("Authorization"))
	if err == nil {
		err = h.identity.SignOut(r.Context(), token)
	}
	if err != nil {
		slog.Error("error signing out", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Current handles GET /session
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sessionResponse(s))
}

func sessionResponse(s identity.Session) models.SessionResponse {
	return models.SessionResponse{
		Token:     s.Token,
		User:      s.User,
		ExpiresAt: s.ExpiresAt,
	}
}
