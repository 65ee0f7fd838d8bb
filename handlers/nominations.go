// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/fiesta-awwards/cliparse"
	"github.com/danielhkuo/fiesta-awwards/countdown"
	"github.com/danielhkuo/fiesta-awwards/docstore"
	"github.com/danielhkuo/fiesta-awwards/feed"
	"github.com/danielhkuo/fiesta-awwards/middleware"
	"github.com/danielhkuo/fiesta-awwards/models"
	"github.com/danielhkuo/fiesta-awwards/rules"
	"github.com/danielhkuo/fiesta-awwards/search"
)

const (
	maxNameLength           = 100
	maxRecommendationLength = 2000
)

type NominationHandler struct {
	store *docstore.Client
	feed  *feed.Feed
	rules *rules.Store
	cfg   cliparse.Config
}

func NewNominationHandler(store *docstore.Client, f *feed.Feed, rs *rules.Store, cfg cliparse.Config) *NominationHandler {
	return &NominationHandler{store: store, feed: f, rules: rs, cfg: cfg}
}

// Create handles POST /nominations
func (h *NominationHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	if !countdown.Active(h.cfg.Deadline, time.Now()) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Nominations are closed")
		return
	}

	var req models.CreateNominationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Type == "" {
		req.Type = models.TypePerson
	}
	if req.Type != models.TypePerson && req.Type != models.TypeOther {
		middleware.ErrorResponse(w, http.StatusBadRequest, "type must be 'person' or 'other'")
		return
	}

	req.Nominee.Name = strings.TrimSpace(req.Nominee.Name)
	req.Nominee.Category = strings.TrimSpace(req.Nominee.Category)
	if req.Nominee.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nominee name is required")
		return
	}
	if len(req.Nominee.Name) > maxNameLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nominee name is too long")
		return
	}
	if !h.rules.Get().HasCategory(req.Nominee.Category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown category")
		return
	}

	data := map[string]any{
		"type": req.Type,
		"nominee": map[string]any{
			"name":     req.Nominee.Name,
			"category": req.Nominee.Category,
		},
		"totalVotes":  0,
		"juryScore":   0,
		"createdAt":   time.Now().UTC().Format(time.RFC3339Nano),
		"submittedBy": session.User.UID,
	}
	if len(req.CategoryQuestions) > 0 {
		data["categoryQuestions"] = req.CategoryQuestions
	}

	if req.Type == models.TypeOther {
		nominator := models.Nominator{Name: session.User.DisplayName, Email: session.User.Email}
		if req.Nominator != nil && strings.TrimSpace(req.Nominator.Name) != "" {
			nominator.Name = strings.TrimSpace(req.Nominator.Name)
		}
		if nominator.Name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "nominator name is required")
			return
		}
		if len(req.Recommendation) > maxRecommendationLength {
			middleware.ErrorResponse(w, http.StatusBadRequest, "recommendation is too long")
			return
		}
		data["nominator"] = map[string]any{"name": nominator.Name, "email": nominator.Email}
		data["recommendation"] = strings.TrimSpace(req.Recommendation)
	}

	id, err := h.store.Add(r.Context(), docstore.Nominations, data)
	if err != nil {
		slog.Error("failed to create nomination", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create nomination")
		return
	}

	slog.Info("nomination created", "nomination_id", id, "type", req.Type, "uid", session.User.UID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateNominationResponse{
		NominationID: id,
	})
}

// List handles GET /nominations?q=
func (h *NominationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	state := h.feed.State()

	middleware.JSONResponse(w, http.StatusOK, models.NominationListResponse{
		Nominations: search.Filter(state.Nominations, query),
		Total:       len(state.Nominations),
		Query:       query,
		Loaded:      state.Loaded,
	})
}

// Get handles GET /nominations/{id}
func (h *NominationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	doc, err := h.store.Get(r.Context(), docstore.Nominations, id)
	if errors.Is(err, docstore.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Nomination not found")
		return
	}
	if err != nil {
		slog.Error("failed to get nomination", "error", err, "nomination_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	n, ok := feed.FromDocument(doc)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Nomination not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, n)
}
