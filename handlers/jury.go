// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/fiesta-awwards/docstore"
	"github.com/danielhkuo/fiesta-awwards/feed"
	"github.com/danielhkuo/fiesta-awwards/middleware"
	"github.com/danielhkuo/fiesta-awwards/models"
	"github.com/danielhkuo/fiesta-awwards/rules"
)

const (
	minJuryScore = 0
	maxJuryScore = 10
)

type JuryHandler struct {
	store *docstore.Client
	rules *rules.Store
}

func NewJuryHandler(store *docstore.Client, rs *rules.Store) *JuryHandler {
	return &JuryHandler{store: store, rules: rs}
}

// Score handles POST /nominations/{id}/jury-scores.
// A juror's score replaces their previous one; juryScore is the sum over jurors.
func (h *JuryHandler) Score(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	if !h.rules.Get().IsJuror(session.User.Email) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Jury members only")
		return
	}

	nominationID := r.PathValue("id")
	if nominationID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.JuryScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Score == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "score is required")
		return
	}
	if *req.Score < minJuryScore || *req.Score > maxJuryScore {
		middleware.ErrorResponse(w, http.StatusBadRequest, "score must be between 0 and 10")
		return
	}

	uid := session.User.UID
	score := models.JuryScore{
		NominationID: nominationID,
		UID:          uid,
		Score:        *req.Score,
		UpdatedAt:    time.Now().UTC(),
	}
	var sum int
	err := h.store.RunTransaction(r.Context(), func(tx *docstore.Tx) error {
		doc, err := tx.Get(docstore.Nominations, nominationID)
		if err != nil {
			return err
		}
		if _, ok := feed.FromDocument(doc); !ok {
			return docstore.ErrNotFound
		}

		err = tx.Set(docstore.JuryScores, memberID(nominationID, uid), juryScoreData(score))
		if err != nil {
			return err
		}

		scores, err := tx.Query(docstore.Query{
			Collection: docstore.JuryScores,
			IDPrefix:   memberPrefix(nominationID),
		})
		if err != nil {
			return err
		}
		sum = 0
		for _, s := range scores {
			if id, _ := s.Data["nominationId"].(string); id != nominationID {
				continue
			}
			if v, ok := s.Data["score"].(float64); ok {
				sum += int(v)
			}
		}

		return tx.Merge(docstore.Nominations, nominationID, map[string]any{"juryScore": sum})
	})

	switch {
	case errors.Is(err, docstore.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Nomination not found")
		return
	case err != nil:
		slog.Error("failed to record jury score", "error", err, "nomination_id", nominationID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record score")
		return
	}

	slog.Info("jury score recorded", "nomination_id", nominationID, "uid", uid, "jury_score", sum)

	middleware.JSONResponse(w, http.StatusOK, models.JuryScoreResponse{
		NominationID: nominationID,
		JuryScore:    sum,
	})
}

func juryScoreData(s models.JuryScore) map[string]any {
	return map[string]any{
		"nominationId": s.NominationID,
		"uid":          s.UID,
		"score":        s.Score,
		"updatedAt":    s.UpdatedAt.Format(time.RFC3339Nano),
	}
}
