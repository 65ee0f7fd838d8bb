// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/fiesta-awwards/auth"
	"github.com/danielhkuo/fiesta-awwards/cliparse"
	"github.com/danielhkuo/fiesta-awwards/countdown"
	"github.com/danielhkuo/fiesta-awwards/docstore"
	"github.com/danielhkuo/fiesta-awwards/feed"
	"github.com/danielhkuo/fiesta-awwards/middleware"
	"github.com/danielhkuo/fiesta-awwards/models"
)

type VoteHandler struct {
	store *docstore.Client
	cfg   cliparse.Config
}

func NewVoteHandler(store *docstore.Client, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{store: store, cfg: cfg}
}

// memberID is the document id for one user's entry on one nomination
func memberID(nominationID, uid string) string {
	return nominationID + "_" + uid
}

// memberPrefix matches every memberID of one nomination
func memberPrefix(nominationID string) string {
	return nominationID + "_"
}

// Vote handles POST /nominations/{id}/votes.
// One vote per user per nomination; the vote and the new total commit together.
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	nominationID := r.PathValue("id")
	if nominationID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if !countdown.Active(h.cfg.Deadline, time.Now()) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Voting is closed")
		return
	}

	uid := session.User.UID
	vote := models.Vote{
		NominationID: nominationID,
		UID:          uid,
		CreatedAt:    time.Now().UTC(),
		IPHash:       auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
	}

	var total int
	err := h.store.RunTransaction(r.Context(), func(tx *docstore.Tx) error {
		doc, err := tx.Get(docstore.Nominations, nominationID)
		if err != nil {
			return err
		}
		n, ok := feed.FromDocument(doc)
		if !ok {
			return docstore.ErrNotFound
		}

		err = tx.Create(docstore.Votes, memberID(nominationID, uid), voteData(vote))
		if err != nil {
			return err
		}

		total = n.TotalVotes + 1
		return tx.Merge(docstore.Nominations, nominationID, map[string]any{"totalVotes": total})
	})

	switch {
	case errors.Is(err, docstore.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Nomination not found")
		return
	case errors.Is(err, docstore.ErrExists):
		middleware.ErrorResponse(w, http.StatusConflict, "Already voted for this nomination")
		return
	case err != nil:
		slog.Error("failed to record vote", "error", err, "nomination_id", nominationID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "nomination_id", nominationID, "uid", uid, "total_votes", total)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		NominationID: nominationID,
		TotalVotes:   total,
	})
}

func voteData(v models.Vote) map[string]any {
	return map[string]any{
		"nominationId": v.NominationID,
		"uid":          v.UID,
		"ipHash":       v.IPHash,
		"createdAt":    v.CreatedAt.Format(time.RFC3339Nano),
	}
}
