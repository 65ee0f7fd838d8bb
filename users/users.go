// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package users stores user profiles in the "users" collection.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/fiesta-awwards/docstore"
	"github.com/danielhkuo/fiesta-awwards/models"
)

var ErrNotFound = errors.New("user not found")

type Service struct {
	store *docstore.Client
}

func New(store *docstore.Client) *Service {
	return &Service{store: store}
}

// CreateOrUpdate writes the profile to users/<uid>. The first createdAt is
// kept; everything else is overwritten.
func (s *Service) CreateOrUpdate(ctx context.Context, u models.User) (models.User, error) {
	if u.UID == "" {
		return models.User{}, fmt.Errorf("user uid is required")
	}

	err := s.store.RunTransaction(ctx, func(tx *docstore.Tx) error {
		existing, err := tx.Get(docstore.Users, u.UID)
		switch {
		case errors.Is(err, docstore.ErrNotFound):
		case err != nil:
			return err
		default:
			if created, ok := timeField(existing.Data, "createdAt"); ok {
				u.CreatedAt = created
			}
		}
		return tx.Set(docstore.Users, u.UID, toData(u))
	})
	if err != nil {
		return models.User{}, fmt.Errorf("failed to save user %s: %w", u.UID, err)
	}

	return u, nil
}

// Get returns the stored profile or ErrNotFound
func (s *Service) Get(ctx context.Context, uid string) (models.User, error) {
	doc, err := s.store.Get(ctx, docstore.Users, uid)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return fromData(uid, doc.Data), nil
}

func toData(u models.User) map[string]any {
	return map[string]any{
		"uid":         u.UID,
		"displayName": u.DisplayName,
		"email":       u.Email,
		"photoURL":    u.PhotoURL,
		"createdAt":   u.CreatedAt.UTC().Format(time.RFC3339Nano),
		"lastLoginAt": u.LastLoginAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromData(uid string, data map[string]any) models.User {
	u := models.User{UID: uid}
	u.DisplayName, _ = data["displayName"].(string)
	u.Email, _ = data["email"].(string)
	u.PhotoURL, _ = data["photoURL"].(string)
	u.CreatedAt, _ = timeField(data, "createdAt")
	u.LastLoginAt, _ = timeField(data, "lastLoginAt")
	return u
}

func timeField(data map[string]any, key string) (time.Time, bool) {
	s, ok := data[key].(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
