// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSignature = errors.New("invalid assertion signature")
	ErrInvalidToken     = errors.New("invalid token format")
)

// SignAssertion signs a user id the way the identity provider does.
// Deterministic for a given uid and secret.
func SignAssertion(uid, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(uid))
	sum := h.Sum(nil)
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAssertion checks the identity provider's signature over uid
func ValidateAssertion(uid, signature, secret string) error {
	if uid == "" {
		return ErrInvalidSignature
	}
	expected := SignAssertion(uid, secret)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}

// GenerateSessionToken creates a random secure session token
func GenerateSessionToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ParseBearer extracts the token from an "Authorization: Bearer <token>" header value
func ParseBearer(header string) (string, error) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrInvalidToken
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}

// HashIP returns a salted one-way hash of a voter's IP address
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// 16 hex chars
	return hex.EncodeToString(sum[:8])
}
