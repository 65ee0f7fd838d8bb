// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package search

import (
	"strings"

	"github.com/danielhkuo/fiesta-awwards/models"
)

// Outcome tells an empty result apart from an empty list
type Outcome string

const (
	OutcomeNoNominations Outcome = "no_nominations"
	OutcomeNoResults     Outcome = "no_results"
	OutcomeResults       Outcome = "results"
)

// Filter returns the nominations whose nominee name, nominee category or,
// for "other" nominations only, nominator name contains query, ignoring case.
// An empty query returns list unchanged.
func Filter(list []models.Nomination, query string) []models.Nomination {
	if query == "" {
		return list
	}

	q := strings.ToLower(query)
	filtered := make([]models.Nomination, 0, len(list))
	for _, n := range list {
		if Matches(n, q) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// Matches reports whether n matches an already lower-cased query
func Matches(n models.Nomination, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(n.Nominee.Name), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Nominee.Category), lowerQuery) {
		return true
	}
	return n.IsOther() && n.Nominator != nil &&
		strings.Contains(strings.ToLower(n.Nominator.Name), lowerQuery)
}

// Classify decides which message the list view shows
func Classify(total int, filtered []models.Nomination, query string) Outcome {
	if total == 0 {
		return OutcomeNoNominations
	}
	if query != "" && len(filtered) == 0 {
		return OutcomeNoResults
	}
	return OutcomeResults
}
