// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/fiesta-awwards/models"
)

// RankByVotes orders nominations for the leaderboard.
// Order: total votes desc, jury score desc, oldest first, id.
// Entries with equal votes and jury score share a rank (1, 1, 3).
func RankByVotes(list []models.Nomination) []models.LeaderboardEntry {
	sorted := append([]models.Nomination(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalVotes != b.TotalVotes {
			return a.TotalVotes > b.TotalVotes
		}
		if a.JuryScore != b.JuryScore {
			return a.JuryScore > b.JuryScore
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	return rank(sorted, func(a, b models.Nomination) bool {
		return a.TotalVotes == b.TotalVotes && a.JuryScore == b.JuryScore
	})
}

// RankByJury orders nominations by jury score, then votes
func RankByJury(list []models.Nomination) []models.LeaderboardEntry {
	sorted := append([]models.Nomination(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.JuryScore != b.JuryScore {
			return a.JuryScore > b.JuryScore
		}
		if a.TotalVotes != b.TotalVotes {
			return a.TotalVotes > b.TotalVotes
		}
		return a.ID < b.ID
	})

	return rank(sorted, func(a, b models.Nomination) bool {
		return a.JuryScore == b.JuryScore && a.TotalVotes == b.TotalVotes
	})
}

func rank(sorted []models.Nomination, tied func(a, b models.Nomination) bool) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, len(sorted))
	for i, n := range sorted {
		r := i + 1
		if i > 0 && tied(sorted[i-1], n) {
			r = entries[i-1].Rank
		}
		entries[i] = models.LeaderboardEntry{
			Rank:       r,
			Nomination: n,
			VotesLabel: VotesLabel(n.TotalVotes),
		}
	}
	return entries
}

// VotesLabel renders a vote count, e.g. "1 vote" or "1,204 votes"
func VotesLabel(n int) string {
	if n == 1 {
		return "1 vote"
	}
	return humanize.Comma(int64(n)) + " votes"
}
