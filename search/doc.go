// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package search filters the nomination list as the user types.

	visible := search.Filter(state.Nominations, query)

Matching is a case-insensitive substring test against the nominee name and
category. The nominator name is searched for "other" nominations only. An
empty query returns the list unchanged.

Classify names the empty states a page shows:

	switch search.Classify(len(all), visible, query) {
	case search.OutcomeNoNominations: // "No nominations yet"
	case search.OutcomeNoResults:     // "No results found"
	}
*/
package search
