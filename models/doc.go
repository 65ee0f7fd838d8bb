// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Nomination: a candidate for an award category, one of two variants
  - Nominee: name and category of the nominated person or thing
  - Nominator: who nominated a third party ("other" variant only)
  - User: profile copied from the identity provider on sign-in
  - Vote: one community vote per user per nomination
  - JuryScore: a juror's score for a nomination

# Nomination Variants

	TypePerson = "person"
	TypeOther  = "other"

Only TypeOther nominations carry Nominator and Recommendation.

# Request Types

  - CreateNominationRequest: type, nominee, nominator, recommendation
  - SignInRequest: identity provider profile and signature
  - JuryScoreRequest: score

# Response Types

  - CreateNominationResponse, SessionResponse, VoteResponse,
    JuryScoreResponse, NominationListResponse, LeaderboardEntry
  - ErrorResponse: error, message

# Routes

	RouteHome        = "/"
	RouteJury        = "/jury"
	RouteRules       = "/rules"
	RouteLeaderboard = "/leaderboard"
*/
package models
