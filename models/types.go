package models

import "time"

// Nomination type constants
const (
	TypePerson = "person"
	TypeOther  = "other"
)

// Route constants for the four pages
const (
	RouteHome        = "/"
	RouteJury        = "/jury"
	RouteRules       = "/rules"
	RouteLeaderboard = "/leaderboard"
)

// Domain types

type Nominee struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type Nominator struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Nomination is one of two variants. Nominator and Recommendation are only
// set when Type is TypeOther.
type Nomination struct {
	ID                string         `json:"id"`
	Type              string         `json:"type"`
	CreatedAt         time.Time      `json:"created_at"`
	TotalVotes        int            `json:"total_votes"`
	JuryScore         int            `json:"jury_score"`
	Nominee           Nominee        `json:"nominee"`
	Nominator         *Nominator     `json:"nominator,omitempty"`
	Recommendation    string         `json:"recommendation,omitempty"`
	CategoryQuestions map[string]any `json:"category_questions,omitempty"`
	SubmittedBy       string         `json:"-"`
}

// IsOther reports whether the nomination was made on behalf of a third party
func (n Nomination) IsOther() bool {
	return n.Type == TypeOther
}

type User struct {
	UID         string    `json:"uid"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

type Vote struct {
	NominationID string    `json:"nomination_id"`
	UID          string    `json:"uid"`
	CreatedAt    time.Time `json:"created_at"`
	IPHash       string    `json:"-"` // Never expose in JSON
}

type JuryScore struct {
	NominationID string    `json:"nomination_id"`
	UID          string    `json:"uid"`
	Score        int       `json:"score"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Request types

type CreateNominationRequest struct {
	Type              string         `json:"type"`
	Nominee           Nominee        `json:"nominee"`
	Nominator         *Nominator     `json:"nominator,omitempty"`
	Recommendation    string         `json:"recommendation,omitempty"`
	CategoryQuestions map[string]any `json:"category_questions,omitempty"`
}

type SignInRequest struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url"`
	Signature   string `json:"signature"`
}

type JuryScoreRequest struct {
	Score *int `json:"score"`
}

// Response types

type CreateNominationResponse struct {
	NominationID string `json:"nomination_id"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VoteResponse struct {
	NominationID string `json:"nomination_id"`
	TotalVotes   int    `json:"total_votes"`
}

type JuryScoreResponse struct {
	NominationID string `json:"nomination_id"`
	JuryScore    int    `json:"jury_score"`
}

type NominationListResponse struct {
	Nominations []Nomination `json:"nominations"`
	Total       int          `json:"total"`
	Query       string       `json:"query,omitempty"`
	Loaded      bool         `json:"loaded"`
}

type LeaderboardEntry struct {
	Rank       int        `json:"rank"` // 1-indexed, ties share a rank
	Nomination Nomination `json:"nomination"`
	VotesLabel string     `json:"votes_label"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
