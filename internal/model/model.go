package model

import "time"

// Review statuses written by the external tracker app.
const (
	StatusLiked  = "Liked"
	StatusHated  = "Hated"
	StatusUnseen = "Unseen"
)

// EligibleStatuses are the statuses that participate in puzzle selection.
var EligibleStatuses = []string{StatusLiked, StatusHated}

// MovieStatus is one row of the externally-managed review table.
// This service only ever reads it.
type MovieStatus struct {
	MovieID   string    `json:"movieId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MovieDetails is the normalized view of a movie fetched from the
// metadata provider. Fetched per request, cached with a TTL, never
// persisted.
type MovieDetails struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Year           string   `json:"year"`
	PosterURL      string   `json:"posterUrl"`
	Plot           string   `json:"plot"`
	Genre          string   `json:"genre"`
	ContentRating  string   `json:"contentRating"`
	RuntimeMinutes int      `json:"runtimeMinutes"`
	Director       string   `json:"director"`
	CastOrdered    []string `json:"castOrdered"`
	AwardsSummary  string   `json:"awardsSummary"`
}

// PlotSegment is one piece of a transformed plot. Concatenating Text
// over a segment sequence reproduces the transformed plot exactly.
type PlotSegment struct {
	Text       string `json:"text"`
	IsRedacted bool   `json:"isRedacted"`
}

type LeaderboardEntry struct {
	ID          int64     `json:"-"`
	PlayerName  string    `json:"playerName"`
	HintsUsed   int       `json:"hintsUsed"`
	PuzzleDate  string    `json:"puzzleDate,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}
