// Package globetrotter defines the core domain types and game rules:
// round selection, answer grading, and the challenge lifecycle.
package globetrotter

import "time"

// Destination is a single guessable place. Records are produced by an
// offline content pipeline and never mutated by gameplay. City doubles
// as the answer key for a round, so no two destinations in the pool may
// share a city name.
type Destination struct {
	ID        string
	City      string
	Country   string
	Clues     []string
	FunFacts  []string
	Trivia    []string
	CreatedAt time.Time
}

// Profile holds a player's running stats. Score and GamesPlayed are
// monotonically non-decreasing: a correct answer adds 1 to Score, every
// answer adds 1 to GamesPlayed.
type Profile struct {
	ID          string
	Username    string
	Score       int
	GamesPlayed int
	UsernameSet bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChallengeTTL is how long a challenge stays playable after creation.
// Expiry is fixed at creation and never renewed.
const ChallengeTTL = 24 * time.Hour

// Challenge is a shareable score-beating invitation. It is never
// updated after creation; expiry is enforced at read time only.
type Challenge struct {
	ID        string
	CreatorID string
	ShareCode string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge is no longer playable at now.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Progress is the result of comparing a challenger's running score
// against the creator's score.
type Progress struct {
	ThresholdScore int
	Beaten         bool
}

// EvaluateProgress compares a challenger's current score against the
// creator's. The threshold is the creator's live score at evaluation
// time, not a snapshot frozen at creation: if the creator keeps
// playing, the bar moves. Strictly greater wins.
func EvaluateProgress(creatorScore, challengerScore int) Progress {
	return Progress{
		ThresholdScore: creatorScore,
		Beaten:         challengerScore > creatorScore,
	}
}

// Grade reports whether a chosen city matches the target's city.
// Comparison is case-sensitive and exact; options are rendered from
// stored city names verbatim.
func Grade(chosen string, target Destination) bool {
	return chosen == target.City
}
