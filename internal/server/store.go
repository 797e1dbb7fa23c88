package server

import (
	"context"
	"errors"

	"github.com/globetrotterhq/globetrotter/internal/globetrotter"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrConflict maps UNIQUE constraint violations (duplicate email,
	// username, or share code).
	ErrConflict = errors.New("conflict")
)

type userSession struct {
	UserID string
	Email  string
}

// ChallengeDetail is a challenge joined with its creator's profile.
// CreatorScore is the creator's live score at read time, not a value
// frozen when the challenge was created.
type ChallengeDetail struct {
	globetrotter.Challenge
	CreatorUsername string
	CreatorScore    int
}

// LeaderboardEntry is one row of the top-players list.
type LeaderboardEntry struct {
	Username    string `json:"username"`
	Score       int    `json:"score"`
	GamesPlayed int    `json:"gamesPlayed,omitempty"`
}

type Store interface {
	CreateUser(ctx context.Context, id, email, passwordHash string) error
	UserByEmail(ctx context.Context, email string) (userID, passwordHash string, err error)
	CreateSession(ctx context.Context, token, userID string) error
	DeleteSession(ctx context.Context, token string) error
	SessionUser(ctx context.Context, token string) (userSession, error)

	ListDestinations(ctx context.Context) ([]globetrotter.Destination, error)
	DestinationByID(ctx context.Context, id string) (globetrotter.Destination, error)
	CountDestinations(ctx context.Context) (int, error)
	InsertDestination(ctx context.Context, d globetrotter.Destination) error

	Profile(ctx context.Context, userID string) (globetrotter.Profile, error)
	SetUsername(ctx context.Context, userID, username string) error
	ApplyAnswer(ctx context.Context, userID string, correct bool) (globetrotter.Profile, error)

	CreateChallenge(ctx context.Context, c globetrotter.Challenge) error
	ChallengeByCode(ctx context.Context, code string) (ChallengeDetail, error)
	ListChallengesByCreator(ctx context.Context, creatorID string) ([]ChallengeDetail, error)

	TopProfiles(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
