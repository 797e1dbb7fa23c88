package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/globetrotterhq/globetrotter/internal/globetrotter"
)

// SQLiteStore implements Store on a single libSQL database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// sqliteTime is the layout written by strftime('%Y-%m-%dT%H:%M:%fZ').
const sqliteTime = "2006-01-02T15:04:05.999Z"

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTime)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}

func (s *SQLiteStore) CreateUser(ctx context.Context, id, email, passwordHash string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)
	`, id, email, passwordHash)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}

	// A profile exists for every user from the moment they sign up.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO profiles (id) VALUES (?)
	`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) UserByEmail(ctx context.Context, email string) (string, string, error) {
	var userID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM users WHERE email = ?
	`, email).Scan(&userID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return userID, passwordHash, err
}

func (s *SQLiteStore) CreateSession(ctx context.Context, token, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id) VALUES (?, ?)
	`, token, userID)
	return err
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, token)
	return err
}

func (s *SQLiteStore) SessionUser(ctx context.Context, token string) (userSession, error) {
	var sess userSession
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.email
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ?
	`, token).Scan(&sess.UserID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return userSession{}, ErrNotFound
	}
	return sess, err
}

func scanDestination(row interface {
	Scan(dest ...any) error
}) (globetrotter.Destination, error) {
	var d globetrotter.Destination
	var clues, funFacts, trivia, createdAt string
	if err := row.Scan(&d.ID, &d.City, &d.Country, &clues, &funFacts, &trivia, &createdAt); err != nil {
		return d, err
	}
	json.Unmarshal([]byte(clues), &d.Clues)
	json.Unmarshal([]byte(funFacts), &d.FunFacts)
	json.Unmarshal([]byte(trivia), &d.Trivia)
	d.CreatedAt = parseTime(createdAt)
	return d, nil
}

func (s *SQLiteStore) ListDestinations(ctx context.Context) ([]globetrotter.Destination, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, city, country, clues, fun_facts, trivia, created_at
		FROM destinations
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var destinations []globetrotter.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

func (s *SQLiteStore) DestinationByID(ctx context.Context, id string) (globetrotter.Destination, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, city, country, clues, fun_facts, trivia, created_at
		FROM destinations WHERE id = ?
	`, id)
	d, err := scanDestination(row)
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrNotFound
	}
	return d, err
}

func (s *SQLiteStore) CountDestinations(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM destinations`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) InsertDestination(ctx context.Context, d globetrotter.Destination) error {
	clues, _ := json.Marshal(d.Clues)
	funFacts, _ := json.Marshal(d.FunFacts)
	trivia, _ := json.Marshal(d.Trivia)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO destinations (id, city, country, clues, fun_facts, trivia)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.ID, d.City, d.Country, string(clues), string(funFacts), string(trivia))
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func scanProfile(row interface {
	Scan(dest ...any) error
}) (globetrotter.Profile, error) {
	var p globetrotter.Profile
	var username sql.NullString
	var usernameSet int
	var createdAt, updatedAt string
	if err := row.Scan(&p.ID, &username, &p.Score, &p.GamesPlayed, &usernameSet, &createdAt, &updatedAt); err != nil {
		return p, err
	}
	p.Username = username.String
	p.UsernameSet = usernameSet == 1
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

func (s *SQLiteStore) Profile(ctx context.Context, userID string) (globetrotter.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, score, games_played, username_set, created_at, updated_at
		FROM profiles WHERE id = ?
	`, userID)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func (s *SQLiteStore) SetUsername(ctx context.Context, userID, username string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE profiles
		SET username = ?, username_set = 1,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?
	`, username, userID)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyAnswer bumps the counters as a single atomic increment at the
// storage layer, so two concurrent sessions for the same user cannot
// lose an update.
func (s *SQLiteStore) ApplyAnswer(ctx context.Context, userID string, correct bool) (globetrotter.Profile, error) {
	delta := 0
	if correct {
		delta = 1
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE profiles
		SET score = score + ?, games_played = games_played + 1,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?
		RETURNING id, username, score, games_played, username_set, created_at, updated_at
	`, delta, userID)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func (s *SQLiteStore) CreateChallenge(ctx context.Context, c globetrotter.Challenge) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO challenges (id, creator_id, share_code, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.CreatorID, c.ShareCode, formatTime(c.CreatedAt), formatTime(c.ExpiresAt))
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func scanChallengeDetail(row interface {
	Scan(dest ...any) error
}) (ChallengeDetail, error) {
	var d ChallengeDetail
	var username sql.NullString
	var createdAt, expiresAt string
	err := row.Scan(&d.ID, &d.CreatorID, &d.ShareCode, &createdAt, &expiresAt, &username, &d.CreatorScore)
	if err != nil {
		return d, err
	}
	d.CreatorUsername = username.String
	d.CreatedAt = parseTime(createdAt)
	d.ExpiresAt = parseTime(expiresAt)
	return d, nil
}

func (s *SQLiteStore) ChallengeByCode(ctx context.Context, code string) (ChallengeDetail, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.creator_id, c.share_code, c.created_at, c.expires_at,
			p.username, p.score
		FROM challenges c
		JOIN profiles p ON p.id = c.creator_id
		WHERE c.share_code = ?
	`, code)
	d, err := scanChallengeDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrNotFound
	}
	return d, err
}

func (s *SQLiteStore) ListChallengesByCreator(ctx context.Context, creatorID string) ([]ChallengeDetail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.creator_id, c.share_code, c.created_at, c.expires_at,
			p.username, p.score
		FROM challenges c
		JOIN profiles p ON p.id = c.creator_id
		WHERE c.creator_id = ?
		ORDER BY c.created_at DESC
	`, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []ChallengeDetail
	for rows.Next() {
		d, err := scanChallengeDetail(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, d)
	}
	return challenges, rows.Err()
}

func (s *SQLiteStore) TopProfiles(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, score, games_played
		FROM profiles
		WHERE username_set = 1
		ORDER BY score DESC, games_played ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Score, &e.GamesPlayed); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
