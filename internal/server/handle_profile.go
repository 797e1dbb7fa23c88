package server

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// ProfileResponse is the response for GET /api/profile.
type ProfileResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username,omitempty"`
	Score       int    `json:"score"`
	GamesPlayed int    `json:"gamesPlayed"`
	UsernameSet bool   `json:"usernameSet"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// SetUsernameRequest is the request body for PUT /api/profile/username.
type SetUsernameRequest struct {
	Username string `json:"username"`
}

func handleProfile(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		p, err := store.Profile(r.Context(), sess.UserID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, ProfileResponse{
			ID:          p.ID,
			Username:    p.Username,
			Score:       p.Score,
			GamesPlayed: p.GamesPlayed,
			UsernameSet: p.UsernameSet,
			CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
}

func handleSetUsername(store Store, lb *Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req SetUsernameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || utf8.RuneCountInString(req.Username) > 30 {
			writeError(w, http.StatusBadRequest, "username must be between 1 and 30 characters")
			return
		}

		// Drop the old leaderboard entry before renaming so the cache
		// doesn't keep a stale member around.
		if old, err := store.Profile(r.Context(), sess.UserID); err == nil && old.UsernameSet {
			lb.Remove(r.Context(), old.Username)
		}

		err := store.SetUsername(r.Context(), sess.UserID, req.Username)
		if errors.Is(err, ErrConflict) {
			writeError(w, http.StatusConflict, "username already taken")
			return
		}
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		p, err := store.Profile(r.Context(), sess.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		lb.Record(r.Context(), p.Username, p.Score)

		writeJSON(w, http.StatusOK, ProfileResponse{
			ID:          p.ID,
			Username:    p.Username,
			Score:       p.Score,
			GamesPlayed: p.GamesPlayed,
			UsernameSet: p.UsernameSet,
			CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
}
