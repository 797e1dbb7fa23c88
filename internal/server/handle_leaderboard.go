package server

import (
	"log/slog"
	"net/http"
)

const leaderboardSize = 10

// LeaderboardResponse is the response for GET /api/leaderboard.
type LeaderboardResponse struct {
	Players []LeaderboardEntry `json:"players"`
}

func handleLeaderboard(logger *slog.Logger, lb *Leaderboard, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := lb.Top(r.Context(), leaderboardSize)
		if err != nil || len(entries) == 0 {
			if err != nil {
				logger.Warn("leaderboard cache unavailable, falling back to sqlite", "error", err)
			}
			entries, err = store.TopProfiles(r.Context(), leaderboardSize)
			if err != nil {
				logger.Error("loading leaderboard", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		if entries == nil {
			entries = []LeaderboardEntry{}
		}
		writeJSON(w, http.StatusOK, LeaderboardResponse{Players: entries})
	}
}
