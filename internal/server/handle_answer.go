package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/globetrotterhq/globetrotter/internal/globetrotter"
)

// AnswerRequest is the request body for POST /api/game/answer.
// ShareCode is set while playing inside a challenge context.
type AnswerRequest struct {
	DestinationID string `json:"destinationId"`
	Answer        string `json:"answer"`
	ShareCode     string `json:"shareCode,omitempty"`
}

// ChallengeProgress reports where the challenger stands against the
// creator's score. Recomputed on every answered round.
type ChallengeProgress struct {
	ThresholdScore int  `json:"thresholdScore"`
	Beaten         bool `json:"beaten"`
}

// AnswerResponse is the response for POST /api/game/answer.
type AnswerResponse struct {
	IsCorrect     bool               `json:"isCorrect"`
	CorrectAnswer string             `json:"correctAnswer"`
	Score         int                `json:"score"`
	GamesPlayed   int                `json:"gamesPlayed"`
	Challenge     *ChallengeProgress `json:"challenge,omitempty"`
}

func handleAnswer(logger *slog.Logger, store Store, lb *Leaderboard, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.DestinationID == "" || req.Answer == "" {
			writeError(w, http.StatusBadRequest, "destinationId and answer are required")
			return
		}

		target, err := store.DestinationByID(r.Context(), req.DestinationID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "destination not found")
			return
		}
		if err != nil {
			logger.Error("loading destination", "error", err, "destination_id", req.DestinationID)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		isCorrect := globetrotter.Grade(req.Answer, target)

		// Single atomic increment at the storage layer. If this fails the
		// score was not updated and the client may simply retry.
		profile, err := store.ApplyAnswer(r.Context(), sess.UserID, isCorrect)
		if err != nil {
			logger.Error("applying answer", "error", err, "user_id", sess.UserID)
			writeError(w, http.StatusInternalServerError, "failed to update score")
			return
		}

		if profile.UsernameSet {
			if err := lb.Record(r.Context(), profile.Username, profile.Score); err != nil {
				// Cache only; SQLite already has the new score.
				logger.Warn("updating leaderboard cache", "error", err)
			}
		}

		resp := AnswerResponse{
			IsCorrect:     isCorrect,
			CorrectAnswer: target.City,
			Score:         profile.Score,
			GamesPlayed:   profile.GamesPlayed,
		}

		if req.ShareCode != "" {
			resp.Challenge = challengeProgress(r, logger, store, broker, req.ShareCode, profile)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// challengeProgress re-evaluates an active challenge after a round.
// Missing or expired challenges are expected conditions and simply
// yield no progress block.
func challengeProgress(r *http.Request, logger *slog.Logger, store Store, broker *Broker, code string, profile globetrotter.Profile) *ChallengeProgress {
	detail, err := store.ChallengeByCode(r.Context(), code)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		logger.Error("resolving challenge", "error", err, "share_code", code)
		return nil
	}
	if detail.Expired(time.Now()) {
		return nil
	}

	progress := globetrotter.EvaluateProgress(detail.CreatorScore, profile.Score)

	broker.Publish(detail.ID, SSEEvent{
		Type:           "challenger_progress",
		Username:       profile.Username,
		Score:          profile.Score,
		ThresholdScore: progress.ThresholdScore,
		Beaten:         progress.Beaten,
	})

	return &ChallengeProgress{
		ThresholdScore: progress.ThresholdScore,
		Beaten:         progress.Beaten,
	}
}
