package server

import (
	"log/slog"
	"net/http"

	"github.com/globetrotterhq/globetrotter/internal/globetrotter"
)

// DestinationInfo is the destination payload of a round.
type DestinationInfo struct {
	ID       string   `json:"id"`
	City     string   `json:"city"`
	Country  string   `json:"country"`
	Clues    []string `json:"clues"`
	FunFacts []string `json:"funFacts"`
	Trivia   []string `json:"trivia"`
}

// RoundResponse is the response for GET /api/destinations/random.
type RoundResponse struct {
	Destination DestinationInfo `json:"destination"`
	Options     []string        `json:"options"`
	Clue        string          `json:"clue"`
}

func handleRandomDestination(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := store.ListDestinations(r.Context())
		if err != nil {
			logger.Error("loading destination pool", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load question")
			return
		}

		round, err := globetrotter.SelectRound(pool, newRNG())
		if err != nil {
			logger.Error("selecting round", "error", err, "pool_size", len(pool))
			writeError(w, http.StatusInternalServerError, "failed to load question")
			return
		}

		writeJSON(w, http.StatusOK, RoundResponse{
			Destination: DestinationInfo{
				ID:       round.Destination.ID,
				City:     round.Destination.City,
				Country:  round.Destination.Country,
				Clues:    round.Destination.Clues,
				FunFacts: round.Destination.FunFacts,
				Trivia:   round.Destination.Trivia,
			},
			Options: round.Options,
			Clue:    round.Clue,
		})
	}
}
