package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globetrotterhq/globetrotter/internal/globetrotter"
)

// shareCodeAttempts bounds the retry loop when a generated code
// collides with an existing one. 36^6 codes make more than a couple of
// collisions in a row vanishingly unlikely.
const shareCodeAttempts = 5

// ChallengeResponse is a challenge as returned by the API.
type ChallengeResponse struct {
	ID              string `json:"id"`
	ShareCode       string `json:"shareCode"`
	ShareURL        string `json:"shareUrl"`
	CreatorUsername string `json:"creatorUsername"`
	CreatorScore    int    `json:"creatorScore"`
	CreatedAt       string `json:"createdAt"`
	ExpiresAt       string `json:"expiresAt"`
}

func challengeResponse(d ChallengeDetail, baseURL string) ChallengeResponse {
	return ChallengeResponse{
		ID:              d.ID,
		ShareCode:       d.ShareCode,
		ShareURL:        baseURL + "/challenge/" + d.ShareCode,
		CreatorUsername: d.CreatorUsername,
		CreatorScore:    d.CreatorScore,
		CreatedAt:       d.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt:       d.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

func handleCreateChallenge(logger *slog.Logger, store Store, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		rng := newRNG()
		now := time.Now().UTC()

		var created globetrotter.Challenge
		var err error
		for range shareCodeAttempts {
			created = globetrotter.Challenge{
				ID:        uuid.NewString(),
				CreatorID: sess.UserID,
				ShareCode: globetrotter.NewShareCode(rng),
				CreatedAt: now,
				ExpiresAt: now.Add(globetrotter.ChallengeTTL),
			}
			err = store.CreateChallenge(r.Context(), created)
			if !errors.Is(err, ErrConflict) {
				break
			}
		}
		if errors.Is(err, ErrConflict) {
			logger.Error("share code generation exhausted retries", "user_id", sess.UserID)
			writeError(w, http.StatusInternalServerError, "failed to create challenge")
			return
		}
		if err != nil {
			logger.Error("creating challenge", "error", err, "user_id", sess.UserID)
			writeError(w, http.StatusInternalServerError, "failed to create challenge")
			return
		}

		detail, err := store.ChallengeByCode(r.Context(), created.ShareCode)
		if err != nil {
			logger.Error("reading back challenge", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create challenge")
			return
		}

		writeJSON(w, http.StatusCreated, challengeResponse(detail, baseURL))
	}
}

func handleListChallenges(store Store, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		details, err := store.ListChallengesByCreator(r.Context(), sess.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := make([]ChallengeResponse, 0, len(details))
		for _, d := range details {
			resp = append(resp, challengeResponse(d, baseURL))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleResolveChallenge(store Store, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		detail, err := store.ChallengeByCode(r.Context(), code)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "challenge not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// Expiry is enforced at read time; the record itself stays put.
		if detail.Expired(time.Now()) {
			writeError(w, http.StatusGone, "challenge has expired")
			return
		}

		writeJSON(w, http.StatusOK, challengeResponse(detail, baseURL))
	}
}

// handleSharedChallengePage backs the shareable link itself. Visitors
// land here from a friend's message; missing or expired challenges
// redirect to neutral pages rather than erroring.
func handleSharedChallengePage(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		detail, err := store.ChallengeByCode(r.Context(), code)
		if errors.Is(err, ErrNotFound) {
			http.Redirect(w, r, "/challenge?error=not_found", http.StatusFound)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if detail.Expired(time.Now()) {
			http.Redirect(w, r, "/challenge?error=expired", http.StatusFound)
			return
		}

		http.Redirect(w, r, "/play?code="+detail.ShareCode, http.StatusFound)
	}
}

func handleChallengeEvents(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		detail, err := store.ChallengeByCode(r.Context(), code)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "challenge not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if detail.Expired(time.Now()) {
			writeError(w, http.StatusGone, "challenge has expired")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ch := broker.Subscribe(detail.ID)
		defer broker.Unsubscribe(detail.ID, ch)

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: progress\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
