package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

// Deps carries everything the routes need.
type Deps struct {
	Store        Store
	Leaderboard  *Leaderboard
	BaseURL      string
	SPADir       string
	HealthChecks map[string]Checker
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Globetrotter API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.HealthChecks))

	// Auth.
	r.Post("/api/auth/signup", handleSignup(deps.Store))
	r.Post("/api/auth/login", handleLogin(deps.Store))
	r.Post("/api/auth/logout", handleLogout(deps.Store))

	// Public.
	r.Get("/api/destinations/random", handleRandomDestination(logger, deps.Store))
	r.Get("/api/leaderboard", handleLeaderboard(logger, deps.Leaderboard, deps.Store))
	r.Get("/api/challenges/{code}", handleResolveChallenge(deps.Store, deps.BaseURL))
	r.Get("/api/challenges/{code}/events", handleChallengeEvents(deps.Store, broker))
	r.Get("/challenge/{code}", handleSharedChallengePage(deps.Store))

	// Authenticated.
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(deps.Store))
		r.Get("/api/auth/me", handleMe())
		r.Get("/api/profile", handleProfile(deps.Store))
		r.Put("/api/profile/username", handleSetUsername(deps.Store, deps.Leaderboard))
		r.Post("/api/game/answer", handleAnswer(logger, deps.Store, deps.Leaderboard, broker))
		r.Post("/api/challenges", handleCreateChallenge(logger, deps.Store, deps.BaseURL))
		r.Get("/api/challenges", handleListChallenges(deps.Store, deps.BaseURL))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
