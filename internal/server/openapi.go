package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Globetrotter API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Globetrotter destination-guessing game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/auth/signup
	postSignup, _ := r.NewOperationContext(http.MethodPost, "/api/auth/signup")
	postSignup.SetSummary("Sign up")
	postSignup.SetDescription("Creates a user and their profile, returns a session token.")
	postSignup.AddReqStructure(SignupRequest{})
	postSignup.AddRespStructure(AuthResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postSignup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postSignup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postSignup)

	// POST /api/auth/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/auth/login")
	postLogin.SetSummary("Log in")
	postLogin.SetDescription("Authenticate with email and password, returns a session token.")
	postLogin.AddReqStructure(LoginRequest{})
	postLogin.AddRespStructure(AuthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/auth/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/auth/logout")
	postLogout.SetSummary("Log out")
	postLogout.SetDescription("Invalidates the Bearer session token.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(postLogout)

	// GET /api/auth/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/auth/me")
	getMe.SetSummary("Current user")
	getMe.SetDescription("Returns the authenticated user. Requires Bearer token.")
	getMe.AddRespStructure(MeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/destinations/random
	getRandom, _ := r.NewOperationContext(http.MethodGet, "/api/destinations/random")
	getRandom.SetSummary("Random round")
	getRandom.SetDescription("Returns a random destination, four shuffled city options, and a clue.")
	getRandom.AddRespStructure(RoundResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getRandom.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getRandom)

	// POST /api/game/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/game/answer")
	postAnswer.SetSummary("Submit answer")
	postAnswer.SetDescription("Grades an answer and applies the score update. Requires Bearer token. Pass shareCode while playing a challenge to get progress against the creator.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(postAnswer)

	// GET /api/profile
	getProfile, _ := r.NewOperationContext(http.MethodGet, "/api/profile")
	getProfile.SetSummary("Current profile")
	getProfile.SetDescription("Returns the authenticated player's profile. Requires Bearer token.")
	getProfile.AddRespStructure(ProfileResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getProfile.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getProfile)

	// PUT /api/profile/username
	putUsername, _ := r.NewOperationContext(http.MethodPut, "/api/profile/username")
	putUsername.SetSummary("Set username")
	putUsername.SetDescription("Sets the leaderboard display name. Requires Bearer token.")
	putUsername.AddReqStructure(SetUsernameRequest{})
	putUsername.AddRespStructure(ProfileResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putUsername.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(putUsername)

	// POST /api/challenges
	postChallenge, _ := r.NewOperationContext(http.MethodPost, "/api/challenges")
	postChallenge.SetSummary("Create challenge")
	postChallenge.SetDescription("Creates a 24-hour challenge with a shareable code. Requires Bearer token.")
	postChallenge.AddRespStructure(ChallengeResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(postChallenge)

	// GET /api/challenges
	listChallenges, _ := r.NewOperationContext(http.MethodGet, "/api/challenges")
	listChallenges.SetSummary("List my challenges")
	listChallenges.SetDescription("Returns the caller's challenges, newest first. Requires Bearer token.")
	listChallenges.AddRespStructure([]ChallengeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listChallenges)

	// GET /api/challenges/{code}
	getChallenge, _ := r.NewOperationContext(http.MethodGet, "/api/challenges/{code}")
	getChallenge.SetSummary("Resolve challenge")
	getChallenge.SetDescription("Resolves a share code to the challenge and the creator's current score.")
	getChallenge.AddReqStructure(struct {
		Code string `path:"code"`
	}{})
	getChallenge.AddRespStructure(ChallengeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusGone))
	_ = r.AddOperation(getChallenge)

	// GET /api/challenges/{code}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/challenges/{code}/events")
	getEvents.SetSummary("Challenge SSE stream")
	getEvents.SetDescription("Server-Sent Events stream of challenger progress for a live challenge.")
	getEvents.AddReqStructure(struct {
		Code string `path:"code"`
	}{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/leaderboard
	getLeaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getLeaderboard.SetSummary("Leaderboard")
	getLeaderboard.SetDescription("Returns the top ten players by score.")
	getLeaderboard.AddRespStructure(LeaderboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getLeaderboard)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(spec)
	}
}
