package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/globetrotterhq/globetrotter/internal/database"
	"github.com/globetrotterhq/globetrotter/internal/globetrotter"
	"github.com/globetrotterhq/globetrotter/internal/migrations"
)

var testCities = []globetrotter.Destination{
	{City: "Paris", Country: "France", Clues: []string{"A sparkling tower"}, FunFacts: []string{"One stop sign"}, Trivia: []string{"Roman Lutetia"}},
	{City: "Tokyo", Country: "Japan", Clues: []string{"Busiest crossing"}, FunFacts: []string{"Was Edo"}, Trivia: []string{"40M daily riders"}},
	{City: "Lima", Country: "Peru", Clues: []string{"Garúa fog city"}, FunFacts: []string{"Desert capital"}, Trivia: []string{"City of Kings"}},
	{City: "Oslo", Country: "Norway", Clues: []string{"Fjord-side capital"}, FunFacts: []string{"Nobel Peace Prize"}, Trivia: []string{"Was Christiania"}},
	{City: "Cairo", Country: "Egypt", Clues: []string{"Pyramids nearby"}, FunFacts: []string{"Largest in Africa"}, Trivia: []string{"The Victorious"}},
}

func setupStore(t *testing.T, destinations []globetrotter.Destination) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	store := NewSQLiteStore(db)
	for _, d := range destinations {
		d.ID = uuid.NewString()
		if err := store.InsertDestination(ctx, d); err != nil {
			t.Fatalf("insert destination %q: %v", d.City, err)
		}
	}
	return store
}

func setupRouter(t *testing.T, destinations []globetrotter.Destination) (*chi.Mux, *SQLiteStore, *miniredis.Miniredis) {
	t.Helper()

	store := setupStore(t, destinations)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	addRoutes(r, logger, Deps{
		Store:       store,
		Leaderboard: NewLeaderboard(rdb),
		BaseURL:     "http://game.test",
	})
	return r, store, mr
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v (body %s)", err, w.Body.String())
		}
	}
	return w
}

func signup(t *testing.T, r http.Handler, email string) AuthResponse {
	t.Helper()

	var resp AuthResponse
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "",
		SignupRequest{Email: email, Password: "correct-horse"}, &resp)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if resp.Token == "" {
		t.Fatal("signup: expected a session token")
	}
	return resp
}
