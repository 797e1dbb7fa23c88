package server

import (
	"net/http"
	"testing"
)

func TestSignupAndMe(t *testing.T) {
	r, _, _ := setupRouter(t, testCities)

	auth := signup(t, r, "maria@example.com")

	var me MeResponse
	w := doJSON(t, r, http.MethodGet, "/api/auth/me", auth.Token, nil, &me)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}
	if me.Email != "maria@example.com" {
		t.Errorf("me: expected email maria@example.com, got %q", me.Email)
	}
	if me.UserID != auth.UserID {
		t.Errorf("me: user id mismatch")
	}
}

func TestSignupCreatesProfile(t *testing.T) {
	r, _, _ := setupRouter(t, testCities)

	auth := signup(t, r, "fresh@example.com")

	var profile ProfileResponse
	w := doJSON(t, r, http.MethodGet, "/api/profile", auth.Token, nil, &profile)
	if w.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if profile.Score != 0 || profile.GamesPlayed != 0 {
		t.Errorf("fresh profile should have zero stats, got score=%d games=%d", profile.Score, profile.GamesPlayed)
	}
	if profile.UsernameSet {
		t.Error("fresh profile should not have a username yet")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r, _, _ := setupRouter(t, testCities)

	signup(t, r, "dup@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "",
		SignupRequest{Email: "dup@example.com", Password: "correct-horse"}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	r, _, _ := setupRouter(t, testCities)

	signup(t, r, "carlos@example.com")

	var resp AuthResponse
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Email: "carlos@example.com", Password: "correct-horse"}, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", w.Code)
	}
	if resp.Token == "" {
		t.Fatal("login: expected a session token")
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Email: "carlos@example.com", Password: "wrong"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Email: "nobody@example.com", Password: "correct-horse"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401, got %d", w.Code)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	r, _, _ := setupRouter(t, testCities)

	auth := signup(t, r, "ana@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", auth.Token, nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", auth.Token, nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", w.Code)
	}
}

func TestUnauthorizedAccess(t *testing.T) {
	r, _, _ := setupRouter(t, testCities)

	w := doJSON(t, r, http.MethodGet, "/api/profile", "", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/profile", "bogus", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", w.Code)
	}
}
