package server

import (
	"net/http"
	"testing"
)

func TestSetUsername(t *testing.T) {
	r, _, _ := setupRouter(t, testCities)

	auth := signup(t, r, "namer@example.com")

	var resp ProfileResponse
	w := doJSON(t, r, http.MethodPut, "/api/profile/username", auth.Token,
		SetUsernameRequest{Username: "wanderer"}, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp.Username != "wanderer" || !resp.UsernameSet {
		t.Errorf("expected username wanderer set, got %+v", resp)
	}
}

func TestSetUsernameTaken(t *testing.T) {
	r, _, _ := setupRouter(t, testCities)

	first := signup(t, r, "one@example.com")
	doJSON(t, r, http.MethodPut, "/api/profile/username", first.Token,
		SetUsernameRequest{Username: "highlander"}, nil)

	second := signup(t, r, "two@example.com")
	w := doJSON(t, r, http.MethodPut, "/api/profile/username", second.Token,
		SetUsernameRequest{Username: "highlander"}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestSetUsernameValidation(t *testing.T) {
	r, _, _ := setupRouter(t, testCities)

	auth := signup(t, r, "blank@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/profile/username", auth.Token,
		SetUsernameRequest{Username: "   "}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/profile/username", auth.Token,
		SetUsernameRequest{Username: "this-name-is-way-too-long-to-fit-on-a-leaderboard"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("too long: expected 400, got %d", w.Code)
	}
}
