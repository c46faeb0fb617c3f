package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Varun5711/taskboard/internal/auth"
)

func newAuthTestSetup(t *testing.T) (*AuthMiddleware, *auth.JWTManager) {
	t.Helper()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthMiddleware(jwtManager), jwtManager
}

func protectedProbe(t *testing.T) (http.Handler, *bool, *string) {
	t.Helper()
	called := false
	gotUserID := ""
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return h, &called, &gotUserID
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	mw, _ := newAuthTestSetup(t)
	next, called, _ := protectedProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)

	if *called {
		t.Error("handler must not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	for _, key := range []string{"error", "message"} {
		if s, ok := body[key].(string); !ok || s == "" {
			t.Errorf("expected non-empty %q in error body, got %v", key, body)
		}
	}
	if body["statusCode"] != float64(http.StatusUnauthorized) {
		t.Errorf("expected statusCode 401 in body, got %v", body["statusCode"])
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	mw, jwtManager := newAuthTestSetup(t)
	next, called, _ := protectedProbe(t)

	token, _, err := jwtManager.GenerateToken("u1", "user@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	for _, header := range []string{token, "Basic " + token, "bearer " + token} {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
	if *called {
		t.Error("handler must not run for malformed headers")
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	mw, _ := newAuthTestSetup(t)
	next, called, _ := protectedProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)

	if *called {
		t.Error("handler must not run with a bad token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	mw, _ := newAuthTestSetup(t)
	next, called, _ := protectedProbe(t)

	other := auth.NewJWTManager("different-secret", time.Hour)
	token, _, err := other.GenerateToken("u1", "user@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)

	if *called {
		t.Error("handler must not run with a token signed by another key")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	mw, jwtManager := newAuthTestSetup(t)
	next, called, gotUserID := protectedProbe(t)

	token, _, err := jwtManager.GenerateToken("u1", "user@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)

	if !*called {
		t.Fatal("expected handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if *gotUserID != "u1" {
		t.Errorf("expected user id 'u1' in context, got %q", *gotUserID)
	}
}

func TestGetUserID_Unset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetUserID(req.Context()); got != "" {
		t.Errorf("expected empty user id on bare context, got %q", got)
	}
	if got := GetUserEmail(req.Context()); got != "" {
		t.Errorf("expected empty email on bare context, got %q", got)
	}
}
