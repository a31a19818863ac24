package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/voigt-garten/gartenbackend/models"
	"github.com/voigt-garten/gartenbackend/repository"
)

const testJWTSecret = "test-secret-not-for-production"

func newAuthTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	db := newHandlerTestDB(t)
	userRepo := repository.NewGormUserRepository(db)

	user := &models.User{Username: "gaertner", IsAdmin: true}
	if err := user.SetPassword("giesskanne123"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.Create(user); err != nil {
		t.Fatal(err)
	}

	authHandler := NewAuthHandler(userRepo, testJWTSecret)
	requireAuth := AuthMiddleware(userRepo, []byte(testJWTSecret))

	r := chi.NewRouter()
	r.Post("/api/auth/login", authHandler.Login)
	r.With(requireAuth).Get("/api/admin/ping", func(w http.ResponseWriter, req *http.Request) {
		user, ok := UserFromContext(req.Context())
		if !ok {
			t.Error("no user in context behind auth middleware")
		}
		writeJSON(w, http.StatusOK, map[string]string{"user": user.Username})
	})
	return r
}

func login(t *testing.T, router *chi.Mux, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(LoginPayload{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginAndProtectedAccess(t *testing.T) {
	router := newAuthTestRouter(t)

	rec := login(t, router, "gaertner", "giesskanne123")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", rec.Code, rec.Body.String())
	}
	var loginResp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatal(err)
	}
	if loginResp.Token == "" {
		t.Fatal("login returned empty token")
	}
	if loginResp.User.Username != "gaertner" {
		t.Errorf("login user %q", loginResp.User.Username)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	authedRec := httptest.NewRecorder()
	router.ServeHTTP(authedRec, req)
	if authedRec.Code != http.StatusOK {
		t.Fatalf("protected route status %d: %s", authedRec.Code, authedRec.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router := newAuthTestRouter(t)

	rec := login(t, router, "gaertner", "falsch")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", rec.Code)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	router := newAuthTestRouter(t)

	rec := login(t, router, "niemand", "egal")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", rec.Code)
	}
}

func TestProtectedRouteRejectsBadTokens(t *testing.T) {
	router := newAuthTestRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status %d, want 401", rec.Code)
			}
		})
	}
}
