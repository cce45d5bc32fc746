package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/thinqor/ats-assistant/internal/api/handler"
	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

const testSecret = "test-secret"

type fakeChat struct{ user *domain.User }

func (f *fakeChat) Answer(_ context.Context, message string, user *domain.User) (*ports.ChatAnswer, error) {
	f.user = user
	if !user.HasIdentity() {
		return nil, domain.ErrMissingIdentity
	}
	return &ports.ChatAnswer{Answer: "echo: " + message, Context: &ports.ChatContext{Query: message}}, nil
}

type fakeScreening struct{}

func (fakeScreening) Screen(_ context.Context, in ports.ScreenInput) (*domain.ScreeningResult, error) {
	if in.RequirementID == "R-404" {
		return nil, domain.ErrNotFound
	}
	return &domain.ScreeningResult{Score: 50, Recommend: domain.RecommendNeedsInterview, Source: domain.SourceFallback}, nil
}

func newTestRouter(t *testing.T, secret string) (*fakeChat, http.Handler) {
	t.Helper()
	chat := &fakeChat{}
	e := NewRouter(Dependencies{
		Chat:      chat,
		Screening: fakeScreening{},
		Health: map[string]handler.Pinger{
			"mysql": handler.PingFunc(func(context.Context) error { return nil }),
		},
		JWTSecret: secret,
		Log:       zerolog.Nop(),
		Registry:  prometheus.NewRegistry(),
	})
	return chat, e
}

func bearer(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + s
}

func do(h http.Handler, method, path, body, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Chat(t *testing.T) {
	chat, r := newTestRouter(t, testSecret)

	rec := do(r, http.MethodPost, "/api/ai/chat", `{"message":"hi","user":{"id":"1","role":"ADMIN"}}`, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "echo: hi") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodPost, "/api/ai/chat", `{"message":"hi"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	auth := bearer(t, jwt.MapClaims{"sub": "c-1", "role": "CLIENT", "client_id": "10"})
	rec = do(r, http.MethodPost, "/api/ai/chat", `{"message":"hi","user":{"id":"1","role":"ADMIN"}}`, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if chat.user == nil || chat.user.Role != domain.RoleClient || chat.user.ClientID != "10" {
		t.Errorf("token identity should override body, got %+v", chat.user)
	}

	rec = do(r, http.MethodPost, "/api/ai/chat", `{"message":"hi"}`, "Bearer garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rec.Code)
	}
}

func TestRouter_Screen(t *testing.T) {
	_, r := newTestRouter(t, testSecret)
	body := `{"requirement_id":"R-1","candidate":{"name":"Jane","skills":"go"}}`

	tests := []struct {
		name     string
		auth     string
		body     string
		wantCode int
	}{
		{"no token", "", body, http.StatusUnauthorized},
		{"client role", bearer(t, jwt.MapClaims{"sub": "c", "role": "CLIENT", "client_id": "10"}), body, http.StatusForbidden},
		{"recruiter", bearer(t, jwt.MapClaims{"sub": "r", "role": "RECRUITER"}), body, http.StatusOK},
		{"admin", bearer(t, jwt.MapClaims{"sub": "a", "role": "admin"}), body, http.StatusOK},
		{"invalid body", bearer(t, jwt.MapClaims{"sub": "a", "role": "ADMIN"}), `{}`, http.StatusBadRequest},
		{"not found", bearer(t, jwt.MapClaims{"sub": "a", "role": "ADMIN"}), `{"requirement_id":"R-404","candidate":{"name":"Jane"}}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/api/ai/screen", tt.body, tt.auth)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_ScreenClosedWithoutSecret(t *testing.T) {
	_, r := newTestRouter(t, "")
	rec := do(r, http.MethodPost, "/api/ai/screen", `{"requirement_id":"R-1","candidate":{"name":"Jane"}}`,
		bearer(t, jwt.MapClaims{"sub": "a", "role": "ADMIN"}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_Operations(t *testing.T) {
	_, r := newTestRouter(t, testSecret)

	if rec := do(r, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Errorf("health: %d", rec.Code)
	}
	if rec := do(r, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Errorf("ready: %d", rec.Code)
	}

	// generate one observed request first
	do(r, http.MethodGet, "/health", "", "")
	rec := do(r, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ats_assistant_requests_total") {
		t.Errorf("metrics missing http counters: %d", rec.Code)
	}
}
