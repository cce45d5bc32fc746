package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

func decodeChat(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestChatHandler_Answers(t *testing.T) {
	svc := &stubChatService{answer: &ports.ChatAnswer{
		Answer:  "R-42 is open.",
		Context: &ports.ChatContext{Query: "show requirement R-42", Intent: "requirement"},
	}}
	h := NewChatHandler(svc)
	_, c, rec := newJSONContext(`{"message":"show requirement R-42","user":{"id":7,"role":"recruiter"}}`, nil)

	if err := h.Chat(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotUser == nil || svc.gotUser.ID != "7" || svc.gotUser.Role != "recruiter" {
		t.Errorf("body user not forwarded: %+v", svc.gotUser)
	}
	out := decodeChat(t, rec.Body.Bytes())
	if out["answer"] != "R-42 is open." {
		t.Errorf("unexpected answer %v", out["answer"])
	}
	ctx, ok := out["context"].(map[string]any)
	if !ok || ctx["intent"] != "requirement" {
		t.Errorf("unexpected context %v", out["context"])
	}
	if v, present := ctx["requirement"]; !present || v != nil {
		t.Errorf("expected null requirement key in context, got %v (present=%v)", v, present)
	}
}

func TestChatHandler_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		want     string
	}{
		{"missing user", `{"message":"hi"}`, http.StatusUnauthorized, "Unauthorized: missing user/role."},
		{"missing role", `{"message":"hi","user":{"id":"1"}}`, http.StatusUnauthorized, "Unauthorized: missing user/role."},
		{"empty message", `{"message":"   ","user":{"id":"1","role":"ADMIN"}}`, http.StatusBadRequest, "Please provide a message."},
		{"missing user wins over empty message", `{"message":""}`, http.StatusUnauthorized, "Unauthorized: missing user/role."},
		{"invalid json", `{"message":`, http.StatusBadRequest, "Invalid request payload."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewChatHandler(&stubChatService{})
			_, c, rec := newJSONContext(tt.body, nil)

			if err := h.Chat(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			out := decodeChat(t, rec.Body.Bytes())
			if out["answer"] != tt.want {
				t.Errorf("unexpected answer %v", out["answer"])
			}
			if v, present := out["context"]; !present || v != nil {
				t.Errorf("expected null context, got %v", v)
			}
		})
	}
}

func TestChatHandler_TokenOverridesBody(t *testing.T) {
	svc := &stubChatService{answer: &ports.ChatAnswer{Answer: "ok", Context: &ports.ChatContext{}}}
	h := NewChatHandler(svc)
	verified := &domain.User{ID: "9", Role: domain.RoleClient, ClientID: "10"}
	_, c, rec := newJSONContext(`{"message":"client 20","user":{"id":"1","role":"ADMIN"}}`, verified)

	if err := h.Chat(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotUser != verified {
		t.Errorf("expected verified user, got %+v", svc.gotUser)
	}
}

func TestChatHandler_UnexpectedErrorPropagates(t *testing.T) {
	h := NewChatHandler(&stubChatService{err: errBoom})
	_, c, _ := newJSONContext(`{"message":"hi","user":{"id":"1","role":"ADMIN"}}`, nil)

	if err := h.Chat(c); err != errBoom {
		t.Fatalf("expected errBoom, got %v", err)
	}
}
