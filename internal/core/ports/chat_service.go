package ports

import (
	"context"
	"encoding/json"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

// ChatContext is the data bundle handed to the LLM and echoed back to the
// caller. Only the fields relevant to the detected intent are populated.
// See MarshalJSON for the wire shape.
type ChatContext struct {
	User         ContextUser                 `json:"user"`
	Query        string                      `json:"query"`
	Intent       string                      `json:"intent"`
	Requirement  *domain.Requirement         `json:"requirement,omitempty"`
	Allocations  []domain.Allocation         `json:"allocations,omitempty"`
	Client       *domain.Client              `json:"client,omitempty"`
	Requirements []domain.RequirementSummary `json:"requirements,omitempty"`
}

// MarshalJSON always writes the keys the intent looked up, so a lookup that
// found nothing reads as null (single records) or [] (lists) instead of being
// left out. Keys unrelated to the intent are written only when set.
func (c ChatContext) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"user":   c.User,
		"query":  c.Query,
		"intent": c.Intent,
	}
	switch c.Intent {
	case "requirement":
		out["requirement"] = c.Requirement
		if c.Requirement != nil {
			out["allocations"] = nonNil(c.Allocations)
		}
	case "client":
		out["client"] = c.Client
		if c.Client != nil {
			out["requirements"] = nonNil(c.Requirements)
		}
	case "allocations":
		out["requirements"] = nonNil(c.Requirements)
	default:
		if c.Requirement != nil {
			out["requirement"] = c.Requirement
		}
		if c.Allocations != nil {
			out["allocations"] = c.Allocations
		}
		if c.Client != nil {
			out["client"] = c.Client
		}
		if c.Requirements != nil {
			out["requirements"] = c.Requirements
		}
	}
	return json.Marshal(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ContextUser is the caller identity as exposed to the LLM.
type ContextUser struct {
	ID       domain.ID   `json:"id"`
	Role     domain.Role `json:"role"`
	ClientID domain.ID   `json:"client_id"`
}

// ChatAnswer is the result of ChatService.Answer.
type ChatAnswer struct {
	Answer  string
	Context *ChatContext
}

// ChatService answers free-text questions with role-scoped ATS data.
type ChatService interface {
	// Answer returns domain.ErrMissingIdentity or domain.ErrEmptyMessage for
	// bad input; every other failure is folded into the answer text.
	Answer(ctx context.Context, message string, user *domain.User) (*ChatAnswer, error)
}
