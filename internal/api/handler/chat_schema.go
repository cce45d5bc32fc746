package handler

import (
	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

type chatRequest struct {
	Message string       `json:"message" example:"show requirement R-42"`
	User    *domain.User `json:"user"`
}

// chatResponse is the envelope for every chat outcome, including 400 and
// 401. Context is null when the request was rejected.
type chatResponse struct {
	Answer  string             `json:"answer"`
	Context *ports.ChatContext `json:"context"`
}

const (
	answerInvalidPayload  = "Invalid request payload."
	answerMissingIdentity = "Unauthorized: missing user/role."
	answerEmptyMessage    = "Please provide a message."
)
