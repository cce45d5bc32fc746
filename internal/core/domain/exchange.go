package domain

import "time"

// ChatExchange is the audit record of a single answered chat request.
type ChatExchange struct {
	ID         string
	UserID     ID
	Role       Role
	ClientID   ID
	Intent     string
	Message    string
	Answer     string
	LLMFailed  bool
	ContextHit bool
	CreatedAt  time.Time
}
