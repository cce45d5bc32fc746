package domain

import "errors"

var (
	ErrMissingIdentity = errors.New("missing user/role")
	ErrEmptyMessage    = errors.New("empty message")
	ErrNotFound        = errors.New("record not found")
	ErrDataUnavailable = errors.New("data source unavailable")
	ErrForbidden       = errors.New("access forbidden")
	ErrLLMUnavailable  = errors.New("llm unavailable")
)

// LLMError describes why a model call produced no usable answer. Message is
// safe to show to the end user; Cause is the short form recorded in fallback
// rationales and metrics.
type LLMError struct {
	Cause   string
	Message string
	Err     error
}

func (e *LLMError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "AI service error: " + e.Cause
}

func (e *LLMError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLLMUnavailable}
	}
	return []error{ErrLLMUnavailable, e.Err}
}
