package ports

import (
	"context"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

// ChatModel answers a question from a system prompt and a JSON-serialisable
// context. Failures are returned as *domain.LLMError whose message is fit for
// the end user.
type ChatModel interface {
	Answer(ctx context.Context, system string, data any, question string) (string, error)
}

// ScreeningModel sends a screening prompt and parses the JSON verdict.
// Any failure is a *domain.LLMError carrying the fallback cause.
type ScreeningModel interface {
	Evaluate(ctx context.Context, prompt string) (*domain.ScreeningResult, error)
}
