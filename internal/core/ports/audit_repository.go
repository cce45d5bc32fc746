package ports

import (
	"context"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

// AuditRepository persists chat exchanges for later review.
type AuditRepository interface {
	InsertExchange(ctx context.Context, exchange *domain.ChatExchange) error
}

// AuditSink accepts exchanges without blocking the request path.
type AuditSink interface {
	Enqueue(exchange domain.ChatExchange)
}
