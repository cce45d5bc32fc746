package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thinqor/ats-assistant/internal/pkg/metrics"
	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

type chatService struct {
	accessor *Accessor
	model    ports.ChatModel
	audit    ports.AuditSink
	log      zerolog.Logger
}

// NewChatService returns a ChatService. audit may be nil.
func NewChatService(accessor *Accessor, model ports.ChatModel, audit ports.AuditSink, log zerolog.Logger) ports.ChatService {
	return &chatService{
		accessor: accessor,
		model:    model,
		audit:    audit,
		log:      log,
	}
}

// Answer classifies the message, gathers role-scoped context and asks the
// model. Only bad input is reported as an error.
func (s *chatService) Answer(ctx context.Context, message string, user *domain.User) (*ports.ChatAnswer, error) {
	if !user.HasIdentity() {
		metrics.ChatRejectedTotal.WithLabelValues("missing_identity").Inc()
		return nil, domain.ErrMissingIdentity
	}
	message = strings.TrimSpace(message)
	if message == "" {
		metrics.ChatRejectedTotal.WithLabelValues("empty_message").Inc()
		return nil, domain.ErrEmptyMessage
	}

	u := *user
	u.Role = domain.ParseRole(string(u.Role))
	intent := Classify(message)

	chatCtx := &ports.ChatContext{
		User:   ports.ContextUser{ID: u.ID, Role: u.Role, ClientID: u.ClientID},
		Query:  message,
		Intent: string(intent),
	}

	log := s.log.With().
		Str("intent", string(intent)).
		Str("role", u.Role.String()).
		Str("user_id", u.ID.String()).
		Logger()

	answer, outcome := s.ask(ctx, chatCtx, intent, message, u, log)
	metrics.ChatRequestsTotal.WithLabelValues(string(intent), outcome).Inc()

	s.record(u, intent, message, answer, outcome != "answered", chatCtx)

	return &ports.ChatAnswer{Answer: answer, Context: chatCtx}, nil
}

// ask gathers context and calls the model. Panics and unexpected errors are
// turned into answer text so that whatever context was collected is still
// returned.
func (s *chatService) ask(ctx context.Context, chatCtx *ports.ChatContext, intent Intent, message string, user domain.User, log zerolog.Logger) (answer, outcome string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("chat processing panicked")
			answer, outcome = fmt.Sprintf("AI processing failed: %v", r), "internal_error"
		}
	}()

	s.gather(ctx, chatCtx, intent, message, user)

	start := time.Now()
	answer, err := s.model.Answer(ctx, SystemPrompt, chatCtx, message)
	metrics.LLMCallDuration.WithLabelValues("chat").Observe(time.Since(start).Seconds())
	if err == nil {
		return answer, "answered"
	}

	var llmErr *domain.LLMError
	if errors.As(err, &llmErr) {
		log.Warn().Err(err).Str("cause", llmErr.Cause).Msg("llm call failed")
		return llmErr.Error(), "llm_error"
	}
	log.Error().Err(err).Msg("chat processing failed")
	return fmt.Sprintf("AI processing failed: %v", err), "internal_error"
}

// gather fills chatCtx according to intent. Requirement and client details
// only pull related lists once the primary record is visible to the user.
func (s *chatService) gather(ctx context.Context, chatCtx *ports.ChatContext, intent Intent, message string, user domain.User) {
	switch intent {
	case IntentRequirement:
		reqID := ExtractRequirementID(message)
		if reqID == "" {
			return
		}
		chatCtx.Requirement = s.accessor.RequirementByID(ctx, reqID, user)
		if chatCtx.Requirement != nil {
			chatCtx.Allocations = s.accessor.AllocationsForRequirement(ctx, chatCtx.Requirement.ID)
		}

	case IntentClient:
		clientID := ExtractClientID(message)
		if clientID == "" {
			return
		}
		chatCtx.Client = s.accessor.ClientByID(ctx, clientID, user)
		if chatCtx.Client != nil {
			chatCtx.Requirements = s.accessor.RequirementsForClient(ctx, chatCtx.Client.ID)
		}

	case IntentAllocations:
		switch user.Role {
		case domain.RoleRecruiter:
			chatCtx.Requirements = s.accessor.RequirementsForRecruiter(ctx, user.ID.String())
		case domain.RoleAdmin, domain.RoleClient:
			chatCtx.Requirements = []domain.RequirementSummary{}
		default:
			chatCtx.Requirements = []domain.RequirementSummary{}
		}

	case IntentGeneral:
	}
}

func (s *chatService) record(user domain.User, intent Intent, message, answer string, failed bool, chatCtx *ports.ChatContext) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.ChatExchange{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Role:       user.Role,
		ClientID:   user.ClientID,
		Intent:     string(intent),
		Message:    message,
		Answer:     answer,
		LLMFailed:  failed,
		ContextHit: chatCtx.Requirement != nil || chatCtx.Client != nil || len(chatCtx.Requirements) > 0,
		CreatedAt:  time.Now().UTC(),
	})
}
