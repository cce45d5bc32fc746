package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/thinqor/ats-assistant/internal/pkg/metrics"
	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

type screeningService struct {
	accessor   *Accessor
	model      ports.ScreeningModel
	cache      ports.ScreeningCache
	thresholds ScoringThresholds
	log        zerolog.Logger
}

// NewScreeningService returns a ScreeningService. cache may be nil.
func NewScreeningService(
	accessor *Accessor,
	model ports.ScreeningModel,
	cache ports.ScreeningCache,
	thresholds ScoringThresholds,
	log zerolog.Logger,
) ports.ScreeningService {
	return &screeningService{
		accessor:   accessor,
		model:      model,
		cache:      cache,
		thresholds: thresholds,
		log:        log,
	}
}

// Screen scores a candidate against a requirement visible to the user. The
// LLM verdict is used when available; otherwise the deterministic fallback
// scorer answers and records the cause.
func (s *screeningService) Screen(ctx context.Context, in ports.ScreenInput) (*domain.ScreeningResult, error) {
	if !in.User.HasIdentity() {
		return nil, domain.ErrMissingIdentity
	}
	user := in.User
	user.Role = domain.ParseRole(string(user.Role))
	if user.Role != domain.RoleAdmin && user.Role != domain.RoleRecruiter {
		return nil, domain.ErrForbidden
	}

	req := s.accessor.RequirementForScreening(ctx, in.RequirementID, user)
	if req == nil {
		return nil, fmt.Errorf("screen requirement %q: %w", in.RequirementID, domain.ErrNotFound)
	}

	log := s.log.With().Str("requirement_id", req.ID).Str("user_id", user.ID.String()).Logger()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, req.ID, in.Candidate)
		if err != nil {
			log.Warn().Err(err).Msg("screening cache lookup failed")
		} else if cached != nil {
			metrics.ScreeningsTotal.WithLabelValues("cache").Inc()
			return cached, nil
		}
	}

	start := time.Now()
	result, err := s.model.Evaluate(ctx, BuildScreeningPrompt(in.Candidate, *req))
	metrics.LLMCallDuration.WithLabelValues("screening").Observe(time.Since(start).Seconds())
	if err != nil {
		cause := err.Error()
		var llmErr *domain.LLMError
		if errors.As(err, &llmErr) {
			cause = llmErr.Cause
		}
		log.Warn().Err(err).Str("cause", cause).Msg("llm screening unavailable, using fallback scoring")
		result = FallbackScore(s.thresholds, in.Candidate, *req, cause)
	}
	metrics.ScreeningsTotal.WithLabelValues(result.Source).Inc()

	if s.cache != nil && result.Source == domain.SourceLLM {
		if err := s.cache.Set(ctx, req.ID, in.Candidate, result); err != nil {
			log.Warn().Err(err).Msg("failed to store screening result")
		}
	}

	return result, nil
}
