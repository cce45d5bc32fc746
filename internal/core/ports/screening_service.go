package ports

import (
	"context"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

// ScreenInput carries a screening request.
type ScreenInput struct {
	User          domain.User
	RequirementID string
	Candidate     domain.Candidate
}

// ScreeningService scores candidates against requirements.
type ScreeningService interface {
	Screen(ctx context.Context, in ScreenInput) (*domain.ScreeningResult, error)
}

// ScreeningCache memoises screening results. A miss is (nil, nil).
type ScreeningCache interface {
	Get(ctx context.Context, requirementID string, candidate domain.Candidate) (*domain.ScreeningResult, error)
	Set(ctx context.Context, requirementID string, candidate domain.Candidate, result *domain.ScreeningResult) error
}
