package ports

import (
	"context"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

// ATSRepository reads the relational ATS schema with role visibility applied
// in SQL. Every method returns domain.ErrNotFound when nothing visible matches
// and an error wrapping domain.ErrDataUnavailable when the database cannot be
// reached, so callers can tell "no data" from "no connection".
type ATSRepository interface {
	// RequirementByID returns the requirement with its client name if the
	// user may see it (admin: any, recruiter: allocated, client: own).
	RequirementByID(ctx context.Context, id string, user domain.User) (*domain.Requirement, error)
	// RequirementForScreening is the wider recruiter variant: allocated OR
	// created by the recruiter.
	RequirementForScreening(ctx context.Context, id string, user domain.User) (*domain.Requirement, error)
	RequirementsForRecruiter(ctx context.Context, recruiterID string) ([]domain.RequirementSummary, error)
	RequirementsForClient(ctx context.Context, clientID string) ([]domain.RequirementSummary, error)
	ClientByID(ctx context.Context, id string, user domain.User) (*domain.Client, error)
	AllocationsForRequirement(ctx context.Context, requirementID string) ([]domain.Allocation, error)
	Ping(ctx context.Context) error
}
