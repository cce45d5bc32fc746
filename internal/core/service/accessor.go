package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/thinqor/ats-assistant/internal/pkg/metrics"
	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

// Accessor exposes role-scoped ATS reads that never fail: a missing id, a
// record the user may not see and an unreachable database all read as
// absence. The distinction is kept in logs and metrics.
type Accessor struct {
	repo ports.ATSRepository
	log  zerolog.Logger
}

// NewAccessor wraps repo.
func NewAccessor(repo ports.ATSRepository, log zerolog.Logger) *Accessor {
	return &Accessor{repo: repo, log: log}
}

// RequirementByID returns the requirement if user may see it, else nil.
func (a *Accessor) RequirementByID(ctx context.Context, id string, user domain.User) *domain.Requirement {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	req, err := a.repo.RequirementByID(ctx, id, user)
	a.observe("requirement_by_id", err)
	if err != nil {
		return nil
	}
	return req
}

// RequirementForScreening returns the requirement if user may screen
// against it, else nil.
func (a *Accessor) RequirementForScreening(ctx context.Context, id string, user domain.User) *domain.Requirement {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	req, err := a.repo.RequirementForScreening(ctx, id, user)
	a.observe("requirement_for_screening", err)
	if err != nil {
		return nil
	}
	return req
}

// RequirementsForRecruiter lists the requirements allocated to recruiterID,
// newest first.
func (a *Accessor) RequirementsForRecruiter(ctx context.Context, recruiterID string) []domain.RequirementSummary {
	if strings.TrimSpace(recruiterID) == "" {
		return []domain.RequirementSummary{}
	}
	list, err := a.repo.RequirementsForRecruiter(ctx, recruiterID)
	a.observeList("requirements_for_recruiter", len(list), err)
	if err != nil || list == nil {
		return []domain.RequirementSummary{}
	}
	return list
}

// RequirementsForClient lists the requirements of clientID, newest first.
func (a *Accessor) RequirementsForClient(ctx context.Context, clientID string) []domain.RequirementSummary {
	if strings.TrimSpace(clientID) == "" {
		return []domain.RequirementSummary{}
	}
	list, err := a.repo.RequirementsForClient(ctx, clientID)
	a.observeList("requirements_for_client", len(list), err)
	if err != nil || list == nil {
		return []domain.RequirementSummary{}
	}
	return list
}

// ClientByID returns the client record if user may see it, else nil.
func (a *Accessor) ClientByID(ctx context.Context, id string, user domain.User) *domain.Client {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	client, err := a.repo.ClientByID(ctx, id, user)
	a.observe("client_by_id", err)
	if err != nil {
		return nil
	}
	return client
}

// AllocationsForRequirement lists the recruiters allocated to a requirement.
// It does not check visibility; callers must have already done so.
func (a *Accessor) AllocationsForRequirement(ctx context.Context, requirementID string) []domain.Allocation {
	if strings.TrimSpace(requirementID) == "" {
		return []domain.Allocation{}
	}
	list, err := a.repo.AllocationsForRequirement(ctx, requirementID)
	a.observeList("allocations_for_requirement", len(list), err)
	if err != nil || list == nil {
		return []domain.Allocation{}
	}
	return list
}

// CandidateByName always returns nil: the schema has no candidates table.
// Callers must read nil as "not supported", not "not found".
func (a *Accessor) CandidateByName(_ context.Context, _ string, _ domain.User) *domain.Candidate {
	return nil
}

// CandidateTrack always returns an empty list: there is no tracking table.
func (a *Accessor) CandidateTrack(_ context.Context, _ string, _ domain.User) []map[string]any {
	return []map[string]any{}
}

// InterviewsForCandidate always returns an empty list: there is no
// interviews table.
func (a *Accessor) InterviewsForCandidate(_ context.Context, _ string, _ domain.User) []map[string]any {
	return []map[string]any{}
}

func (a *Accessor) observe(op string, err error) {
	switch {
	case err == nil:
		metrics.AccessorResultsTotal.WithLabelValues(op, "ok").Inc()
	case errors.Is(err, domain.ErrNotFound):
		metrics.AccessorResultsTotal.WithLabelValues(op, "empty").Inc()
	default:
		metrics.AccessorResultsTotal.WithLabelValues(op, "unavailable").Inc()
		a.log.Warn().Err(err).Str("operation", op).Msg("ats data unavailable, returning empty result")
	}
}

func (a *Accessor) observeList(op string, n int, err error) {
	if err == nil && n == 0 {
		err = domain.ErrNotFound
	}
	a.observe(op, err)
}
