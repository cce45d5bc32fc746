package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

// stubATSRepo applies the same visibility rules as the SQL repository.
type stubATSRepo struct {
	requirements map[string]domain.Requirement
	clients      map[string]domain.Client
	allocations  map[string][]domain.Allocation // requirement id -> recruiters
	down         bool                           // simulates an unreachable database

	calls []string
}

func newStubATSRepo() *stubATSRepo {
	return &stubATSRepo{
		requirements: map[string]domain.Requirement{
			"R-1": {ID: "R-1", Title: "Go Engineer", ClientID: "10", ClientName: "Acme", CreatedBy: "u-admin", SkillsRequired: "go, sql", ExperienceRequired: 3},
			"R-2": {ID: "R-2", Title: "Data Analyst", ClientID: "20", ClientName: "Globex", CreatedBy: "u-rec-2"},
		},
		clients: map[string]domain.Client{
			"10": {ID: "10", Name: "Acme"},
			"20": {ID: "20", Name: "Globex"},
		},
		allocations: map[string][]domain.Allocation{
			"R-1": {{RecruiterID: "u-rec-1", RecruiterName: "Rita"}},
		},
	}
}

func (r *stubATSRepo) allocated(reqID, recruiterID string) bool {
	for _, a := range r.allocations[reqID] {
		if a.RecruiterID == recruiterID {
			return true
		}
	}
	return false
}

func (r *stubATSRepo) RequirementByID(_ context.Context, id string, user domain.User) (*domain.Requirement, error) {
	r.calls = append(r.calls, "RequirementByID:"+id)
	if r.down {
		return nil, fmt.Errorf("query: %w", domain.ErrDataUnavailable)
	}
	req, ok := r.requirements[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	switch user.Role {
	case domain.RoleAdmin:
	case domain.RoleRecruiter:
		if !r.allocated(id, user.ID.String()) {
			return nil, domain.ErrNotFound
		}
	case domain.RoleClient:
		if req.ClientID != user.ClientID.String() {
			return nil, domain.ErrNotFound
		}
	default:
		return nil, domain.ErrNotFound
	}
	return &req, nil
}

func (r *stubATSRepo) RequirementForScreening(ctx context.Context, id string, user domain.User) (*domain.Requirement, error) {
	if user.Role == domain.RoleRecruiter {
		if req, ok := r.requirements[id]; ok && req.CreatedBy == user.ID.String() {
			return &req, nil
		}
	}
	return r.RequirementByID(ctx, id, user)
}

func (r *stubATSRepo) RequirementsForRecruiter(_ context.Context, recruiterID string) ([]domain.RequirementSummary, error) {
	r.calls = append(r.calls, "RequirementsForRecruiter:"+recruiterID)
	if r.down {
		return nil, domain.ErrDataUnavailable
	}
	var out []domain.RequirementSummary
	for id, req := range r.requirements {
		if r.allocated(id, recruiterID) {
			out = append(out, domain.RequirementSummary{ID: req.ID, Title: req.Title, ClientName: req.ClientName})
		}
	}
	return out, nil
}

func (r *stubATSRepo) RequirementsForClient(_ context.Context, clientID string) ([]domain.RequirementSummary, error) {
	r.calls = append(r.calls, "RequirementsForClient:"+clientID)
	if r.down {
		return nil, domain.ErrDataUnavailable
	}
	var out []domain.RequirementSummary
	for _, req := range r.requirements {
		if req.ClientID == clientID {
			out = append(out, domain.RequirementSummary{ID: req.ID, Title: req.Title})
		}
	}
	return out, nil
}

func (r *stubATSRepo) ClientByID(_ context.Context, id string, user domain.User) (*domain.Client, error) {
	r.calls = append(r.calls, "ClientByID:"+id)
	if r.down {
		return nil, domain.ErrDataUnavailable
	}
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	switch user.Role {
	case domain.RoleAdmin:
	case domain.RoleRecruiter:
		visible := false
		for reqID, req := range r.requirements {
			if req.ClientID == id && r.allocated(reqID, user.ID.String()) {
				visible = true
			}
		}
		if !visible {
			return nil, domain.ErrNotFound
		}
	case domain.RoleClient:
		if user.ClientID.String() != id {
			return nil, domain.ErrNotFound
		}
	default:
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *stubATSRepo) AllocationsForRequirement(_ context.Context, requirementID string) ([]domain.Allocation, error) {
	r.calls = append(r.calls, "AllocationsForRequirement:"+requirementID)
	if r.down {
		return nil, domain.ErrDataUnavailable
	}
	return r.allocations[requirementID], nil
}

func (r *stubATSRepo) Ping(context.Context) error {
	if r.down {
		return domain.ErrDataUnavailable
	}
	return nil
}

// ---------------------------------------------------------------------------
// Model, cache and audit stubs
// ---------------------------------------------------------------------------

type stubChatModel struct {
	answer string
	err    error
	panic  bool

	gotSystem   string
	gotData     any
	gotQuestion string
}

func (m *stubChatModel) Answer(_ context.Context, system string, data any, question string) (string, error) {
	m.gotSystem, m.gotData, m.gotQuestion = system, data, question
	if m.panic {
		panic("boom")
	}
	return m.answer, m.err
}

type stubScreeningModel struct {
	result    *domain.ScreeningResult
	err       error
	gotPrompt string
	calls     int
}

func (m *stubScreeningModel) Evaluate(_ context.Context, prompt string) (*domain.ScreeningResult, error) {
	m.calls++
	m.gotPrompt = prompt
	return m.result, m.err
}

type stubScreeningCache struct {
	stored map[string]*domain.ScreeningResult
	getErr error
}

func newStubScreeningCache() *stubScreeningCache {
	return &stubScreeningCache{stored: map[string]*domain.ScreeningResult{}}
}

func (c *stubScreeningCache) Get(_ context.Context, requirementID string, cand domain.Candidate) (*domain.ScreeningResult, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.stored[requirementID+"/"+cand.Name], nil
}

func (c *stubScreeningCache) Set(_ context.Context, requirementID string, cand domain.Candidate, res *domain.ScreeningResult) error {
	c.stored[requirementID+"/"+cand.Name] = res
	return nil
}

type recordingSink struct {
	mu        sync.Mutex
	exchanges []domain.ChatExchange
}

func (s *recordingSink) Enqueue(e domain.ChatExchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = append(s.exchanges, e)
}

var (
	discardLogger = zerolog.Nop()

	adminUser     = domain.User{ID: "u-admin", Role: domain.RoleAdmin}
	recruiterUser = domain.User{ID: "u-rec-1", Role: domain.RoleRecruiter}
	otherRecUser  = domain.User{ID: "u-rec-2", Role: domain.RoleRecruiter}
	clientUser    = domain.User{ID: "u-client", Role: domain.RoleClient, ClientID: "10"}
)

var _ ports.ATSRepository = (*stubATSRepo)(nil)
