package service

import (
	"context"
	"testing"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

func TestAccessor_RequirementByID_RoleScoping(t *testing.T) {
	acc := NewAccessor(newStubATSRepo(), discardLogger)
	ctx := context.Background()

	if got := acc.RequirementByID(ctx, "R-1", adminUser); got == nil {
		t.Error("admin should see R-1")
	}
	if got := acc.RequirementByID(ctx, "R-1", recruiterUser); got == nil {
		t.Error("allocated recruiter should see R-1")
	}
	if got := acc.RequirementByID(ctx, "R-2", recruiterUser); got != nil {
		t.Errorf("recruiter without allocation must not see R-2, got %+v", got)
	}
	if got := acc.RequirementByID(ctx, "R-1", clientUser); got == nil || got.ClientID != "10" {
		t.Errorf("client should see own requirement, got %+v", got)
	}
	if got := acc.RequirementByID(ctx, "R-2", clientUser); got != nil {
		t.Errorf("client must not see foreign requirement, got %+v", got)
	}
	unknown := domain.User{ID: "x", Role: domain.Role("GUEST")}
	if got := acc.RequirementByID(ctx, "R-1", unknown); got != nil {
		t.Errorf("unknown role must see nothing, got %+v", got)
	}
}

func TestAccessor_MissingIDSkipsRepository(t *testing.T) {
	repo := newStubATSRepo()
	acc := NewAccessor(repo, discardLogger)
	ctx := context.Background()

	if acc.RequirementByID(ctx, "", adminUser) != nil {
		t.Error("expected nil for empty id")
	}
	if acc.ClientByID(ctx, "  ", adminUser) != nil {
		t.Error("expected nil for blank id")
	}
	if got := acc.RequirementsForRecruiter(ctx, ""); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
	if len(repo.calls) != 0 {
		t.Errorf("repository should not be called, got %v", repo.calls)
	}
}

func TestAccessor_DatabaseDownReadsAsAbsence(t *testing.T) {
	repo := newStubATSRepo()
	repo.down = true
	acc := NewAccessor(repo, discardLogger)
	ctx := context.Background()

	if acc.RequirementByID(ctx, "R-1", adminUser) != nil {
		t.Error("expected nil when database is down")
	}
	if acc.ClientByID(ctx, "10", adminUser) != nil {
		t.Error("expected nil when database is down")
	}
	if got := acc.AllocationsForRequirement(ctx, "R-1"); got == nil || len(got) != 0 {
		t.Errorf("expected empty list, got %#v", got)
	}
	if got := acc.RequirementsForClient(ctx, "10"); got == nil || len(got) != 0 {
		t.Errorf("expected empty list, got %#v", got)
	}
}

func TestAccessor_ClientByID_RoleScoping(t *testing.T) {
	acc := NewAccessor(newStubATSRepo(), discardLogger)
	ctx := context.Background()

	if acc.ClientByID(ctx, "20", adminUser) == nil {
		t.Error("admin should see any client")
	}
	if acc.ClientByID(ctx, "10", recruiterUser) == nil {
		t.Error("recruiter allocated to an Acme requirement should see Acme")
	}
	if acc.ClientByID(ctx, "20", recruiterUser) != nil {
		t.Error("recruiter without allocation must not see Globex")
	}
	if acc.ClientByID(ctx, "10", clientUser) == nil {
		t.Error("client should see itself")
	}
	if acc.ClientByID(ctx, "20", clientUser) != nil {
		t.Error("client must not see another client")
	}
}

func TestAccessor_UnsupportedEntities(t *testing.T) {
	acc := NewAccessor(newStubATSRepo(), discardLogger)
	ctx := context.Background()

	if acc.CandidateByName(ctx, "Jane", adminUser) != nil {
		t.Error("candidates are not supported")
	}
	if got := acc.CandidateTrack(ctx, "c-1", adminUser); len(got) != 0 {
		t.Errorf("expected empty track, got %v", got)
	}
	if got := acc.InterviewsForCandidate(ctx, "c-1", adminUser); len(got) != 0 {
		t.Errorf("expected no interviews, got %v", got)
	}
}
