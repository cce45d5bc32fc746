package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

// ─────────────────────────────────────────────────────────────────────────────
// SQL
// ─────────────────────────────────────────────────────────────────────────────

const requirementColumns = `
	r.id, r.title, r.location, r.status, r.client_id, c.name,
	r.created_by, r.created_at, r.skills_required, r.experience_required, r.description`

const (
	sqlRequirementAdmin = `
		SELECT` + requirementColumns + `
		FROM   requirements r
		LEFT JOIN clients c ON c.id = r.client_id
		WHERE  r.id = ?`

	sqlRequirementRecruiter = `
		SELECT DISTINCT` + requirementColumns + `
		FROM   requirements r
		JOIN   requirement_allocations ra ON ra.requirement_id = r.id
		LEFT JOIN clients c ON c.id = r.client_id
		WHERE  r.id = ? AND ra.recruiter_id = ?`

	sqlRequirementClient = `
		SELECT` + requirementColumns + `
		FROM   requirements r
		LEFT JOIN clients c ON c.id = r.client_id
		WHERE  r.id = ? AND r.client_id = ?`

	sqlRequirementRecruiterOrCreator = `
		SELECT DISTINCT` + requirementColumns + `
		FROM   requirements r
		LEFT JOIN requirement_allocations ra ON ra.requirement_id = r.id
		LEFT JOIN clients c ON c.id = r.client_id
		WHERE  r.id = ? AND (r.created_by = ? OR ra.recruiter_id = ?)`

	sqlRequirementsForRecruiter = `
		SELECT r.id, r.title, r.location, r.status, c.name
		FROM   requirements r
		JOIN   requirement_allocations ra ON ra.requirement_id = r.id
		LEFT JOIN clients c ON c.id = r.client_id
		WHERE  ra.recruiter_id = ?
		ORDER BY r.created_at DESC`

	sqlRequirementsForClient = `
		SELECT r.id, r.title, r.location, r.status, NULL
		FROM   requirements r
		WHERE  r.client_id = ?
		ORDER BY r.created_at DESC`

	sqlClientAdmin = `
		SELECT c.id, c.name, c.contact_person, c.email, c.phone
		FROM   clients c
		WHERE  c.id = ?`

	sqlClientRecruiter = `
		SELECT DISTINCT c.id, c.name, c.contact_person, c.email, c.phone
		FROM   clients c
		JOIN   requirements r ON r.client_id = c.id
		JOIN   requirement_allocations ra ON ra.requirement_id = r.id
		WHERE  c.id = ? AND ra.recruiter_id = ?`

	sqlAllocations = `
		SELECT ra.recruiter_id, u.name
		FROM   requirement_allocations ra
		LEFT JOIN users u ON u.id = ra.recruiter_id
		WHERE  ra.requirement_id = ?`
)

// ─────────────────────────────────────────────────────────────────────────────
// ATSRepository
// ─────────────────────────────────────────────────────────────────────────────

// ATSRepository runs read-only, role-scoped queries against the ATS schema.
// Every statement is parameterized and bounded by the query timeout.
type ATSRepository struct {
	db      *sql.DB
	timeout time.Duration
}

var _ ports.ATSRepository = (*ATSRepository)(nil)

// NewATSRepository returns a repository backed by db. A non-positive timeout
// falls back to the package default.
func NewATSRepository(db *sql.DB, timeout time.Duration) *ATSRepository {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &ATSRepository{db: db, timeout: timeout}
}

// RequirementByID returns the requirement when the user's role allows it:
// admins see all, recruiters only allocated ones, clients only their own.
func (r *ATSRepository) RequirementByID(ctx context.Context, id string, user domain.User) (*domain.Requirement, error) {
	switch domain.ParseRole(string(user.Role)) {
	case domain.RoleAdmin:
		return r.requirement(ctx, "requirement by id", sqlRequirementAdmin, id)
	case domain.RoleRecruiter:
		return r.requirement(ctx, "requirement by id", sqlRequirementRecruiter, id, user.ID.String())
	case domain.RoleClient:
		if user.ClientID.String() == "" {
			return nil, domain.ErrNotFound
		}
		return r.requirement(ctx, "requirement by id", sqlRequirementClient, id, user.ClientID.String())
	default:
		return nil, domain.ErrNotFound
	}
}

// RequirementForScreening is RequirementByID except that a recruiter may also
// screen against requirements they created.
func (r *ATSRepository) RequirementForScreening(ctx context.Context, id string, user domain.User) (*domain.Requirement, error) {
	if domain.ParseRole(string(user.Role)) == domain.RoleRecruiter {
		uid := user.ID.String()
		return r.requirement(ctx, "requirement for screening", sqlRequirementRecruiterOrCreator, id, uid, uid)
	}
	return r.RequirementByID(ctx, id, user)
}

// RequirementsForRecruiter lists requirements allocated to recruiterID, newest first.
func (r *ATSRepository) RequirementsForRecruiter(ctx context.Context, recruiterID string) ([]domain.RequirementSummary, error) {
	return r.summaries(ctx, "requirements for recruiter", sqlRequirementsForRecruiter, recruiterID)
}

// RequirementsForClient lists requirements of clientID, newest first.
func (r *ATSRepository) RequirementsForClient(ctx context.Context, clientID string) ([]domain.RequirementSummary, error) {
	return r.summaries(ctx, "requirements for client", sqlRequirementsForClient, clientID)
}

// ClientByID returns the client when the user's role allows it: admins see
// all, recruiters only clients they hold an allocation for, clients only
// themselves.
func (r *ATSRepository) ClientByID(ctx context.Context, id string, user domain.User) (*domain.Client, error) {
	switch domain.ParseRole(string(user.Role)) {
	case domain.RoleAdmin:
		return r.client(ctx, sqlClientAdmin, id)
	case domain.RoleRecruiter:
		return r.client(ctx, sqlClientRecruiter, id, user.ID.String())
	case domain.RoleClient:
		if user.ClientID.String() == "" || user.ClientID.String() != id {
			return nil, domain.ErrNotFound
		}
		return r.client(ctx, sqlClientAdmin, id)
	default:
		return nil, domain.ErrNotFound
	}
}

// AllocationsForRequirement lists recruiters allocated to requirementID.
// It does not apply any role filter.
func (r *ATSRepository) AllocationsForRequirement(ctx context.Context, requirementID string) ([]domain.Allocation, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, sqlAllocations, requirementID)
	if err != nil {
		return nil, unavailable("allocations for requirement", err)
	}
	defer rows.Close()

	out := []domain.Allocation{}
	for rows.Next() {
		var recruiterID, name sql.NullString
		if err := rows.Scan(&recruiterID, &name); err != nil {
			return nil, unavailable("allocations for requirement", err)
		}
		out = append(out, domain.Allocation{RecruiterID: recruiterID.String, RecruiterName: name.String})
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("allocations for requirement", err)
	}
	return out, nil
}

// Ping verifies the database is reachable.
func (r *ATSRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────────────────────

func (r *ATSRepository) requirement(ctx context.Context, op, query string, args ...any) (*domain.Requirement, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var (
		req                                           domain.Requirement
		title, location, status, clientID, clientName sql.NullString
		createdBy, skills, description                sql.NullString
		createdAt                                     sql.NullTime
		experience                                    sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&req.ID, &title, &location, &status, &clientID, &clientName,
		&createdBy, &createdAt, &skills, &experience, &description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable(op, err)
	}

	req.Title = title.String
	req.Location = location.String
	req.Status = status.String
	req.ClientID = clientID.String
	req.ClientName = clientName.String
	req.CreatedBy = createdBy.String
	req.CreatedAt = createdAt.Time
	req.SkillsRequired = skills.String
	req.ExperienceRequired = experience.Float64
	req.Description = description.String
	return &req, nil
}

func (r *ATSRepository) summaries(ctx context.Context, op, query string, arg string) ([]domain.RequirementSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	out := []domain.RequirementSummary{}
	for rows.Next() {
		var (
			s                                   domain.RequirementSummary
			title, location, status, clientName sql.NullString
		)
		if err := rows.Scan(&s.ID, &title, &location, &status, &clientName); err != nil {
			return nil, unavailable(op, err)
		}
		s.Title, s.Location, s.Status, s.ClientName = title.String, location.String, status.String, clientName.String
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	return out, nil
}

func (r *ATSRepository) client(ctx context.Context, query string, args ...any) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var (
		c                           domain.Client
		name, contact, email, phone sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &name, &contact, &email, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable("client by id", err)
	}
	c.Name, c.ContactPerson, c.Email, c.Phone = name.String, contact.String, email.String, phone.String
	return &c, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrDataUnavailable, err)
}
