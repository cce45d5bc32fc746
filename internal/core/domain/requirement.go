package domain

import "time"

// Requirement is a job opening owned by a client and worked by allocated
// recruiters.
type Requirement struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Location           string    `json:"location"`
	Status             string    `json:"status"`
	ClientID           string    `json:"client_id"`
	ClientName         string    `json:"client_name,omitempty"`
	CreatedBy          string    `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
	SkillsRequired     string    `json:"skills_required"`
	ExperienceRequired float64   `json:"experience_required"`
	Description        string    `json:"description"`
}

// RequirementSummary is the list row used when several requirements are
// returned at once.
type RequirementSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Location   string `json:"location"`
	Status     string `json:"status"`
	ClientName string `json:"client_name,omitempty"`
}

// Client is the contact record of a hiring company.
type Client struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

// Allocation grants a recruiter visibility into a requirement.
type Allocation struct {
	RecruiterID   string `json:"recruiter_id"`
	RecruiterName string `json:"recruiter_name"`
}
