package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

// SystemPrompt is the fixed instruction block sent with every chat request.
const SystemPrompt = "You are an ATS assistant. Answer ONLY from the CONTEXT. The current database " +
	"contains: requirements, requirement_allocations, clients, users. It does NOT contain " +
	"candidate or interview tables. If the user asks for candidates or interviews, clearly say that the " +
	"current ATS database doesn't have those tables and offer requirement/client/allocation info instead. " +
	"Obey role rules: admin can access everything; recruiter may access requirements allocated to them; " +
	"client may only access requirements where client_id matches their id. Never invent data. If a record or " +
	"access is missing, say so directly and propose related information available (e.g., requirement details, client data, allocations)."

const notProvided = "Not provided"

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

// BuildScreeningPrompt renders the screening instructions. Missing fields are
// replaced by placeholders so an incomplete record never breaks the call.
func BuildScreeningPrompt(candidate domain.Candidate, req domain.Requirement) string {
	experience := orDefault(string(candidate.Experience), notProvided)

	skills := notProvided
	if !candidate.Skills.IsEmpty() {
		skills = candidate.Skills.String()
	}

	reqExperience := notProvided
	if req.ExperienceRequired > 0 {
		reqExperience = strconv.FormatFloat(req.ExperienceRequired, 'f', -1, 64)
	}

	var b strings.Builder
	b.WriteString("You are an AI recruiter. Evaluate the candidate against the requirement.\n")
	b.WriteString("Base your judgement strictly on the provided data. Never hallucinate new facts.\n\n")

	b.WriteString("Candidate:\n")
	fmt.Fprintf(&b, "Name: %s\n", orDefault(candidate.Name, "Unknown Candidate"))
	fmt.Fprintf(&b, "Skills: %s\n", skills)
	fmt.Fprintf(&b, "Experience: %s\n", experience)
	fmt.Fprintf(&b, "Education: %s\n\n", orDefault(candidate.Education, notProvided))

	b.WriteString("Requirement:\n")
	fmt.Fprintf(&b, "Title: %s\n", orDefault(req.Title, "Unknown Role"))
	fmt.Fprintf(&b, "Skills Required: %s\n", orDefault(req.SkillsRequired, notProvided))
	fmt.Fprintf(&b, "Experience Needed: %s\n", reqExperience)
	fmt.Fprintf(&b, "Description: %s\n\n", orDefault(req.Description, notProvided))

	b.WriteString(`Return ONLY clean JSON:
{
  "score": 85,
  "rationale": ["point 1", "point 2", "point 3"],
  "recommend": "SHORTLISTED|REJECTED|NEEDS_INTERVIEW",
  "red_flags": []
}`)
	return b.String()
}
