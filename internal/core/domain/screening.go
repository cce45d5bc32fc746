package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Recommendation is the screening verdict.
type Recommendation string

const (
	RecommendShortlisted    Recommendation = "SHORTLISTED"
	RecommendRejected       Recommendation = "REJECTED"
	RecommendNeedsInterview Recommendation = "NEEDS_INTERVIEW"
)

// Skills holds a skill field that may be a delimited string or a list.
type Skills struct {
	Raw  string
	List []string
}

// UnmarshalJSON accepts either a string or an array of strings.
func (s *Skills) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = Skills{}
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = Skills{List: list}
		return nil
	default:
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = Skills{Raw: raw}
		return nil
	}
}

// MarshalJSON writes the list form when present, else the raw string.
func (s Skills) MarshalJSON() ([]byte, error) {
	if s.List != nil {
		return json.Marshal(s.List)
	}
	return json.Marshal(s.Raw)
}

// IsEmpty reports whether no skills were provided in either form. A list of
// blank entries is empty.
func (s Skills) IsEmpty() bool {
	if strings.TrimSpace(s.Raw) != "" {
		return false
	}
	for _, skill := range s.List {
		if strings.TrimSpace(skill) != "" {
			return false
		}
	}
	return true
}

// String renders the skills for prompts.
func (s Skills) String() string {
	if s.List != nil {
		return strings.Join(s.List, ", ")
	}
	return s.Raw
}

// Experience is a years-of-experience value that may arrive as a number,
// a numeric string or garbage. Garbage is kept verbatim and reads as zero.
type Experience string

// UnmarshalJSON keeps the raw token text of numbers and strings.
func (e *Experience) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = Experience(s)
		return nil
	}
	*e = Experience(data)
	return nil
}

// Years parses the value, defaulting to 0. NaN and infinities read as 0.
func (e Experience) Years() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(e)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Candidate is the applicant profile submitted for screening. There is no
// candidate table; the caller supplies the profile inline.
type Candidate struct {
	Name       string     `json:"name"`
	Skills     Skills     `json:"skills"`
	Experience Experience `json:"experience"`
	Education  string     `json:"education"`
}

// ScreeningResult is the outcome of scoring a candidate against a requirement.
type ScreeningResult struct {
	Score     float64        `json:"score"`
	Rationale []string       `json:"rationale"`
	RedFlags  []string       `json:"red_flags"`
	Recommend Recommendation `json:"recommend"`
	Source    string         `json:"source"`
}

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)
