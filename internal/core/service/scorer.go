package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

// ScoringThresholds holds the hand-tuned constants of the fallback scorer.
type ScoringThresholds struct {
	Base             float64
	OverlapWeight    float64
	ExperienceWeight float64
	Floor            float64
	Ceiling          float64
	Shortlist        float64
	Reject           float64
	LowOverlapRatio  float64
}

// DefaultThresholds returns the production scoring constants.
func DefaultThresholds() ScoringThresholds {
	return ScoringThresholds{
		Base:             40,
		OverlapWeight:    40,
		ExperienceWeight: 4,
		Floor:            20,
		Ceiling:          100,
		Shortlist:        75,
		Reject:           45,
		LowOverlapRatio:  0.3,
	}
}

const (
	redFlagLowOverlap      = "Low skill overlap with requirement"
	redFlagBelowExperience = "Below required years of experience"
)

var skillSeparators = regexp.MustCompile(`[,/|]`)

// SkillSet normalises a skill field into a lower-cased set. Strings are split
// on comma, slash and pipe; lists are taken as-is.
func SkillSet(s domain.Skills) map[string]struct{} {
	items := s.List
	if items == nil {
		if strings.TrimSpace(s.Raw) == "" {
			return map[string]struct{}{}
		}
		items = skillSeparators.Split(s.Raw, -1)
	}
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		set[item] = struct{}{}
	}
	return set
}

// FallbackScore computes a deterministic screening result from skill overlap
// and experience. cause explains why the LLM was not used and is appended to
// the rationale when non-empty.
func FallbackScore(t ScoringThresholds, candidate domain.Candidate, req domain.Requirement, cause string) *domain.ScreeningResult {
	candSkills := SkillSet(candidate.Skills)
	reqSkills := SkillSet(domain.Skills{Raw: req.SkillsRequired})

	overlap := 0
	for s := range candSkills {
		if _, ok := reqSkills[s]; ok {
			overlap++
		}
	}
	required := len(reqSkills)
	if required == 0 {
		required = 1
	}

	experience := candidate.Experience.Years()
	ratio := float64(overlap) / float64(required)

	score := t.Base + ratio*t.OverlapWeight + experience*t.ExperienceWeight
	score = math.Min(t.Ceiling, math.Max(t.Floor, score))
	score = math.Round(score*100) / 100

	rationale := []string{
		fmt.Sprintf("Matched %d out of %d required skills", overlap, required),
		fmt.Sprintf("Candidate experience considered at %s years", strconv.FormatFloat(experience, 'f', -1, 64)),
	}
	if cause != "" {
		rationale = append(rationale, fmt.Sprintf("Score generated via fallback logic (%s).", cause))
	}

	redFlags := []string{}
	if ratio < t.LowOverlapRatio {
		redFlags = append(redFlags, redFlagLowOverlap)
	}
	if experience < req.ExperienceRequired {
		redFlags = append(redFlags, redFlagBelowExperience)
	}

	return &domain.ScreeningResult{
		Score:     score,
		Rationale: rationale,
		RedFlags:  redFlags,
		Recommend: recommend(t, score),
		Source:    domain.SourceFallback,
	}
}

func recommend(t ScoringThresholds, score float64) domain.Recommendation {
	switch {
	case score >= t.Shortlist:
		return domain.RecommendShortlisted
	case score <= t.Reject:
		return domain.RecommendRejected
	default:
		return domain.RecommendNeedsInterview
	}
}
