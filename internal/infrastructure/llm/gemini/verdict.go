package gemini

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

var errNoJSON = errors.New("no JSON object in model output")

type verdict struct {
	Score     float64  `json:"score"`
	Rationale []string `json:"rationale"`
	Recommend string   `json:"recommend"`
	RedFlags  []string `json:"red_flags"`
}

// extractJSON returns the span from the first '{' to the last '}' so that
// prose or code fences around the object are ignored.
func extractJSON(text string) (string, error) {
	block := jsonBlock.FindString(text)
	if block == "" {
		return "", errNoJSON
	}
	return block, nil
}

func decodeVerdict(text string) (*domain.ScreeningResult, error) {
	block, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	var v verdict
	if err := json.Unmarshal([]byte(block), &v); err != nil {
		return nil, err
	}

	res := &domain.ScreeningResult{
		Score:     v.Score,
		Rationale: v.Rationale,
		RedFlags:  v.RedFlags,
		Recommend: domain.Recommendation(strings.ToUpper(strings.TrimSpace(v.Recommend))),
		Source:    domain.SourceLLM,
	}
	if res.Rationale == nil {
		res.Rationale = []string{}
	}
	if res.RedFlags == nil {
		res.RedFlags = []string{}
	}
	return res, nil
}
