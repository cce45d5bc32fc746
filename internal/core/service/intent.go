package service

import "strings"

// Intent is the coarse category of a chat question, used to decide which
// data to fetch.
type Intent string

const (
	IntentRequirement Intent = "requirement"
	IntentClient      Intent = "client"
	IntentAllocations Intent = "allocations"
	IntentGeneral     Intent = "general"
)

var (
	requirementKeywords = []string{"requirement", "opening", "req ", "req-", "r-"}
	clientKeyword       = "client"
	allocationKeywords  = []string{"my allocations", "my requirements", "allocated", "assigned to me", "recruiter"}
)

// Classify maps a message to an intent by case-insensitive substring match.
// Requirement keywords are checked first, then client, then allocations.
func Classify(message string) Intent {
	ml := strings.ToLower(message)
	if containsAny(ml, requirementKeywords) {
		return IntentRequirement
	}
	if strings.Contains(ml, clientKeyword) {
		return IntentClient
	}
	if containsAny(ml, allocationKeywords) {
		return IntentAllocations
	}
	return IntentGeneral
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ExtractRequirementID returns the first R-<id> or REQ-<id> token in message,
// normalised to upper-case R-<id>, or "" when there is none.
func ExtractRequirementID(message string) string {
	cleaned := strings.NewReplacer("#", " ", ",", " ").Replace(message)
	for _, tok := range strings.Fields(cleaned) {
		upper := strings.ToUpper(strings.TrimRight(tok, ".?!;:)\"'"))
		var suffix string
		switch {
		case strings.HasPrefix(upper, "REQ-"):
			suffix = strings.TrimPrefix(upper, "REQ-")
		case strings.HasPrefix(upper, "R-"):
			suffix = strings.TrimPrefix(upper, "R-")
		default:
			continue
		}
		if suffix == "" {
			continue
		}
		return "R-" + suffix
	}
	return ""
}

// ExtractClientID returns the token that immediately follows the word
// "client", with its original casing, or "" when there is none.
func ExtractClientID(message string) string {
	parts := strings.Fields(message)
	for i, p := range parts {
		if strings.ToLower(p) != clientKeyword {
			continue
		}
		if i+1 < len(parts) {
			return strings.TrimRight(parts[i+1], ".?!;:,")
		}
		return ""
	}
	return ""
}
