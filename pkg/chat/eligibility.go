package chat

import "strings"

// Trigger tokens that make an assistant reply exportable as a roadmap PDF.
// English tokens match case-insensitively, Hindi tokens match exactly.
var (
	englishTriggerTokens = []string{"month", "roadmap"}
	hindiTriggerTokens   = []string{"महीने", "रोडमैप"}
)

// ExportEligible reports whether the last turn is an assistant reply that
// reads like a roadmap. An empty conversation is never eligible.
func ExportEligible(turns []Turn) bool {
	if len(turns) == 0 {
		return false
	}
	return IsRoadmapReply(turns[len(turns)-1])
}

// IsRoadmapReply applies the trigger-token heuristic to a single turn
func IsRoadmapReply(turn Turn) bool {
	if !turn.IsAssistant() || turn.Content == "" {
		return false
	}

	lower := strings.ToLower(turn.Content)
	for _, token := range englishTriggerTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	for _, token := range hindiTriggerTokens {
		if strings.Contains(turn.Content, token) {
			return true
		}
	}
	return false
}
