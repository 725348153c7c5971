package agents

import (
	"context"
	"strings"
)

// Agent is the capability interface every responder implements.
// CanHandle and ShouldEscalate are pure predicates; Execute may mutate
// the state's context (merge-only) and append Steps.
type Agent interface {
	ID() string
	Label() string
	CanHandle(state *TurnState) (bool, float64)
	Execute(ctx context.Context, state *TurnState) (*Response, error)
	ShouldEscalate(state *TurnState) (bool, string)
}

// countKeywordMatches is the shared capability heuristic: substring
// matching over a lowercased query.
func countKeywordMatches(query string, keywords []string) int {
	q := strings.ToLower(query)
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			matches++
		}
	}
	return matches
}

func containsAny(query string, words []string) bool {
	q := strings.ToLower(query)
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

func formatResponse(agentLabel, text string, followUps []string, quote map[string]interface{}) *Response {
	if followUps == nil {
		followUps = []string{}
	}
	return &Response{
		Text:            text,
		FollowUpOptions: followUps,
		Quote:           quote,
		AgentName:       agentLabel,
	}
}
