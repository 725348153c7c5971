package agents

import (
	"context"
	"fmt"
	"strings"
)

var policyKeywords = []string{
	"policy", "benefit", "eligibility", "credit limit", "fee",
	"rewards", "program", "insurance", "protection", "coverage",
	"annual fee", "interest rate", "apr", "cash advance",
	"foreign transaction", "travel", "purchase protection",
	"extended warranty", "what is", "explain", "tell me about",
	"how does", "what are the",
}

var policyEscalationTriggers = []string{
	"complaint", "dispute policy", "disagree with", "unfair", "manager", "supervisor",
}

// PolicyAgent answers card policy, benefit, and fee questions, grounded
// on the indexed policy documents when retrieval finds any.
type PolicyAgent struct {
	tools *Tools
}

func NewPolicyAgent(tools *Tools) *PolicyAgent {
	return &PolicyAgent{tools: tools}
}

func (a *PolicyAgent) ID() string    { return "policy" }
func (a *PolicyAgent) Label() string { return "PolicyAgent" }

func (a *PolicyAgent) CanHandle(state *TurnState) (bool, float64) {
	if state.Intent == IntentPolicyQuery {
		return true, 0.95
	}
	switch matches := countKeywordMatches(state.Query, policyKeywords); {
	case matches >= 2:
		return true, 0.90
	case matches == 1:
		return true, 0.70
	}
	return false, 0.0
}

func (a *PolicyAgent) Execute(ctx context.Context, state *TurnState) (*Response, error) {
	state.AddStep(a.Label(), "searching_policy_documents",
		fmt.Sprintf("Searching corporate card policy documents for: %s", state.Query),
		"rag_search", nil)

	search := a.tools.RAGSearch(ctx, state.Query)
	grounded := search.Success && strings.TrimSpace(search.Context) != ""

	if grounded {
		state.AddStep(a.Label(), "documents_retrieved",
			"Found relevant document sections", "", nil)
	} else {
		state.AddStep(a.Label(), "no_documents_found",
			"No policy documents found, will answer from general knowledge", "", nil)
	}

	state.AddStep(a.Label(), "generating_response",
		"Generating policy answer using retrieved documents", "call_llm", nil)

	text, err := a.tools.CallLLM(ctx, a.buildPrompt(state.Query, search.Context, grounded), 1024)
	if err != nil {
		return formatResponse(a.Label(),
			"I'm having trouble processing your question right now. Please try again in a moment, or I can connect you with a support specialist.",
			[]string{"Try again", "Contact support"}, nil), nil
	}

	state.MergeContext(map[string]interface{}{
		"support_category":  "policy",
		"last_policy_query": state.Query,
	})

	state.AddStep(a.Label(), "response_complete",
		"Successfully answered policy question", "", nil)

	return formatResponse(a.Label(), text, a.followUps(state.Query), nil), nil
}

func (a *PolicyAgent) buildPrompt(query, grounding string, grounded bool) string {
	if grounded {
		return fmt.Sprintf(`You are a corporate card policy expert assistant. Answer the cardholder's question using the policy information below.

POLICY INFORMATION:
%s

Cardholder's Question: %s

Instructions:
1. Answer the question directly and professionally
2. If the policy information above contains the answer, use it and cite the source names
3. If it does not, provide a helpful general answer based on common corporate card practices
4. Include specific policy details (fees, limits, percentages) when available
5. Be concise but comprehensive
6. Never mention searching, retrieving, or consulting documents; if you must defer, say "For specific details on this, please check your cardholder agreement or contact your account administrator."

Provide your answer now:`, grounding, query)
	}

	return fmt.Sprintf(`You are a corporate card policy expert assistant. Answer the cardholder's question about corporate card policies.

NOTE: Specific policy documents are not available for this query, so provide a helpful general answer based on common corporate card practices.

Cardholder's Question: %s

Instructions:
1. Provide a helpful, professional answer about corporate card policies
2. Do NOT make up specific fees, rates, or limits; speak in general terms
3. Suggest they contact support for specific policy details if needed
4. Do NOT mention that documents are unavailable or missing; just answer naturally

Provide your answer now:`, query)
}

func (a *PolicyAgent) followUps(query string) []string {
	q := strings.ToLower(query)
	switch {
	case containsAny(q, []string{"fee", "charge", "cost"}):
		return []string{"What other fees apply?", "How can I avoid fees?", "View fee schedule"}
	case containsAny(q, []string{"reward", "point", "redeem"}):
		return []string{"How do I redeem rewards?", "Check my rewards balance", "What's my earning rate?"}
	case containsAny(q, []string{"travel", "international", "foreign"}):
		return []string{"Travel insurance details", "Foreign transaction fees", "Travel notification"}
	case containsAny(q, []string{"benefit", "insurance", "protection"}):
		return []string{"How to file a claim", "Coverage limits", "View all benefits"}
	default:
		return []string{"View all card benefits", "Fee schedule", "Ask another policy question"}
	}
}

func (a *PolicyAgent) ShouldEscalate(state *TurnState) (bool, string) {
	q := strings.ToLower(state.Query)
	for _, trigger := range policyEscalationTriggers {
		if strings.Contains(q, trigger) {
			return true, fmt.Sprintf("Policy complaint or dispute detected: %s", trigger)
		}
	}
	return false, ""
}
