package agents

import "strings"

// intentRules are evaluated in priority order; the first rule whose
// keywords match tags the turn.
var intentRules = []struct {
	intent   string
	keywords []string
}{
	{IntentPolicyQuery, []string{"policy", "benefit", "fee", "eligibility", "what is", "explain"}},
	{IntentAccountManagement, []string{"balance", "limit", "account", "credit", "authorized user"}},
	{IntentTransaction, []string{"transaction", "charge", "statement", "purchase"}},
	{IntentDisputeFiling, []string{"dispute", "fraud", "unauthorized"}},
	{IntentAnalyticsRequest, []string{"analytics", "spending", "trend", "report", "budget"}},
	{IntentEscalation, []string{"escalate", "manager", "complaint", "speak to"}},
}

// domainKeywords drives multi-domain detection. Mentioning two or more
// domains forces the multi_domain intent and collaboration.
var domainKeywords = map[string][]string{
	"policy":      {"policy", "benefit", "fee"},
	"account":     {"balance", "limit", "account"},
	"transaction": {"transaction", "charge"},
	"analytics":   {"analytics", "spending", "report"},
}

// IntentClassifier tags a turn with an intent. Pure and deterministic:
// same query, same answer, no error path.
type IntentClassifier struct{}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{}
}

// Classify returns the intent tag and whether the query spans multiple
// support domains.
func (c *IntentClassifier) Classify(query string) (string, bool) {
	q := strings.ToLower(query)

	intent := IntentGeneralQuestion
	for _, rule := range intentRules {
		if containsAny(q, rule.keywords) {
			intent = rule.intent
			break
		}
	}

	domainsMentioned := 0
	for _, keywords := range domainKeywords {
		if containsAny(q, keywords) {
			domainsMentioned++
		}
	}

	if domainsMentioned >= 2 {
		return IntentMultiDomain, true
	}
	return intent, false
}
