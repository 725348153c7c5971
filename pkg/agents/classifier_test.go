package agents

import "testing"

func TestClassify(t *testing.T) {
	c := NewIntentClassifier()

	tests := []struct {
		name      string
		query     string
		intent    string
		multiwant bool
	}{
		{
			name:   "policy keyword",
			query:  "What is the annual fee waiver policy?",
			intent: IntentPolicyQuery,
		},
		{
			name:   "balance inquiry",
			query:  "How much of my credit limit is left?",
			intent: IntentAccountManagement,
		},
		{
			name:   "transaction inquiry",
			query:  "Show my recent purchase history",
			intent: IntentTransaction,
		},
		{
			name:   "dispute keyword",
			query:  "I need to file a dispute for this merchant",
			intent: IntentDisputeFiling,
		},
		{
			name:   "analytics request",
			query:  "Give me a monthly trend report of my budget",
			intent: IntentAnalyticsRequest,
		},
		{
			name:   "escalation request",
			query:  "I want to escalate this and talk to your supervisor",
			intent: IntentEscalation,
		},
		{
			name:   "no rule matched",
			query:  "Hello there",
			intent: IntentGeneralQuestion,
		},
		{
			name:      "two domains mentioned",
			query:     "What is the foreign transaction fee and what is my balance?",
			intent:    IntentMultiDomain,
			multiwant: true,
		},
		{
			name:      "three domains mentioned",
			query:     "Explain the cashback policy, my spending report and my account limit",
			intent:    IntentMultiDomain,
			multiwant: true,
		},
		{
			name:   "case insensitive",
			query:  "EXPLAIN THE POLICY",
			intent: IntentPolicyQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, multi := c.Classify(tt.query)
			if intent != tt.intent {
				t.Errorf("Classify(%q) intent = %q, want %q", tt.query, intent, tt.intent)
			}
			if multi != tt.multiwant {
				t.Errorf("Classify(%q) multiDomain = %v, want %v", tt.query, multi, tt.multiwant)
			}
		})
	}
}

func TestClassifyRulePriority(t *testing.T) {
	c := NewIntentClassifier()

	// "policy" and "escalate" both appear, but these words belong to a
	// single domain group, so the first matching rule wins.
	intent, multi := c.Classify("explain the escalation policy")
	if intent != IntentPolicyQuery {
		t.Errorf("intent = %q, want %q", intent, IntentPolicyQuery)
	}
	if multi {
		t.Error("multiDomain = true, want false")
	}
}
