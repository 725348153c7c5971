package store

import (
	"fmt"
	"testing"
	"time"
)

func TestAppendUpdatesRollingState(t *testing.T) {
	c := &ConversationContext{SessionID: "s1"}
	respondedAt := time.Now()

	c.Append(TurnSummary{
		Query:       "what is my balance?",
		Intent:      "account",
		AgentsUsed:  []string{"account"},
		RespondedAt: respondedAt,
	})

	if len(c.History) != 1 {
		t.Fatalf("History length = %d, want 1", len(c.History))
	}
	if c.LastIntent != "account" {
		t.Errorf("LastIntent = %q, want %q", c.LastIntent, "account")
	}
	if !c.UpdatedAt.Equal(respondedAt) {
		t.Errorf("UpdatedAt = %v, want %v", c.UpdatedAt, respondedAt)
	}
}

func TestAppendTrimsOldestPastMaxHistory(t *testing.T) {
	c := &ConversationContext{SessionID: "s1"}
	for i := 0; i < MaxHistory+3; i++ {
		c.Append(TurnSummary{Query: fmt.Sprintf("q%d", i)})
	}

	if len(c.History) != MaxHistory {
		t.Fatalf("History length = %d, want %d", len(c.History), MaxHistory)
	}
	if c.History[0].Query != "q3" {
		t.Errorf("oldest kept = %q, want %q", c.History[0].Query, "q3")
	}
	if c.History[MaxHistory-1].Query != fmt.Sprintf("q%d", MaxHistory+2) {
		t.Errorf("newest = %q, want %q", c.History[MaxHistory-1].Query, fmt.Sprintf("q%d", MaxHistory+2))
	}
}
