package store

import (
	"context"
	"time"
)

// TurnSummary is the per-turn footprint kept for follow-up questions.
type TurnSummary struct {
	Query       string    `json:"query"`
	Intent      string    `json:"intent"`
	AgentsUsed  []string  `json:"agents_used"`
	TicketID    string    `json:"ticket_id,omitempty"`
	RespondedAt time.Time `json:"responded_at"`
}

// ConversationContext is the rolling state of one chat session.
type ConversationContext struct {
	SessionID  string        `json:"session_id"`
	UserID     string        `json:"user_id"`
	History    []TurnSummary `json:"history"`
	LastIntent string        `json:"last_intent"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// MaxHistory bounds the rolling window kept per session.
const MaxHistory = 10

// Append records a turn, trimming the oldest entries past MaxHistory.
func (c *ConversationContext) Append(turn TurnSummary) {
	c.History = append(c.History, turn)
	if len(c.History) > MaxHistory {
		c.History = c.History[len(c.History)-MaxHistory:]
	}
	c.LastIntent = turn.Intent
	c.UpdatedAt = turn.RespondedAt
}

// ContextStore persists conversation context between turns. Backed by
// process memory or Redis depending on deployment.
type ContextStore interface {
	Save(ctx context.Context, conversation *ConversationContext) error
	Get(ctx context.Context, sessionID string) (*ConversationContext, bool, error)
	Delete(ctx context.Context, sessionID string) error
}
