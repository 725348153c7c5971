package dto

import (
	"time"

	"cardassist-be/pkg/agents"
)

type ChatMessageDTO struct {
	Text   string `json:"text" validate:"required"`
	IsUser bool   `json:"isUser"`
}

type ChatRequest struct {
	SessionID string                 `json:"session_id"`
	UserID    string                 `json:"user_id"`
	Messages  []ChatMessageDTO       `json:"messages" validate:"required,min=1,dive"`
	Context   map[string]interface{} `json:"context"`
}

type AgentStepDTO struct {
	AgentName  string                 `json:"agent_name"`
	Action     string                 `json:"action"`
	Details    string                 `json:"details"`
	Timestamp  time.Time              `json:"timestamp"`
	ToolUsed   string                 `json:"tool_used,omitempty"`
	ToolOutput map[string]interface{} `json:"tool_output,omitempty"`
}

type AgentHandoffDTO struct {
	FromAgent string    `json:"from_agent"`
	ToAgent   string    `json:"to_agent"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatResponse struct {
	SessionID       string                 `json:"session_id"`
	Text            string                 `json:"text"`
	ActiveAgent     string                 `json:"active_agent"`
	ConsultedAgents []string               `json:"consulted_agents"`
	AgentSteps      []AgentStepDTO         `json:"agent_steps"`
	AgentHandoffs   []AgentHandoffDTO      `json:"agent_handoffs"`
	FollowUpOptions []string               `json:"follow_up_options"`
	Quote           map[string]interface{} `json:"quote,omitempty"`
	Context         map[string]interface{} `json:"context"`
	ConfidenceScore float64                `json:"confidence_score"`
	Ticket          *agents.Ticket         `json:"ticket,omitempty"`
	Error           string                 `json:"error,omitempty"`
}
