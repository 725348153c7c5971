package agents

import "time"

// Intent tags produced by the classifier.
const (
	IntentPolicyQuery       = "policy_query"
	IntentAccountManagement = "account_management"
	IntentTransaction       = "transaction_inquiry"
	IntentDisputeFiling     = "dispute_filing"
	IntentAnalyticsRequest  = "analytics_request"
	IntentEscalation        = "escalation"
	IntentGeneralQuestion   = "general_question"
	IntentMultiDomain       = "multi_domain"
)

// EscalationPhase tracks the two-pass escalation flow. The phase lives
// in the turn context so it survives across turns of one session.
type EscalationPhase string

const (
	PhaseInitial       EscalationPhase = "initial"
	PhaseGatheringInfo EscalationPhase = "gathering_info"
	PhaseCompleted     EscalationPhase = "completed"
)

const escalationPhaseKey = "escalation_phase"

// Message is one entry of the conversation history.
type Message struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}

// Step is an append-only trace entry. Steps are created by agents during
// execution and never mutated afterwards.
type Step struct {
	AgentName  string                 `json:"agent_name"`
	Action     string                 `json:"action"`
	Details    string                 `json:"details"`
	Timestamp  time.Time              `json:"timestamp"`
	ToolUsed   string                 `json:"tool_used,omitempty"`
	ToolOutput map[string]interface{} `json:"tool_output,omitempty"`
}

// Handoff records a transition of control between agents during
// collaboration. Only the orchestrator creates these.
type Handoff struct {
	FromAgent     string                 `json:"from_agent"`
	ToAgent       string                 `json:"to_agent"`
	Reason        string                 `json:"reason"`
	Timestamp     time.Time              `json:"timestamp"`
	ContextPassed map[string]interface{} `json:"context_passed"`
}

// Response is what one agent produces for a turn.
type Response struct {
	Text            string                 `json:"text"`
	FollowUpOptions []string               `json:"follow_up_options"`
	Quote           map[string]interface{} `json:"quote,omitempty"`
	AgentName       string                 `json:"agent_name"`
}

// SecondaryResponse pairs a collaborating agent with its output.
type SecondaryResponse struct {
	AgentID  string
	Response *Response
}

// TurnState is the mutable record threaded through one orchestration
// run. Ownership is exclusive: one state is never shared across turns.
type TurnState struct {
	Messages []Message
	Query    string
	Context  map[string]interface{}

	ActiveAgent     string
	ConsultedAgents []string
	Steps           []Step
	Handoffs        []Handoff

	Intent                string
	RequiresCollaboration bool
	PrimaryAgent          string
	SecondaryAgents       []string

	PrimaryResponse    *Response
	SecondaryResponses []SecondaryResponse

	FinalResponse   string
	FollowUpOptions []string
	Quote           map[string]interface{}
	UpdatedContext  map[string]interface{}

	ConfidenceScore    float64
	EscalationRequired bool
	Ticket             *Ticket
	Err                string
}

func NewTurnState(messages []Message, context map[string]interface{}) *TurnState {
	// Latest user utterance drives the turn.
	query := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].IsUser {
			query = messages[i].Text
			break
		}
	}

	if context == nil {
		context = map[string]interface{}{}
	}
	updated := make(map[string]interface{}, len(context))
	for k, v := range context {
		updated[k] = v
	}

	return &TurnState{
		Messages:       messages,
		Query:          query,
		Context:        context,
		UpdatedContext: updated,
	}
}

// AddConsulted appends an agent id, keeping the list unique and in
// insertion order.
func (s *TurnState) AddConsulted(agentID string) {
	for _, id := range s.ConsultedAgents {
		if id == agentID {
			return
		}
	}
	s.ConsultedAgents = append(s.ConsultedAgents, agentID)
}

// AddStep appends one trace entry.
func (s *TurnState) AddStep(agentName, action, details, toolUsed string, toolOutput map[string]interface{}) {
	s.Steps = append(s.Steps, Step{
		AgentName:  agentName,
		Action:     action,
		Details:    details,
		Timestamp:  time.Now(),
		ToolUsed:   toolUsed,
		ToolOutput: toolOutput,
	})
}

// AddHandoff records a collaboration transition.
func (s *TurnState) AddHandoff(from, to, reason string) {
	s.Handoffs = append(s.Handoffs, Handoff{
		FromAgent:     from,
		ToAgent:       to,
		Reason:        reason,
		Timestamp:     time.Now(),
		ContextPassed: map[string]interface{}{},
	})
}

// MergeContext applies merge-only updates to the working context. Keys
// are added or overwritten individually; the map is never replaced.
func (s *TurnState) MergeContext(updates map[string]interface{}) {
	if s.UpdatedContext == nil {
		s.UpdatedContext = map[string]interface{}{}
	}
	for k, v := range updates {
		s.UpdatedContext[k] = v
	}
}

// ContextString reads a string value from the working context.
func (s *TurnState) ContextString(key string) string {
	if v, ok := s.UpdatedContext[key].(string); ok {
		return v
	}
	if v, ok := s.Context[key].(string); ok {
		return v
	}
	return ""
}

// Phase returns the current escalation phase, defaulting to initial.
func (s *TurnState) Phase() EscalationPhase {
	switch EscalationPhase(s.ContextString(escalationPhaseKey)) {
	case PhaseGatheringInfo:
		return PhaseGatheringInfo
	case PhaseCompleted:
		return PhaseCompleted
	default:
		return PhaseInitial
	}
}

// SetPhase advances the escalation phase in the working context.
func (s *TurnState) SetPhase(phase EscalationPhase) {
	s.MergeContext(map[string]interface{}{escalationPhaseKey: string(phase)})
}
