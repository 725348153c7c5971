package agents

import (
	"context"
	"fmt"

	"cardassist-be/internal/pkg/logger"
)

const fallbackText = "I apologize, but I encountered an error processing your request. Please try again or contact support."

var fallbackFollowUps = []string{"Try again", "Contact support"}

// TurnResult is the terminal output of one orchestration run. Always
// complete and well formed, even when the turn failed internally.
type TurnResult struct {
	Text            string                 `json:"text"`
	ActiveAgent     string                 `json:"active_agent"`
	ConsultedAgents []string               `json:"consulted_agents"`
	Steps           []Step                 `json:"agent_steps"`
	Handoffs        []Handoff              `json:"agent_handoffs"`
	FollowUpOptions []string               `json:"follow_up_options"`
	Quote           map[string]interface{} `json:"quote,omitempty"`
	Context         map[string]interface{} `json:"context"`
	ConfidenceScore float64                `json:"confidence_score"`
	Ticket          *Ticket                `json:"ticket,omitempty"`
	Err             string                 `json:"error,omitempty"`
}

// Orchestrator drives the turn state machine:
//
//	classify -> route -> execute_primary -> check_collaboration ->
//	[execute_secondary -> synthesize] -> check_escalation ->
//	(reroute once) | done
type Orchestrator struct {
	registry   *Registry
	classifier *IntentClassifier
	synth      *Synthesizer
	log        logger.ILogger
}

func NewOrchestrator(registry *Registry, classifier *IntentClassifier, synth *Synthesizer, log logger.ILogger) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		classifier: classifier,
		synth:      synth,
		log:        log,
	}
}

// ProcessTurn runs one conversational turn to completion. It never
// returns an error: every internal failure degrades to a safe fallback
// response carrying the error marker.
func (o *Orchestrator) ProcessTurn(ctx context.Context, messages []Message, turnContext map[string]interface{}) (result *TurnResult) {
	state := NewTurnState(messages, turnContext)

	defer func() {
		if r := recover(); r != nil {
			o.log.Error("Orchestrator", "Turn processing panicked", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
			})
			result = &TurnResult{
				Text:            fallbackText,
				ActiveAgent:     "error_handler",
				ConsultedAgents: []string{},
				Steps:           []Step{},
				Handoffs:        []Handoff{},
				FollowUpOptions: fallbackFollowUps,
				Context:         turnContext,
				Err:             fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	state.Intent, state.RequiresCollaboration = o.classifier.Classify(state.Query)
	o.log.Info("Orchestrator", "Intent classified", map[string]interface{}{
		"intent":        state.Intent,
		"collaboration": state.RequiresCollaboration,
	})

	rerouted := false
	for {
		primaryID := o.registry.Route(state)
		state.AddConsulted(primaryID)
		o.log.Info("Orchestrator", "Routed to primary agent", map[string]interface{}{
			"agent":      primaryID,
			"confidence": state.ConfidenceScore,
		})

		o.executePrimary(ctx, state, primaryID)

		if state.RequiresCollaboration {
			state.SecondaryAgents = o.registry.Secondaries(state)
		}
		if len(state.SecondaryAgents) > 0 {
			o.executeSecondaries(ctx, state)
			o.synth.Synthesize(state)
		}

		// The escalation agent clears the flag while executing, so a
		// second pass through here always terminates. The rerouted
		// guard makes the bound explicit regardless.
		if state.EscalationRequired && !rerouted {
			rerouted = true
			state.SecondaryAgents = nil
			state.SecondaryResponses = nil
			o.log.Info("Orchestrator", "Escalation required, re-routing", nil)
			continue
		}
		break
	}

	return o.buildResult(state)
}

func (o *Orchestrator) executePrimary(ctx context.Context, state *TurnState, agentID string) {
	agent, ok := o.registry.Get(agentID)
	if !ok {
		state.Err = fmt.Sprintf("unknown agent %q", agentID)
		state.PrimaryResponse = formatResponse("error_handler", fallbackText, fallbackFollowUps, nil)
		state.FinalResponse = fallbackText
		state.FollowUpOptions = fallbackFollowUps
		return
	}

	res := o.safeExecute(ctx, agent, state)
	state.PrimaryResponse = res
	state.FinalResponse = res.Text
	state.FollowUpOptions = res.FollowUpOptions
	state.Quote = res.Quote

	if escalate, reason := agent.ShouldEscalate(state); escalate {
		state.EscalationRequired = true
		o.log.Info("Orchestrator", "Agent recommends escalation", map[string]interface{}{
			"agent":  agentID,
			"reason": reason,
		})
	}
}

func (o *Orchestrator) executeSecondaries(ctx context.Context, state *TurnState) {
	// Sequential by design: each secondary appends to the shared trace
	// and context, and the trace must reflect invocation order.
	for _, agentID := range state.SecondaryAgents {
		agent, ok := o.registry.Get(agentID)
		if !ok {
			continue
		}

		state.AddHandoff(state.ActiveAgent, agentID, "Multi-domain query collaboration")
		state.ActiveAgent = agentID
		state.AddConsulted(agentID)

		res := o.safeExecute(ctx, agent, state)
		state.SecondaryResponses = append(state.SecondaryResponses, SecondaryResponse{
			AgentID:  agentID,
			Response: res,
		})
	}
}

// safeExecute guards the orchestration boundary: an error or panic in
// an agent becomes the turn's error marker plus fallback text, never a
// failed turn.
func (o *Orchestrator) safeExecute(ctx context.Context, agent Agent, state *TurnState) (res *Response) {
	defer func() {
		if r := recover(); r != nil {
			state.Err = fmt.Sprintf("agent %s panicked: %v", agent.ID(), r)
			o.log.Error("Orchestrator", "Agent panicked", map[string]interface{}{
				"agent": agent.ID(),
				"panic": fmt.Sprintf("%v", r),
			})
			res = formatResponse(agent.Label(), fallbackText, fallbackFollowUps, nil)
		}
	}()

	res, err := agent.Execute(ctx, state)
	if err != nil {
		state.Err = err.Error()
		o.log.Error("Orchestrator", "Agent execution failed", map[string]interface{}{
			"agent": agent.ID(),
			"error": err.Error(),
		})
		return formatResponse(agent.Label(), fallbackText, fallbackFollowUps, nil)
	}
	return res
}

func (o *Orchestrator) buildResult(state *TurnState) *TurnResult {
	text := state.FinalResponse
	if text == "" {
		text = fallbackText
	}
	followUps := state.FollowUpOptions
	if followUps == nil {
		followUps = []string{}
	}
	if state.ConsultedAgents == nil {
		state.ConsultedAgents = []string{}
	}
	if state.Steps == nil {
		state.Steps = []Step{}
	}
	if state.Handoffs == nil {
		state.Handoffs = []Handoff{}
	}

	return &TurnResult{
		Text:            text,
		ActiveAgent:     state.ActiveAgent,
		ConsultedAgents: state.ConsultedAgents,
		Steps:           state.Steps,
		Handoffs:        state.Handoffs,
		FollowUpOptions: followUps,
		Quote:           state.Quote,
		Context:         state.UpdatedContext,
		ConfidenceScore: state.ConfidenceScore,
		Ticket:          state.Ticket,
		Err:             state.Err,
	}
}
