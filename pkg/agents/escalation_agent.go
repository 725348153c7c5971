package agents

import (
	"context"
	"fmt"
	"strings"
)

var escalationKeywords = []string{
	"escalate", "manager", "supervisor", "complaint", "speak to human",
	"not satisfied", "unhappy", "frustrated", "this is ridiculous",
	"want to cancel", "close account", "legal", "lawyer",
	"fraud", "stolen card", "emergency", "urgent", "immediately",
}

var skipKeywords = []string{
	"skip", "speak to someone now", "immediate", "now", "don't want to answer",
}

// EscalationAgent handles human handoff in two passes: first it gathers
// clarifying details, then it creates the escalation ticket. It always
// clears the escalation flag, which is what terminates the
// orchestrator's reroute loop.
type EscalationAgent struct {
	tools *Tools
}

func NewEscalationAgent(tools *Tools) *EscalationAgent {
	return &EscalationAgent{tools: tools}
}

func (a *EscalationAgent) ID() string    { return "escalation" }
func (a *EscalationAgent) Label() string { return "EscalationAgent" }

func (a *EscalationAgent) CanHandle(state *TurnState) (bool, float64) {
	if state.Intent == IntentEscalation {
		return true, 0.95
	}
	if state.EscalationRequired {
		return true, 1.0
	}
	switch matches := countKeywordMatches(state.Query, escalationKeywords); {
	case matches >= 2:
		return true, 0.90
	case matches == 1:
		return true, 0.80
	}
	return false, 0.0
}

func (a *EscalationAgent) Execute(ctx context.Context, state *TurnState) (*Response, error) {
	wantsToSkip := containsAny(state.Query, skipKeywords)

	if state.Phase() == PhaseInitial && !wantsToSkip {
		return a.gatherInformation(ctx, state)
	}
	return a.createTicket(ctx, state)
}

// gatherInformation asks the clarifying questions for the assessed
// escalation category and parks the phase at gathering_info.
func (a *EscalationAgent) gatherInformation(ctx context.Context, state *TurnState) (*Response, error) {
	escalationType, priority := AssessEscalation(state.Query)

	state.AddStep(a.Label(), "assessing_issue",
		fmt.Sprintf("Classified as %s escalation with %s priority", escalationType, priority),
		"", nil)

	questions := ClarifyingQuestions(escalationType)

	state.AddStep(a.Label(), "gathering_information",
		fmt.Sprintf("Requesting %d clarifying details before escalation", len(questions)),
		"", nil)

	text, err := a.tools.CallLLM(ctx, a.buildQuestionPrompt(escalationType, priority, questions), 800)
	if err != nil || strings.TrimSpace(text) == "" {
		text = "I understand you'd like to escalate this. To help you best, could you please provide some additional details?\n\n" + numberedList(questions)
	}

	state.MergeContext(map[string]interface{}{
		"escalation_type":  escalationType,
		"priority":         priority,
		"support_category": "escalation",
	})
	state.SetPhase(PhaseGatheringInfo)
	state.EscalationRequired = false

	return formatResponse(a.Label(), text, []string{
		"I'd rather speak to someone now",
		"Skip questions and escalate",
	}, nil), nil
}

// createTicket builds the escalation ticket from the gathered context
// and confirms it to the user.
func (a *EscalationAgent) createTicket(ctx context.Context, state *TurnState) (*Response, error) {
	escalationType := state.ContextString("escalation_type")
	priority := state.ContextString("priority")
	if escalationType == "" || priority == "" {
		escalationType, priority = AssessEscalation(state.Query)
	}

	state.AddStep(a.Label(), "processing_information",
		"Processing provided information for escalation", "", nil)

	infoGathered := state.Phase() == PhaseGatheringInfo
	ticket := NewTicket(state.Query, escalationType, priority,
		summarizeContext(state), infoGathered, state.ConsultedAgents)
	state.Ticket = ticket

	state.AddStep(a.Label(), "ticket_created",
		fmt.Sprintf("Created escalation ticket %s", ticket.TicketID),
		"create_ticket", map[string]interface{}{
			"ticket_id":   ticket.TicketID,
			"case_number": ticket.CaseNumber,
			"priority":    ticket.Priority,
		})

	state.AddStep(a.Label(), "generating_escalation_response",
		"Generating escalation confirmation", "call_llm", nil)

	text, err := a.tools.CallLLM(ctx, a.buildConfirmationPrompt(ticket), 1000)
	if err != nil || strings.TrimSpace(text) == "" {
		text = fmt.Sprintf("Your case has been escalated to our %s.\n\n**Ticket ID:** %s\n**Case Number:** %s\n**Priority:** %s\n**Expected Response:** Within %d hours\n\n%s",
			ticket.AssignedTo, ticket.TicketID, ticket.CaseNumber, ticket.Priority,
			ticket.SLAHours, numberedList(ticket.NextSteps))
	}

	state.MergeContext(map[string]interface{}{
		"support_category":  "escalation",
		"escalation_ticket": ticket.TicketID,
		"escalation_type":   escalationType,
		"priority":          priority,
	})
	state.SetPhase(PhaseCompleted)
	state.EscalationRequired = false

	return formatResponse(a.Label(), text, escalationFollowUps(escalationType), nil), nil
}

func (a *EscalationAgent) buildQuestionPrompt(escalationType, priority string, questions []string) string {
	issueNames := map[string]string{
		EscalationFraudSecurity:  "fraud or security concern",
		EscalationAccountClosure: "account closure request",
		EscalationComplaint:      "complaint",
		EscalationTechnical:      "technical issue",
		EscalationGeneral:        "concern",
	}
	issueName, ok := issueNames[escalationType]
	if !ok {
		issueName = "issue"
	}

	return fmt.Sprintf(`You are a helpful banking assistant handling an escalation request. The user has requested to escalate their %s.

Priority Level: %s

Before creating an escalation ticket, you need to gather some information to route them to the right specialist team.

Create a warm, professional response that:
1. Acknowledges their request to escalate
2. Explains that you need a few details to route them to the right specialist team
3. Presents these %d questions in a clear, numbered format
4. Reassures them this will help expedite their case

Questions to ask:
%s

OUTPUT ONLY THE CUSTOMER-FACING MESSAGE.`,
		issueName, strings.ToUpper(priority), len(questions), numberedList(questions))
}

func (a *EscalationAgent) buildConfirmationPrompt(ticket *Ticket) string {
	return fmt.Sprintf(`You are a helpful banking assistant handling an escalation. Create an empathetic, professional confirmation message.

Escalation Details:
- Priority: %s
- Case Number: %s
- Ticket ID: %s
- Assigned To: %s
- Expected Response: Within %d hours
- Status: %s
- Escalation Type: %s

Next Steps:
%s

Summarize the escalation details, include the next steps as a numbered list, and close with a reassuring message. Be warm, professional, and reassuring.

OUTPUT ONLY THE CUSTOMER-FACING MESSAGE.`,
		strings.ToUpper(ticket.Priority), ticket.CaseNumber, ticket.TicketID,
		ticket.AssignedTo, ticket.SLAHours, ticket.Status, ticket.EscalationType,
		numberedList(ticket.NextSteps))
}

// summarizeContext condenses the working context into a one-line ticket
// summary.
func summarizeContext(state *TurnState) string {
	var parts []string

	if category := state.ContextString("support_category"); category != "" {
		parts = append(parts, fmt.Sprintf("Category: %s", category))
	}
	if last4 := state.ContextString("card_number_last4"); last4 != "" {
		parts = append(parts, fmt.Sprintf("Card: x%s", last4))
	}
	if disputed, ok := state.UpdatedContext["dispute_needed"].(bool); ok && disputed {
		parts = append(parts, "Dispute filing attempted")
	}

	if len(parts) == 0 {
		return "General inquiry"
	}
	return strings.Join(parts, " | ")
}

func escalationFollowUps(escalationType string) []string {
	if escalationType == EscalationFraudSecurity {
		return []string{
			"I have more information to add",
			"Check escalation status",
			"Speak with fraud team now",
		}
	}
	return []string{
		"Add more details to my case",
		"Check escalation status",
		"Contact me another way",
		"I need immediate help",
	}
}

func numberedList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *EscalationAgent) ShouldEscalate(state *TurnState) (bool, string) {
	return false, ""
}
