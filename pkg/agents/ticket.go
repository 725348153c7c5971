package agents

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Escalation categories.
const (
	EscalationFraudSecurity  = "fraud_security"
	EscalationAccountClosure = "account_closure"
	EscalationComplaint      = "complaint"
	EscalationTechnical      = "technical_issue"
	EscalationGeneral        = "general_escalation"
)

// Priority levels with their SLA in hours.
var slaHours = map[string]int{
	"critical": 2,
	"high":     24,
	"medium":   48,
	"low":      72,
}

// Ticket is the escalation record handed to downstream human-handling
// systems.
type Ticket struct {
	TicketID           string    `json:"ticket_id"`
	CaseNumber         string    `json:"case_number"`
	CreatedAt          time.Time `json:"created_at"`
	Status             string    `json:"status"`
	Priority           string    `json:"priority"`
	EscalationType     string    `json:"escalation_type"`
	IssueDescription   string    `json:"issue_description"`
	ContextSummary     string    `json:"context_summary"`
	InfoGathered       bool      `json:"clarifying_info_provided"`
	ConsultedAgents    []string  `json:"consulted_agents"`
	AssignedTo         string    `json:"assigned_to"`
	ExpectedResponseBy time.Time `json:"expected_response_by"`
	SLAHours           int       `json:"sla_hours"`
	NextSteps          []string  `json:"next_steps"`
}

// NewTicket builds an escalation ticket. IDs are display references,
// not security tokens.
func NewTicket(query, escalationType, priority, contextSummary string, infoGathered bool, consulted []string) *Ticket {
	now := time.Now()
	hours, ok := slaHours[priority]
	if !ok {
		hours = slaHours["medium"]
	}

	return &Ticket{
		TicketID:           fmt.Sprintf("ESC-%d%06d", now.Year(), rand.Intn(900000)+100000),
		CaseNumber:         fmt.Sprintf("CASE-%05d", rand.Intn(90000)+10000),
		CreatedAt:          now,
		Status:             "open",
		Priority:           priority,
		EscalationType:     escalationType,
		IssueDescription:   query,
		ContextSummary:     contextSummary,
		InfoGathered:       infoGathered,
		ConsultedAgents:    consulted,
		AssignedTo:         SpecialistTeam(escalationType),
		ExpectedResponseBy: now.Add(time.Duration(hours) * time.Hour),
		SLAHours:           hours,
		NextSteps:          nextSteps(escalationType),
	}
}

// AssessEscalation classifies the issue and assigns a priority from the
// query text alone.
func AssessEscalation(query string) (escalationType, priority string) {
	q := strings.ToLower(query)

	switch {
	case containsAny(q, []string{"fraud", "stolen", "unauthorized", "scam", "emergency"}):
		return EscalationFraudSecurity, "critical"
	case containsAny(q, []string{"close account", "cancel", "terminate"}):
		return EscalationAccountClosure, "high"
	case containsAny(q, []string{"complaint", "unsatisfied", "unhappy", "frustrated"}):
		return EscalationComplaint, "medium"
	case containsAny(q, []string{"manager", "supervisor", "speak to human"}):
		return EscalationGeneral, "medium"
	case containsAny(q, []string{"can't access", "locked out", "not working"}):
		return EscalationTechnical, "high"
	default:
		return EscalationGeneral, "medium"
	}
}

// SpecialistTeam maps an escalation category to the team that owns it.
func SpecialistTeam(escalationType string) string {
	switch escalationType {
	case EscalationFraudSecurity:
		return "Fraud Prevention Team"
	case EscalationAccountClosure:
		return "Account Services Team"
	case EscalationComplaint:
		return "Customer Relations Team"
	case EscalationTechnical:
		return "Technical Support Team"
	case EscalationGeneral:
		return "Senior Support Team"
	default:
		return "Customer Service Team"
	}
}

func nextSteps(escalationType string) []string {
	switch escalationType {
	case EscalationFraudSecurity:
		return []string{
			"Card has been flagged for review",
			"Fraud specialist will contact you within 2 hours",
			"Do not use the card until cleared",
			"Monitor your account for suspicious activity",
			"Keep all relevant documentation",
		}
	case EscalationAccountClosure:
		return []string{
			"Account closure request received",
			"Specialist will verify your identity",
			"Outstanding balance must be cleared",
			"Rewards points will be forfeited unless redeemed",
			"Final confirmation required before processing",
		}
	case EscalationComplaint:
		return []string{
			"Your feedback has been documented",
			"Customer Relations team will review",
			"You will receive a detailed response",
			"Case manager assigned to your issue",
			"Follow-up within 24-48 hours",
		}
	default:
		return []string{
			"Your issue has been escalated",
			"A specialist will review your case",
			"You will receive email updates",
			"Reference your case number for follow-up",
		}
	}
}

// ClarifyingQuestions returns the intake questions asked before a
// ticket is created, keyed by escalation category.
func ClarifyingQuestions(escalationType string) []string {
	switch escalationType {
	case EscalationFraudSecurity:
		return []string{
			"When did you first notice the suspicious activity?",
			"Which specific transaction(s) or charges are you concerned about?",
			"Have you authorized anyone else to use your card recently?",
			"Do you still have possession of your physical card?",
			"Have you noticed any other unusual account activity?",
		}
	case EscalationAccountClosure:
		return []string{
			"What is your primary reason for wanting to close your account?",
			"Are you aware of any outstanding balance or pending transactions?",
			"Would you like to transfer or redeem your rewards points first?",
			"Is there anything we can do to address your concerns?",
		}
	case EscalationComplaint:
		return []string{
			"Can you describe the specific issue or experience you're unhappy with?",
			"When did this issue occur?",
			"Have you contacted us about this before? If so, what happened?",
			"What outcome or resolution are you hoping for?",
		}
	case EscalationTechnical:
		return []string{
			"What specifically is not working or what error are you experiencing?",
			"When did you first encounter this problem?",
			"What device and browser/app are you using?",
			"Are you receiving any error messages? If so, what do they say?",
		}
	default:
		return []string{
			"Can you describe the nature of your concern?",
			"What has prompted you to request an escalation?",
			"Have you tried to resolve this issue already? What happened?",
			"What would be a satisfactory resolution for you?",
		}
	}
}
