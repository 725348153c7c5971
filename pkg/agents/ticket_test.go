package agents

import (
	"regexp"
	"testing"
	"time"
)

func TestAssessEscalation(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantType     string
		wantPriority string
	}{
		{"fraud keyword", "someone made unauthorized charges", EscalationFraudSecurity, "critical"},
		{"stolen card", "my card was stolen yesterday", EscalationFraudSecurity, "critical"},
		{"account closure", "I want to close account permanently", EscalationAccountClosure, "high"},
		{"cancellation", "please cancel my card", EscalationAccountClosure, "high"},
		{"complaint", "I have a complaint about your service", EscalationComplaint, "medium"},
		{"frustrated customer", "I am really frustrated with this", EscalationComplaint, "medium"},
		{"manager request", "let me speak to your manager", EscalationGeneral, "medium"},
		{"locked out", "I'm locked out of the portal", EscalationTechnical, "high"},
		{"nothing specific", "please help me with this", EscalationGeneral, "medium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotPriority := AssessEscalation(tt.query)
			if gotType != tt.wantType {
				t.Errorf("AssessEscalation(%q) type = %q, want %q", tt.query, gotType, tt.wantType)
			}
			if gotPriority != tt.wantPriority {
				t.Errorf("AssessEscalation(%q) priority = %q, want %q", tt.query, gotPriority, tt.wantPriority)
			}
		})
	}
}

func TestNewTicket(t *testing.T) {
	before := time.Now()
	ticket := NewTicket("my card was stolen", EscalationFraudSecurity, "critical",
		"Category: escalation", true, []string{"transaction", "escalation"})

	if matched, _ := regexp.MatchString(`^ESC-\d{4}\d{6}$`, ticket.TicketID); !matched {
		t.Errorf("TicketID = %q, want ESC-{year}{6 digits}", ticket.TicketID)
	}
	if matched, _ := regexp.MatchString(`^CASE-\d{5}$`, ticket.CaseNumber); !matched {
		t.Errorf("CaseNumber = %q, want CASE-{5 digits}", ticket.CaseNumber)
	}
	if ticket.Status != "open" {
		t.Errorf("Status = %q, want %q", ticket.Status, "open")
	}
	if ticket.SLAHours != 2 {
		t.Errorf("SLAHours = %d, want 2 for critical", ticket.SLAHours)
	}
	if ticket.AssignedTo != "Fraud Prevention Team" {
		t.Errorf("AssignedTo = %q, want %q", ticket.AssignedTo, "Fraud Prevention Team")
	}
	if !ticket.InfoGathered {
		t.Error("InfoGathered = false, want true")
	}
	wantDeadline := ticket.CreatedAt.Add(2 * time.Hour)
	if !ticket.ExpectedResponseBy.Equal(wantDeadline) {
		t.Errorf("ExpectedResponseBy = %v, want %v", ticket.ExpectedResponseBy, wantDeadline)
	}
	if ticket.CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, want >= %v", ticket.CreatedAt, before)
	}
	if len(ticket.NextSteps) == 0 {
		t.Error("NextSteps is empty")
	}
}

func TestNewTicketUnknownPriorityDefaultsToMedium(t *testing.T) {
	ticket := NewTicket("help", EscalationGeneral, "bogus", "General inquiry", false, nil)
	if ticket.SLAHours != 48 {
		t.Errorf("SLAHours = %d, want 48", ticket.SLAHours)
	}
}

func TestSpecialistTeam(t *testing.T) {
	tests := []struct {
		escalationType string
		want           string
	}{
		{EscalationFraudSecurity, "Fraud Prevention Team"},
		{EscalationAccountClosure, "Account Services Team"},
		{EscalationComplaint, "Customer Relations Team"},
		{EscalationTechnical, "Technical Support Team"},
		{EscalationGeneral, "Senior Support Team"},
		{"unknown", "Customer Service Team"},
	}

	for _, tt := range tests {
		if got := SpecialistTeam(tt.escalationType); got != tt.want {
			t.Errorf("SpecialistTeam(%q) = %q, want %q", tt.escalationType, got, tt.want)
		}
	}
}

func TestClarifyingQuestionsCoverAllCategories(t *testing.T) {
	for _, escalationType := range []string{
		EscalationFraudSecurity,
		EscalationAccountClosure,
		EscalationComplaint,
		EscalationTechnical,
		EscalationGeneral,
	} {
		if questions := ClarifyingQuestions(escalationType); len(questions) < 4 {
			t.Errorf("ClarifyingQuestions(%q) returned %d questions, want at least 4",
				escalationType, len(questions))
		}
	}
}
