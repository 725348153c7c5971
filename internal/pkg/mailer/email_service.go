package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type EscalationEmail struct {
	TicketID     string
	CaseNumber   string
	UserID       string
	Priority     string
	Type         string
	AssignedTeam string
	SLAHours     int
	Summary      string
}

type IEmailService interface {
	SendEscalationTicket(recipients []string, email EscalationEmail) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendEscalationTicket notifies the specialist queue that a new ticket was
// opened. Failures are reported to the caller but never block ticket creation.
func (s *emailService) SendEscalationTicket(recipients []string, email EscalationEmail) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no escalation recipients configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Escalation %s (%s)", strings.ToUpper(email.Priority), email.TicketID, email.Type))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New Escalation Ticket</h2>
			<table cellpadding="4">
				<tr><td><b>Ticket</b></td><td>%s</td></tr>
				<tr><td><b>Case</b></td><td>%s</td></tr>
				<tr><td><b>User</b></td><td>%s</td></tr>
				<tr><td><b>Priority</b></td><td>%s</td></tr>
				<tr><td><b>Type</b></td><td>%s</td></tr>
				<tr><td><b>Assigned Team</b></td><td>%s</td></tr>
				<tr><td><b>SLA</b></td><td>%d hours</td></tr>
			</table>
			<p><b>Summary:</b></p>
			<p>%s</p>
		</div>
	`, email.TicketID, email.CaseNumber, email.UserID, email.Priority, email.Type, email.AssignedTeam, email.SLAHours, email.Summary)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation %s: %v\n", email.TicketID, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation %s sent to %d recipient(s)\n", email.TicketID, len(recipients))
	return nil
}
