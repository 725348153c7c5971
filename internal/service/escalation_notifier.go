package service

import (
	"context"

	"cardassist-be/internal/pkg/logger"
	"cardassist-be/internal/pkg/mailer"
	"cardassist-be/pkg/agents"
	"cardassist-be/pkg/events"
	pktNats "cardassist-be/pkg/nats"
)

const escalationCreatedEvent = "escalation.created"

type IEscalationNotifier interface {
	NotifyTicketCreated(ctx context.Context, userID string, ticket *agents.Ticket)
}

// escalationNotifier fans a new ticket out to the event bus and the
// specialist mailbox. Both paths are best effort: a notification
// failure is logged and swallowed, the ticket itself already exists.
type escalationNotifier struct {
	publisher    *pktNats.Publisher
	emailService mailer.IEmailService
	recipients   []string
	log          logger.ILogger
}

func NewEscalationNotifier(
	publisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	recipients []string,
	log logger.ILogger,
) IEscalationNotifier {
	return &escalationNotifier{
		publisher:    publisher,
		emailService: emailService,
		recipients:   recipients,
		log:          log,
	}
}

func (n *escalationNotifier) NotifyTicketCreated(ctx context.Context, userID string, ticket *agents.Ticket) {
	if ticket == nil {
		return
	}

	if n.publisher != nil {
		event := events.New(escalationCreatedEvent, map[string]interface{}{
			"ticket_id":       ticket.TicketID,
			"case_number":     ticket.CaseNumber,
			"user_id":         userID,
			"priority":        ticket.Priority,
			"escalation_type": ticket.EscalationType,
			"assigned_to":     ticket.AssignedTo,
			"sla_hours":       ticket.SLAHours,
			"created_at":      ticket.CreatedAt,
		})
		if err := n.publisher.Publish(ctx, event); err != nil {
			n.log.Error("EscalationNotifier", "Failed to publish escalation event", map[string]interface{}{
				"ticket_id": ticket.TicketID,
				"error":     err.Error(),
			})
		}
	}

	if n.emailService != nil && len(n.recipients) > 0 {
		err := n.emailService.SendEscalationTicket(n.recipients, mailer.EscalationEmail{
			TicketID:     ticket.TicketID,
			CaseNumber:   ticket.CaseNumber,
			UserID:       userID,
			Priority:     ticket.Priority,
			Type:         ticket.EscalationType,
			AssignedTeam: ticket.AssignedTo,
			SLAHours:     ticket.SLAHours,
			Summary:      ticket.ContextSummary,
		})
		if err != nil {
			n.log.Error("EscalationNotifier", "Failed to send escalation email", map[string]interface{}{
				"ticket_id": ticket.TicketID,
				"error":     err.Error(),
			})
		}
	}
}
