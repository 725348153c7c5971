package service

import (
	"context"
	"time"

	"cardassist-be/internal/dto"
	"cardassist-be/internal/pkg/logger"
	"cardassist-be/pkg/agents"
	"cardassist-be/pkg/store"

	"github.com/google/uuid"
)

type IChatService interface {
	ProcessChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ResetSession(ctx context.Context, sessionID string) error
}

type chatService struct {
	orchestrator *agents.Orchestrator
	contextStore store.ContextStore
	notifier     IEscalationNotifier
	log          logger.ILogger
}

func NewChatService(
	orchestrator *agents.Orchestrator,
	contextStore store.ContextStore,
	notifier IEscalationNotifier,
	log logger.ILogger,
) IChatService {
	return &chatService{
		orchestrator: orchestrator,
		contextStore: contextStore,
		notifier:     notifier,
		log:          log,
	}
}

func (s *chatService) ProcessChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conversation, found, err := s.contextStore.Get(ctx, sessionID)
	if err != nil {
		s.log.Error("ChatService", "Failed to load conversation context", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	if !found || conversation == nil {
		conversation = &store.ConversationContext{
			SessionID: sessionID,
			UserID:    req.UserID,
		}
	}

	turnContext := map[string]interface{}{}
	for k, v := range req.Context {
		turnContext[k] = v
	}
	if conversation.LastIntent != "" {
		turnContext["last_intent"] = conversation.LastIntent
	}

	messages := make([]agents.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, agents.Message{Text: m.Text, IsUser: m.IsUser})
	}

	result := s.orchestrator.ProcessTurn(ctx, messages, turnContext)

	if result.Ticket != nil {
		s.notifier.NotifyTicketCreated(ctx, req.UserID, result.Ticket)
	}

	summary := store.TurnSummary{
		Query:       lastUserMessage(messages),
		Intent:      intentFromContext(result.Context),
		AgentsUsed:  result.ConsultedAgents,
		RespondedAt: time.Now(),
	}
	if result.Ticket != nil {
		summary.TicketID = result.Ticket.TicketID
	}
	conversation.Append(summary)

	if err := s.contextStore.Save(ctx, conversation); err != nil {
		s.log.Error("ChatService", "Failed to persist conversation context", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	return mapTurnResult(sessionID, result), nil
}

func (s *chatService) ResetSession(ctx context.Context, sessionID string) error {
	return s.contextStore.Delete(ctx, sessionID)
}

func lastUserMessage(messages []agents.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].IsUser {
			return messages[i].Text
		}
	}
	return ""
}

func intentFromContext(turnContext map[string]interface{}) string {
	if v, ok := turnContext["support_category"].(string); ok {
		return v
	}
	return ""
}

func mapTurnResult(sessionID string, result *agents.TurnResult) *dto.ChatResponse {
	steps := make([]dto.AgentStepDTO, 0, len(result.Steps))
	for _, step := range result.Steps {
		steps = append(steps, dto.AgentStepDTO{
			AgentName:  step.AgentName,
			Action:     step.Action,
			Details:    step.Details,
			Timestamp:  step.Timestamp,
			ToolUsed:   step.ToolUsed,
			ToolOutput: step.ToolOutput,
		})
	}

	handoffs := make([]dto.AgentHandoffDTO, 0, len(result.Handoffs))
	for _, handoff := range result.Handoffs {
		handoffs = append(handoffs, dto.AgentHandoffDTO{
			FromAgent: handoff.FromAgent,
			ToAgent:   handoff.ToAgent,
			Reason:    handoff.Reason,
			Timestamp: handoff.Timestamp,
		})
	}

	return &dto.ChatResponse{
		SessionID:       sessionID,
		Text:            result.Text,
		ActiveAgent:     result.ActiveAgent,
		ConsultedAgents: result.ConsultedAgents,
		AgentSteps:      steps,
		AgentHandoffs:   handoffs,
		FollowUpOptions: result.FollowUpOptions,
		Quote:           result.Quote,
		Context:         result.Context,
		ConfidenceScore: result.ConfidenceScore,
		Ticket:          result.Ticket,
		Error:           result.Err,
	}
}
