package service

import (
	"context"
	"testing"

	"cardassist-be/internal/dto"
	"cardassist-be/pkg/agents"
	"cardassist-be/pkg/store"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type memoryContextStore struct {
	saved map[string]*store.ConversationContext
}

func newMemoryContextStore() *memoryContextStore {
	return &memoryContextStore{saved: map[string]*store.ConversationContext{}}
}

func (m *memoryContextStore) Save(ctx context.Context, conversation *store.ConversationContext) error {
	m.saved[conversation.SessionID] = conversation
	return nil
}

func (m *memoryContextStore) Get(ctx context.Context, sessionID string) (*store.ConversationContext, bool, error) {
	c, ok := m.saved[sessionID]
	return c, ok, nil
}

func (m *memoryContextStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.saved, sessionID)
	return nil
}

type recordingNotifier struct {
	tickets []*agents.Ticket
	userIDs []string
}

func (r *recordingNotifier) NotifyTicketCreated(ctx context.Context, userID string, ticket *agents.Ticket) {
	r.tickets = append(r.tickets, ticket)
	r.userIDs = append(r.userIDs, userID)
}

// scriptedAgent answers every turn with a fixed response and optional
// ticket, enough to drive the service layer end to end.
type scriptedAgent struct {
	id           string
	text         string
	category     string
	createTicket bool
}

func (a *scriptedAgent) ID() string    { return a.id }
func (a *scriptedAgent) Label() string { return a.id + "Agent" }

func (a *scriptedAgent) CanHandle(state *agents.TurnState) (bool, float64) {
	return true, 0.95
}

func (a *scriptedAgent) Execute(ctx context.Context, state *agents.TurnState) (*agents.Response, error) {
	if a.category != "" {
		state.MergeContext(map[string]interface{}{"support_category": a.category})
	}
	if a.createTicket {
		state.Ticket = agents.NewTicket(state.Query, agents.EscalationGeneral, "medium", "General inquiry", false, nil)
	}
	return &agents.Response{Text: a.text, FollowUpOptions: []string{}, AgentName: a.Label()}, nil
}

func (a *scriptedAgent) ShouldEscalate(state *agents.TurnState) (bool, string) {
	return false, ""
}

func newTestChatService(agent *scriptedAgent, contextStore store.ContextStore, notifier IEscalationNotifier) IChatService {
	registry := agents.NewRegistry(agent.ID(), "escalation")
	registry.Register(agent)
	orchestrator := agents.NewOrchestrator(registry, agents.NewIntentClassifier(), agents.NewSynthesizer(), nopLogger{})
	return NewChatService(orchestrator, contextStore, notifier, nopLogger{})
}

func TestProcessChatAssignsSessionID(t *testing.T) {
	contextStore := newMemoryContextStore()
	svc := newTestChatService(&scriptedAgent{id: "policy", text: "hello", category: "policy"},
		contextStore, &recordingNotifier{})

	res, err := svc.ProcessChat(context.Background(), &dto.ChatRequest{
		UserID:   "user-1",
		Messages: []dto.ChatMessageDTO{{Text: "what is the fee policy?", IsUser: true}},
	})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}

	if res.SessionID == "" {
		t.Fatal("SessionID is empty, want generated id")
	}
	if res.Text != "hello" {
		t.Errorf("Text = %q, want agent response", res.Text)
	}

	conversation, ok := contextStore.saved[res.SessionID]
	if !ok {
		t.Fatal("conversation not persisted")
	}
	if conversation.LastIntent != "policy" {
		t.Errorf("LastIntent = %q, want %q", conversation.LastIntent, "policy")
	}
	if len(conversation.History) != 1 {
		t.Fatalf("History length = %d, want 1", len(conversation.History))
	}
	if conversation.History[0].Query != "what is the fee policy?" {
		t.Errorf("History query = %q, want the user message", conversation.History[0].Query)
	}
}

func TestProcessChatCarriesLastIntentForward(t *testing.T) {
	contextStore := newMemoryContextStore()
	contextStore.saved["session-1"] = &store.ConversationContext{
		SessionID:  "session-1",
		LastIntent: "account",
	}
	svc := newTestChatService(&scriptedAgent{id: "policy", text: "ok"}, contextStore, &recordingNotifier{})

	res, err := svc.ProcessChat(context.Background(), &dto.ChatRequest{
		SessionID: "session-1",
		Messages:  []dto.ChatMessageDTO{{Text: "and the fees?", IsUser: true}},
	})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}

	if res.SessionID != "session-1" {
		t.Errorf("SessionID = %q, want existing session", res.SessionID)
	}
	if res.Context["last_intent"] != "account" {
		t.Errorf("Context last_intent = %v, want carried forward", res.Context["last_intent"])
	}
}

func TestProcessChatNotifiesOnTicket(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestChatService(&scriptedAgent{id: "escalation", text: "escalated", createTicket: true},
		newMemoryContextStore(), notifier)

	res, err := svc.ProcessChat(context.Background(), &dto.ChatRequest{
		UserID:   "user-1",
		Messages: []dto.ChatMessageDTO{{Text: "I need a manager", IsUser: true}},
	})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}

	if res.Ticket == nil {
		t.Fatal("Ticket missing from response")
	}
	if len(notifier.tickets) != 1 {
		t.Fatalf("notifier received %d tickets, want 1", len(notifier.tickets))
	}
	if notifier.tickets[0].TicketID != res.Ticket.TicketID {
		t.Errorf("notified ticket = %q, want %q", notifier.tickets[0].TicketID, res.Ticket.TicketID)
	}
	if notifier.userIDs[0] != "user-1" {
		t.Errorf("notified user = %q, want %q", notifier.userIDs[0], "user-1")
	}
}

func TestResetSession(t *testing.T) {
	contextStore := newMemoryContextStore()
	contextStore.saved["session-1"] = &store.ConversationContext{SessionID: "session-1"}
	svc := newTestChatService(&scriptedAgent{id: "policy", text: "ok"}, contextStore, &recordingNotifier{})

	if err := svc.ResetSession(context.Background(), "session-1"); err != nil {
		t.Fatalf("ResetSession() error = %v", err)
	}
	if _, ok := contextStore.saved["session-1"]; ok {
		t.Error("session still present after reset")
	}
}
