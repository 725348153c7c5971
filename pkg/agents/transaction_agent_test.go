package agents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeTransactionService struct {
	transactions []Transaction
	total        float64
	err          error
	gotLimit     int
}

func (f *fakeTransactionService) RecentTransactions(ctx context.Context, limit int) ([]Transaction, float64, error) {
	f.gotLimit = limit
	return f.transactions, f.total, f.err
}

func TestTransactionAgentCanHandle(t *testing.T) {
	a := NewTransactionAgent(NewTools(nil, &fakeLLM{}), &fakeTransactionService{})

	tests := []struct {
		name           string
		query          string
		intent         string
		wantHandle     bool
		wantConfidence float64
	}{
		{"transaction intent", "anything", IntentTransaction, true, 0.95},
		{"dispute intent", "anything", IntentDisputeFiling, true, 0.95},
		{"two keywords", "find transaction from a merchant", IntentGeneralQuestion, true, 0.90},
		{"one keyword", "I need a refund", IntentGeneralQuestion, true, 0.75},
		{"no match", "what is the annual fee?", IntentPolicyQuery, false, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewTurnState(userMessages(tt.query), nil)
			state.Intent = tt.intent

			handle, confidence := a.CanHandle(state)
			if handle != tt.wantHandle {
				t.Errorf("CanHandle() handle = %v, want %v", handle, tt.wantHandle)
			}
			if confidence != tt.wantConfidence {
				t.Errorf("CanHandle() confidence = %v, want %v", confidence, tt.wantConfidence)
			}
		})
	}
}

func TestTransactionAgentListsRecentTransactions(t *testing.T) {
	svc := &fakeTransactionService{
		transactions: []Transaction{
			{
				TransactionID: "TXN-2024000001",
				Date:          time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
				MerchantName:  "Amazon Canada",
				Category:      "Office Supplies",
				Amount:        129.99,
				Currency:      "CAD",
				Status:        "posted",
			},
		},
		total: 129.99,
	}
	a := NewTransactionAgent(NewTools(nil, &fakeLLM{reply: "Here are your transactions."}), svc)
	state := NewTurnState(userMessages("show my recent transactions"), nil)

	res, err := a.Execute(context.Background(), state)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if svc.gotLimit != 10 {
		t.Errorf("limit = %d, want 10", svc.gotLimit)
	}
	if res.Text != "Here are your transactions." {
		t.Errorf("Text = %q, want LLM summary", res.Text)
	}
	if viewed, _ := state.UpdatedContext["transactions_viewed"].(bool); !viewed {
		t.Error("transactions_viewed not set")
	}
}

func TestTransactionAgentDisputeIntake(t *testing.T) {
	a := NewTransactionAgent(NewTools(nil, &fakeLLM{}), &fakeTransactionService{})
	state := NewTurnState(userMessages("I want to dispute a charge I didn't make"), nil)

	res, err := a.Execute(context.Background(), state)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(res.Text, "file a dispute") {
		t.Errorf("Text = %q, want dispute intake", res.Text)
	}
	if needed, _ := state.UpdatedContext["dispute_needed"].(bool); !needed {
		t.Error("dispute_needed not set")
	}
}

func TestTransactionAgentStatement(t *testing.T) {
	a := NewTransactionAgent(NewTools(nil, &fakeLLM{}), &fakeTransactionService{})
	state := NewTurnState(userMessages("download my statement please"), nil)

	res, err := a.Execute(context.Background(), state)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(res.Text, "Statement Ready for Download") {
		t.Errorf("Text = %q, want statement response", res.Text)
	}
}

func TestTransactionAgentSearch(t *testing.T) {
	a := NewTransactionAgent(NewTools(nil, &fakeLLM{}), &fakeTransactionService{})
	state := NewTurnState(userMessages("search my transactions for coffee"), nil)

	res, err := a.Execute(context.Background(), state)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(res.Text, "search for transactions by") {
		t.Errorf("Text = %q, want search guidance", res.Text)
	}
}

func TestTransactionAgentServiceFailure(t *testing.T) {
	a := NewTransactionAgent(NewTools(nil, &fakeLLM{reply: "unused"}),
		&fakeTransactionService{err: errors.New("backend down")})
	state := NewTurnState(userMessages("show my recent transactions"), nil)

	res, err := a.Execute(context.Background(), state)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(res.Text, "trouble trying to retrieve transactions") {
		t.Errorf("Text = %q, want degraded answer", res.Text)
	}
}

func TestTransactionAgentShouldEscalate(t *testing.T) {
	a := NewTransactionAgent(NewTools(nil, &fakeLLM{}), &fakeTransactionService{})

	tests := []struct {
		query string
		want  bool
	}{
		{"there is fraud on my card", true},
		{"my card was stolen", true},
		{"an unauthorized charge appeared", true},
		{"show my recent transactions", false},
	}

	for _, tt := range tests {
		state := NewTurnState(userMessages(tt.query), nil)
		if escalate, _ := a.ShouldEscalate(state); escalate != tt.want {
			t.Errorf("ShouldEscalate(%q) = %v, want %v", tt.query, escalate, tt.want)
		}
	}
}
