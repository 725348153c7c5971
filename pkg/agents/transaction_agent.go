package agents

import (
	"context"
	"fmt"
	"strings"
)

var transactionKeywords = []string{
	"transaction", "charge", "purchase", "payment", "statement",
	"dispute", "refund", "merchant", "receipt", "download",
	"recent transactions", "transaction history", "spending",
	"what did i spend", "show my", "find transaction",
}

// TransactionAgent handles transaction inquiries, dispute intake, and
// statement requests.
type TransactionAgent struct {
	tools        *Tools
	transactions TransactionService
}

func NewTransactionAgent(tools *Tools, transactions TransactionService) *TransactionAgent {
	return &TransactionAgent{tools: tools, transactions: transactions}
}

func (a *TransactionAgent) ID() string    { return "transaction" }
func (a *TransactionAgent) Label() string { return "TransactionAgent" }

func (a *TransactionAgent) CanHandle(state *TurnState) (bool, float64) {
	if state.Intent == IntentTransaction || state.Intent == IntentDisputeFiling {
		return true, 0.95
	}
	switch matches := countKeywordMatches(state.Query, transactionKeywords); {
	case matches >= 2:
		return true, 0.90
	case matches == 1:
		return true, 0.75
	}
	return false, 0.0
}

func (a *TransactionAgent) Execute(ctx context.Context, state *TurnState) (*Response, error) {
	q := strings.ToLower(state.Query)

	switch {
	case containsAny(q, []string{"dispute", "fraud", "unauthorized", "didn't make"}):
		return a.handleDispute(state), nil
	case containsAny(q, []string{"statement", "download", "export"}):
		return a.handleStatement(state), nil
	case containsAny(q, []string{"find", "search", "look for"}):
		return a.handleSearch(state), nil
	default:
		return a.handleTransactionList(ctx, state)
	}
}

func (a *TransactionAgent) handleTransactionList(ctx context.Context, state *TurnState) (*Response, error) {
	state.AddStep(a.Label(), "retrieving_transactions",
		"Fetching recent transactions", "get_transactions", nil)

	transactions, total, err := a.transactions.RecentTransactions(ctx, 10)
	if err != nil {
		return a.errorResponse("retrieve transactions"), nil
	}

	state.AddStep(a.Label(), "formatting_transactions",
		"Generating transaction summary", "call_llm", nil)

	var rows strings.Builder
	for _, t := range transactions {
		rows.WriteString(fmt.Sprintf("- Date: %s, Merchant: %s, Amount: $%.2f %s, Category: %s, Status: %s\n",
			t.Date.Format("2006-01-02"), t.MerchantName, t.Amount, t.Currency, t.Category, t.Status))
	}

	prompt := fmt.Sprintf(`You are a helpful banking assistant. Present recent transactions in a simple table.

IMPORTANT: Use ONLY the Transaction Data provided below. Do NOT reference any other context or retrieved documents.

User Query: %s

Transaction Data:
%s
Total Amount (Last %d transactions): $%.2f CAD

Show date, merchant, category, amount, and status per transaction, then the total. Keep it simple and clean.`,
		state.Query, rows.String(), len(transactions), total)

	text, err := a.tools.CallLLM(ctx, prompt, 1200)
	if err != nil {
		return a.errorResponse("retrieve transactions"), nil
	}

	state.MergeContext(map[string]interface{}{
		"support_category":    "transactions",
		"transactions_viewed": true,
	})

	return formatResponse(a.Label(), text, []string{
		"View all transactions",
		"Search for a transaction",
		"Download statement",
		"File a dispute",
	}, nil), nil
}

func (a *TransactionAgent) handleDispute(state *TurnState) *Response {
	state.AddStep(a.Label(), "initiating_dispute", "Starting dispute process", "", nil)

	text := `I can help you file a dispute for an unauthorized or incorrect charge.

**To file a dispute, I'll need:**
1. Transaction date or merchant name
2. Transaction amount
3. Reason for dispute
4. Any supporting information

**Common dispute reasons:**
- Did not authorize the charge
- Charged incorrect amount
- Product/service not received
- Product defective or not as described
- Duplicate charge

Please provide the transaction details, or I can show you recent transactions to help you find it.`

	state.MergeContext(map[string]interface{}{
		"support_category": "transactions",
		"dispute_needed":   true,
	})

	return formatResponse(a.Label(), text, []string{
		"Show recent transactions",
		"I have transaction details",
		"Contact support",
	}, nil)
}

func (a *TransactionAgent) handleSearch(state *TurnState) *Response {
	state.AddStep(a.Label(), "searching_transactions", "Searching transaction history", "", nil)

	text := `I can help you search for transactions by:

- **Merchant name** (e.g., "Amazon", "Starbucks")
- **Date range** (e.g., "last week", "January")
- **Amount** (e.g., "$50.00", "around $100")
- **Category** (e.g., "Travel", "Dining", "Office Supplies")

What would you like to search for?`

	return formatResponse(a.Label(), text, []string{
		"Search by merchant",
		"Search by date",
		"Search by amount",
		"Show all transactions",
	}, nil)
}

func (a *TransactionAgent) handleStatement(state *TurnState) *Response {
	state.AddStep(a.Label(), "preparing_statement",
		"Generating statement download", "download_statement", nil)

	text := `**Statement Ready for Download**

**Format:** PDF
**Download Link:** Available for 7 days

Your statement includes all transactions, fees, payments, and rewards earned for the period.

**Also available in:**
- CSV (for Excel/spreadsheet import)
- Excel (XLSX) format`

	return formatResponse(a.Label(), text, []string{
		"Download PDF",
		"Download CSV",
		"Download Excel",
		"View transactions",
	}, nil)
}

func (a *TransactionAgent) errorResponse(action string) *Response {
	return formatResponse(a.Label(),
		fmt.Sprintf("I'm having trouble trying to %s right now. Please try again or contact support.", action),
		[]string{"Try again", "Contact support"}, nil)
}

func (a *TransactionAgent) ShouldEscalate(state *TurnState) (bool, string) {
	if containsAny(state.Query, []string{"fraud", "stolen", "unauthorized", "scam"}) {
		return true, "Potential fraud - requires immediate attention"
	}
	return false, ""
}
