package agents

import (
	"context"
	"fmt"
	"strings"
)

var accountKeywords = []string{
	"account", "balance", "credit limit", "available credit",
	"spending limit", "authorized user", "add user", "remove user",
	"account info", "account settings", "account status",
	"credit line", "increase limit", "decrease limit",
	"my account", "account summary", "check balance",
	"available funds", "how much credit",
}

var accountEscalationTriggers = []string{
	"fraud", "unauthorized", "dispute", "close account", "cancel card", "complaint",
}

// AccountAgent handles account management: balances, limits, authorized
// users, and rewards.
type AccountAgent struct {
	tools    *Tools
	accounts AccountService
}

func NewAccountAgent(tools *Tools, accounts AccountService) *AccountAgent {
	return &AccountAgent{tools: tools, accounts: accounts}
}

func (a *AccountAgent) ID() string    { return "account" }
func (a *AccountAgent) Label() string { return "AccountAgent" }

func (a *AccountAgent) CanHandle(state *TurnState) (bool, float64) {
	if state.Intent == IntentAccountManagement {
		return true, 0.95
	}
	switch matches := countKeywordMatches(state.Query, accountKeywords); {
	case matches >= 2:
		return true, 0.90
	case matches == 1:
		return true, 0.75
	}
	return false, 0.0
}

func (a *AccountAgent) Execute(ctx context.Context, state *TurnState) (*Response, error) {
	q := strings.ToLower(state.Query)

	switch {
	case containsAny(q, []string{"balance", "how much", "available"}):
		return a.handleBalanceInquiry(ctx, state)
	case containsAny(q, []string{"limit", "increase", "decrease", "change"}):
		return a.handleLimitManagement(ctx, state)
	case containsAny(q, []string{"authorized user", "add user", "remove user"}):
		return a.handleUserManagement(ctx, state)
	case containsAny(q, []string{"reward", "point"}):
		return a.handleRewardsInquiry(ctx, state)
	default:
		return a.handleGeneralAccountInfo(ctx, state)
	}
}

func (a *AccountAgent) handleBalanceInquiry(ctx context.Context, state *TurnState) (*Response, error) {
	state.AddStep(a.Label(), "retrieving_balance",
		"Fetching account balance and credit information", "get_balance", nil)

	balance, err := a.accounts.BalanceSummary(ctx)
	if err != nil {
		return a.serviceError("balance information"), nil
	}

	state.AddStep(a.Label(), "balance_retrieved",
		fmt.Sprintf("Retrieved balance: $%.2f", balance.CurrentBalance),
		"", map[string]interface{}{"current_balance": balance.CurrentBalance})

	state.AddStep(a.Label(), "generating_response",
		"Generating personalized account summary", "call_llm", nil)

	utilization := 0.0
	if balance.CreditLimit > 0 {
		utilization = balance.CurrentBalance / balance.CreditLimit * 100
	}

	prompt := fmt.Sprintf(`You are a helpful banking assistant. Generate a concise response about the user's account balance.

IMPORTANT: Use ONLY the Account Data provided below. Do NOT reference any other context or documents.

User Query: %s

Account Data:
- Current Balance: $%.2f
- Credit Limit: $%.2f
- Available Credit: $%.2f
- Pending Transactions: $%.2f
- Available After Pending: $%.2f
- Credit Utilization: %.1f%%

Summarize the balance position in a short table followed by one sentence of commentary.`,
		state.Query, balance.CurrentBalance, balance.CreditLimit, balance.AvailableCredit,
		balance.PendingTransactions, balance.AvailableAfterPending, utilization)

	text, err := a.tools.CallLLM(ctx, prompt, 800)
	if err != nil {
		return a.serviceError("balance information"), nil
	}

	state.MergeContext(map[string]interface{}{
		"support_category": "account",
		"balance_checked":  true,
		"current_balance":  balance.CurrentBalance,
	})

	quote := map[string]interface{}{
		"current_balance":      balance.CurrentBalance,
		"credit_limit":         balance.CreditLimit,
		"available_credit":     balance.AvailableCredit,
		"pending_transactions": balance.PendingTransactions,
	}

	return formatResponse(a.Label(), text, []string{
		"View recent transactions",
		"Request credit limit increase",
		"Set up balance alerts",
		"Download statement",
	}, quote), nil
}

func (a *AccountAgent) handleLimitManagement(ctx context.Context, state *TurnState) (*Response, error) {
	state.AddStep(a.Label(), "reviewing_limits",
		"Reviewing current spending limits and restrictions", "", nil)

	account, err := a.accounts.AccountInfo(ctx)
	if err != nil {
		return a.serviceError("account information"), nil
	}

	text := fmt.Sprintf(`Here are your current spending limits:

**Credit Limit:** $%.2f
**Per-Transaction Limit:** $%.2f
**Daily Spending Limit:** $%.2f

To request a change to your credit limit, I can help you submit a request. Limit increases typically require:
- Good account standing (current)
- Recent credit review
- Business justification
- Approval from your account administrator

Would you like to proceed with a limit change request?`,
		account.CreditLimit, account.PerTransactionLimit, account.DailySpendingLimit)

	state.MergeContext(map[string]interface{}{
		"support_category": "account",
		"limit_inquiry":    true,
	})

	return formatResponse(a.Label(), text, []string{
		"Request credit limit increase",
		"Modify per-transaction limit",
		"Adjust daily spending limit",
		"View account details",
	}, nil), nil
}

func (a *AccountAgent) handleUserManagement(ctx context.Context, state *TurnState) (*Response, error) {
	state.AddStep(a.Label(), "checking_authorized_users",
		"Retrieving authorized user information", "", nil)

	account, err := a.accounts.AccountInfo(ctx)
	if err != nil {
		return a.serviceError("user information"), nil
	}

	text := fmt.Sprintf(`**Authorized Users on Your Account:** %d

You can manage authorized users on your corporate card account:

**Adding a User:**
1. User must be approved by account administrator
2. Spending limits can be set individually
3. New card will be issued (7-10 business days)
4. User gets own card number linked to your account

**Removing a User:**
1. Request immediate card cancellation
2. User loses access within 24 hours
3. Any pending transactions still process

Would you like to add or remove an authorized user?`, account.AuthorizedUsers)

	state.MergeContext(map[string]interface{}{
		"support_category":        "account",
		"user_management_inquiry": true,
	})

	return formatResponse(a.Label(), text, []string{
		"Add authorized user",
		"Remove authorized user",
		"View user spending",
		"Set user limits",
	}, nil), nil
}

func (a *AccountAgent) handleRewardsInquiry(ctx context.Context, state *TurnState) (*Response, error) {
	state.AddStep(a.Label(), "retrieving_rewards",
		"Fetching rewards program information", "get_rewards", nil)

	rewards, err := a.accounts.RewardsInfo(ctx)
	if err != nil {
		return a.serviceError("rewards information"), nil
	}

	var rates strings.Builder
	for category, rate := range rewards.EarningRates {
		rates.WriteString(fmt.Sprintf("- %s: %s\n", category, rate))
	}

	text := fmt.Sprintf(`**Your Rewards Summary:**

**Points Balance:** %d points
**Estimated Value:** $%.2f

**Points Expiring Soon:**
- %d points expire on %s

**Earning Rates:**
%s
**Redemption Options:** %s`,
		rewards.PointsBalance, rewards.PointsValue,
		rewards.ExpiringPoints, rewards.ExpiryDate,
		rates.String(), strings.Join(rewards.RedemptionOptions, ", "))

	state.MergeContext(map[string]interface{}{
		"support_category":        "rewards",
		"rewards_balance_checked": true,
		"rewards_balance":         rewards.PointsBalance,
	})

	quote := map[string]interface{}{
		"rewards_points": rewards.PointsBalance,
		"rewards_value":  rewards.PointsValue,
	}

	return formatResponse(a.Label(), text, []string{
		"Redeem rewards",
		"View earning history",
		"Rewards program details",
		"Transfer to partners",
	}, quote), nil
}

func (a *AccountAgent) handleGeneralAccountInfo(ctx context.Context, state *TurnState) (*Response, error) {
	state.AddStep(a.Label(), "retrieving_account_info",
		"Fetching complete account information", "get_account_info", nil)

	account, err := a.accounts.AccountInfo(ctx)
	if err != nil {
		return a.serviceError("account information"), nil
	}

	state.AddStep(a.Label(), "generating_response",
		"Generating account summary", "call_llm", nil)

	prompt := fmt.Sprintf(`You are a helpful banking assistant. Present the user's account information in a clear format.

IMPORTANT: Use ONLY the Account Information provided below. Do NOT reference any other context or documents.

User Query: %s

Account Information:
- Card Type: %s
- Card Number: x%s
- Account Status: %s
- Credit Limit: $%.2f
- Current Balance: $%.2f
- Available Credit: $%.2f
- International Transactions: %s
- Contactless Payments: %s
- Authorized Users: %d
- Next Statement Date: %s
- Payment Due Date: %s

Present the details as a short table.`,
		state.Query, account.CardType, account.CardLast4, account.AccountStatus,
		account.CreditLimit, account.CurrentBalance, account.AvailableCredit,
		enabledWord(account.InternationalEnabled), enabledWord(account.ContactlessEnabled),
		account.AuthorizedUsers, account.StatementDate, account.PaymentDueDate)

	text, err := a.tools.CallLLM(ctx, prompt, 1000)
	if err != nil {
		return a.serviceError("account information"), nil
	}

	state.MergeContext(map[string]interface{}{
		"support_category":       "account",
		"card_number_last4":      account.CardLast4,
		"account_info_retrieved": true,
	})

	return formatResponse(a.Label(), text, []string{
		"View recent transactions",
		"Check rewards balance",
		"Update account settings",
		"Download statement",
	}, nil), nil
}

func (a *AccountAgent) serviceError(dataType string) *Response {
	return formatResponse(a.Label(),
		fmt.Sprintf("I'm having trouble retrieving your %s right now. This might be a temporary issue. Please try again in a moment or contact support if the problem persists.", dataType),
		[]string{"Try again", "Contact support", "Ask another question"}, nil)
}

func (a *AccountAgent) ShouldEscalate(state *TurnState) (bool, string) {
	q := strings.ToLower(state.Query)
	for _, trigger := range accountEscalationTriggers {
		if strings.Contains(q, trigger) {
			return true, fmt.Sprintf("Account issue requiring specialist: %s", trigger)
		}
	}
	return false, ""
}

func enabledWord(enabled bool) string {
	if enabled {
		return "Enabled"
	}
	return "Disabled"
}
