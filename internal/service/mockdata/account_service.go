package mockdata

import (
	"context"

	"cardassist-be/pkg/agents"
)

// accountService serves a fixed demo account. Production deployments
// swap this for an adapter over the real banking APIs.
type accountService struct {
	account agents.AccountInfo
	pending float64
	rewards agents.RewardsInfo
}

func NewAccountService() agents.AccountService {
	return &accountService{
		account: agents.AccountInfo{
			AccountID:            "ACC-BMO-2024-001",
			CardholderName:       "Demo User",
			CardType:             "Corporate World Elite Mastercard",
			CardLast4:            "8247",
			CreditLimit:          25000.00,
			CurrentBalance:       4850.75,
			AvailableCredit:      20149.25,
			StatementDate:        "2024-01-31",
			PaymentDueDate:       "2024-02-15",
			MinimumPayment:       145.00,
			AccountStatus:        "active",
			AuthorizedUsers:      2,
			PerTransactionLimit:  5000.00,
			DailySpendingLimit:   10000.00,
			InternationalEnabled: true,
			ContactlessEnabled:   true,
		},
		pending: 325.50,
		rewards: agents.RewardsInfo{
			PointsBalance:  24580,
			PointsValue:    245.80,
			ExpiringPoints: 1250,
			ExpiryDate:     "2025-06-30",
			EarningRates: map[string]string{
				"travel": "3 points per $1",
				"dining": "2 points per $1",
				"other":  "1 point per $1",
			},
			RedemptionOptions: []string{"travel", "cash_back", "merchandise", "statement_credit"},
		},
	}
}

func (s *accountService) AccountInfo(ctx context.Context) (*agents.AccountInfo, error) {
	account := s.account
	return &account, nil
}

func (s *accountService) BalanceSummary(ctx context.Context) (*agents.BalanceSummary, error) {
	return &agents.BalanceSummary{
		CreditLimit:           s.account.CreditLimit,
		CurrentBalance:        s.account.CurrentBalance,
		AvailableCredit:       s.account.AvailableCredit,
		PendingTransactions:   s.pending,
		AvailableAfterPending: s.account.AvailableCredit - s.pending,
	}, nil
}

func (s *accountService) RewardsInfo(ctx context.Context) (*agents.RewardsInfo, error) {
	rewards := s.rewards
	return &rewards, nil
}
