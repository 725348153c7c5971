package agents

import (
	"context"
	"time"
)

// Backend data services consumed by the domain agents. Implementations
// live outside this package (mock services in development, real banking
// APIs in production).

type AccountInfo struct {
	AccountID            string
	CardholderName       string
	CardType             string
	CardLast4            string
	CreditLimit          float64
	CurrentBalance       float64
	AvailableCredit      float64
	StatementDate        string
	PaymentDueDate       string
	MinimumPayment       float64
	AccountStatus        string
	AuthorizedUsers      int
	PerTransactionLimit  float64
	DailySpendingLimit   float64
	InternationalEnabled bool
	ContactlessEnabled   bool
}

type BalanceSummary struct {
	CreditLimit           float64
	CurrentBalance        float64
	AvailableCredit       float64
	PendingTransactions   float64
	AvailableAfterPending float64
}

type RewardsInfo struct {
	PointsBalance     int
	PointsValue       float64
	ExpiringPoints    int
	ExpiryDate        string
	EarningRates      map[string]string
	RedemptionOptions []string
}

type Transaction struct {
	TransactionID string
	Date          time.Time
	MerchantName  string
	Category      string
	Amount        float64
	Currency      string
	Status        string
	Location      string
}

type SpendingCategory struct {
	Category           string
	TotalAmount        float64
	TransactionCount   int
	AverageTransaction float64
	Percentage         float64
}

type TrendPoint struct {
	Period string
	Total  float64
}

type AccountService interface {
	AccountInfo(ctx context.Context) (*AccountInfo, error)
	BalanceSummary(ctx context.Context) (*BalanceSummary, error)
	RewardsInfo(ctx context.Context) (*RewardsInfo, error)
}

type TransactionService interface {
	// RecentTransactions returns at most limit transactions, newest
	// first, plus their total amount.
	RecentTransactions(ctx context.Context, limit int) ([]Transaction, float64, error)
}

type AnalyticsService interface {
	SpendingByCategory(ctx context.Context) ([]SpendingCategory, float64, int, error)
	SpendingTrends(ctx context.Context, periods int) ([]TrendPoint, error)
}
