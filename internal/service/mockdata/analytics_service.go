package mockdata

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"cardassist-be/pkg/agents"
)

// analyticsService aggregates the demo transaction history into
// category and trend views.
type analyticsService struct {
	transactions agents.TransactionService
}

func NewAnalyticsService(transactions agents.TransactionService) agents.AnalyticsService {
	return &analyticsService{transactions: transactions}
}

func (s *analyticsService) SpendingByCategory(ctx context.Context) ([]agents.SpendingCategory, float64, int, error) {
	transactions, _, err := s.transactions.RecentTransactions(ctx, 1000)
	if err != nil {
		return nil, 0, 0, err
	}

	totals := map[string]float64{}
	counts := map[string]int{}
	for _, t := range transactions {
		totals[t.Category] += t.Amount
		counts[t.Category]++
	}

	totalSpending := 0.0
	for _, amount := range totals {
		totalSpending += amount
	}

	categories := make([]agents.SpendingCategory, 0, len(totals))
	for category, amount := range totals {
		percentage := 0.0
		if totalSpending > 0 {
			percentage = amount / totalSpending * 100
		}
		categories = append(categories, agents.SpendingCategory{
			Category:           category,
			TotalAmount:        roundCents(amount),
			TransactionCount:   counts[category],
			AverageTransaction: roundCents(amount / float64(counts[category])),
			Percentage:         percentage,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].TotalAmount > categories[j].TotalAmount
	})

	return categories, roundCents(totalSpending), len(transactions), nil
}

func (s *analyticsService) SpendingTrends(ctx context.Context, periods int) ([]agents.TrendPoint, error) {
	if periods <= 0 {
		periods = 6
	}

	// Demo trend data: synthesized monthly totals, oldest first.
	now := time.Now()
	trends := make([]agents.TrendPoint, 0, periods)
	for i := periods - 1; i >= 0; i-- {
		month := now.AddDate(0, -i, 0)
		trends = append(trends, agents.TrendPoint{
			Period: month.Format("January 2006"),
			Total:  roundCents(6000 + rand.Float64()*4000),
		})
	}
	return trends, nil
}
