package mockdata

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"cardassist-be/pkg/agents"
)

type merchantProfile struct {
	name       string
	category   string
	baseAmount float64
}

var merchants = []merchantProfile{
	{"Amazon Canada", "Online Shopping", 156.43},
	{"Starbucks", "Dining", 12.75},
	{"Shell Gas Station", "Fuel", 85.20},
	{"Air Canada", "Travel", 1245.00},
	{"Hilton Hotels", "Travel", 389.50},
	{"Office Depot", "Office Supplies", 234.67},
	{"Uber", "Transportation", 45.30},
	{"Rogers", "Telecom", 125.99},
	{"Tim Hortons", "Dining", 8.95},
	{"Best Buy", "Electronics", 567.89},
	{"Staples", "Office Supplies", 98.45},
	{"Delta Hotels", "Travel", 295.00},
	{"Esso", "Fuel", 72.50},
	{"LinkedIn Premium", "Software", 39.99},
	{"Microsoft Azure", "Cloud Services", 450.00},
}

var mockLocations = []string{"Toronto, ON", "Vancouver, BC", "Montreal, QC", "Online"}

// transactionService serves generated demo transactions, one per day
// going back thirty days.
type transactionService struct {
	transactions []agents.Transaction
}

func NewTransactionService() agents.TransactionService {
	return &transactionService{transactions: generateTransactions(30)}
}

func generateTransactions(count int) []agents.Transaction {
	now := time.Now()
	transactions := make([]agents.Transaction, 0, count)

	for i := 0; i < count; i++ {
		m := merchants[rand.Intn(len(merchants))]
		status := "posted"
		if i <= 2 {
			status = "pending"
		}

		transactions = append(transactions, agents.Transaction{
			TransactionID: fmt.Sprintf("TXN-%d%06d", now.Year(), rand.Intn(900000)+100000),
			Date:          now.AddDate(0, 0, -i),
			MerchantName:  m.name,
			Category:      m.category,
			Amount:        roundCents(m.baseAmount * (0.8 + rand.Float64()*0.4)),
			Currency:      "CAD",
			Status:        status,
			Location:      mockLocations[rand.Intn(len(mockLocations))],
		})
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions
}

func (s *transactionService) RecentTransactions(ctx context.Context, limit int) ([]agents.Transaction, float64, error) {
	if limit <= 0 || limit > len(s.transactions) {
		limit = len(s.transactions)
	}

	recent := make([]agents.Transaction, limit)
	copy(recent, s.transactions[:limit])

	total := 0.0
	for _, t := range recent {
		total += t.Amount
	}
	return recent, roundCents(total), nil
}

func roundCents(amount float64) float64 {
	return float64(int(amount*100+0.5)) / 100
}
