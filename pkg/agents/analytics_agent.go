package agents

import (
	"context"
	"fmt"
	"strings"
)

var analyticsKeywords = []string{
	"analytics", "report", "spending", "trend", "budget",
	"expense", "category", "breakdown", "analysis", "insight",
	"how much spent", "spending by", "monthly spending",
	"track", "compliance", "over budget",
}

// AnalyticsAgent produces spending breakdowns, trend analysis, and
// expense report summaries from the analytics service.
type AnalyticsAgent struct {
	tools     *Tools
	analytics AnalyticsService
}

func NewAnalyticsAgent(tools *Tools, analytics AnalyticsService) *AnalyticsAgent {
	return &AnalyticsAgent{tools: tools, analytics: analytics}
}

func (a *AnalyticsAgent) ID() string    { return "analytics" }
func (a *AnalyticsAgent) Label() string { return "AnalyticsAgent" }

func (a *AnalyticsAgent) CanHandle(state *TurnState) (bool, float64) {
	if state.Intent == IntentAnalyticsRequest {
		return true, 0.95
	}
	switch matches := countKeywordMatches(state.Query, analyticsKeywords); {
	case matches >= 2:
		return true, 0.90
	case matches == 1:
		return true, 0.70
	}
	return false, 0.0
}

func (a *AnalyticsAgent) Execute(ctx context.Context, state *TurnState) (*Response, error) {
	q := strings.ToLower(state.Query)

	switch {
	case containsAny(q, []string{"category", "breakdown", "by category"}):
		return a.handleCategoryAnalysis(ctx, state)
	case containsAny(q, []string{"trend", "over time", "monthly", "weekly"}):
		return a.handleTrendAnalysis(ctx, state)
	default:
		return a.handleGeneralAnalytics(ctx, state)
	}
}

func (a *AnalyticsAgent) handleCategoryAnalysis(ctx context.Context, state *TurnState) (*Response, error) {
	state.AddStep(a.Label(), "analyzing_categories",
		"Analyzing spending by category", "get_spending_analytics", nil)

	categories, totalSpending, totalTransactions, err := a.analytics.SpendingByCategory(ctx)
	if err != nil {
		return a.errorResponse("analyze spending"), nil
	}

	state.AddStep(a.Label(), "generating_category_report",
		"Generating category breakdown report", "call_llm", nil)

	var rows strings.Builder
	for _, c := range categories {
		rows.WriteString(fmt.Sprintf("- %s: $%.2f (%.1f%%) - %d transactions\n",
			c.Category, c.TotalAmount, c.Percentage, c.TransactionCount))
	}

	prompt := fmt.Sprintf(`You are a helpful banking assistant. Present spending data by category in a simple table.

CRITICAL INSTRUCTIONS:
- Use ONLY the Spending Data provided below
- Do NOT reference any context or documents
- Just present the spending data cleanly, with one brief insight about the top category

User Query: %s

Spending Data (Last 30 Days):
%s
Total Spending: $%.2f
Total Transactions: %d`,
		state.Query, rows.String(), totalSpending, totalTransactions)

	text, err := a.tools.CallLLM(ctx, prompt, 1000)
	if err != nil {
		return a.errorResponse("analyze spending"), nil
	}

	state.MergeContext(map[string]interface{}{
		"support_category": "analytics",
		"analytics_viewed": true,
	})

	return formatResponse(a.Label(), text, []string{
		"View all categories",
		"See spending trends",
		"Generate report",
		"Check budget",
	}, nil), nil
}

func (a *AnalyticsAgent) handleTrendAnalysis(ctx context.Context, state *TurnState) (*Response, error) {
	state.AddStep(a.Label(), "analyzing_trends",
		"Analyzing spending trends over time", "", nil)

	trends, err := a.analytics.SpendingTrends(ctx, 6)
	if err != nil {
		return a.errorResponse("analyze trends"), nil
	}

	var b strings.Builder
	b.WriteString("**Spending Trends (Last 6 Months)**\n\n")
	for _, t := range trends {
		b.WriteString(fmt.Sprintf("- %s: $%.2f\n", t.Period, t.Total))
	}

	if len(trends) >= 2 {
		first := trends[0].Total
		last := trends[len(trends)-1].Total
		direction := "stable"
		switch {
		case last > first:
			direction = "increasing"
		case last < first:
			direction = "decreasing"
		}
		change := 0.0
		if first > 0 {
			change = (last - first) / first * 100
		}
		b.WriteString(fmt.Sprintf("\n**Trend Analysis:**\n- Direction: %s\n- Change: %.1f%%\n", direction, change))
		b.WriteString(fmt.Sprintf("\nYour spending is %s compared to previous months.", direction))
	}

	state.MergeContext(map[string]interface{}{
		"support_category": "analytics",
		"analytics_viewed": true,
	})

	return formatResponse(a.Label(), b.String(), []string{
		"View category breakdown",
		"Generate detailed report",
		"Check budget status",
	}, nil), nil
}

func (a *AnalyticsAgent) handleGeneralAnalytics(ctx context.Context, state *TurnState) (*Response, error) {
	state.AddStep(a.Label(), "generating_analytics_menu",
		"Generating analytics options menu", "call_llm", nil)

	prompt := `You are a helpful banking assistant. Present the available analytics options in a short menu.

CRITICAL INSTRUCTIONS:
- Use ONLY the analytics options listed below
- Do NOT reference any context or documents

Available Analytics:
1. Category Breakdown - See spending by category
2. Spending Trends - Track changes over time
3. Budget Analysis - Compare actual vs budget
4. Expense Reports - Generate detailed reports
5. Compliance Tracking - Monitor policy limits

Ask the user what they would like to analyze.`

	text, err := a.tools.CallLLM(ctx, prompt, 800)
	if err != nil {
		return a.errorResponse("generate analytics"), nil
	}

	return formatResponse(a.Label(), text, []string{
		"Category breakdown",
		"Spending trends",
		"Budget analysis",
		"Generate report",
	}, nil), nil
}

func (a *AnalyticsAgent) errorResponse(action string) *Response {
	return formatResponse(a.Label(),
		fmt.Sprintf("I'm having trouble trying to %s right now. Please try again.", action),
		[]string{"Try again", "Contact support"}, nil)
}

func (a *AnalyticsAgent) ShouldEscalate(state *TurnState) (bool, string) {
	return false, ""
}
