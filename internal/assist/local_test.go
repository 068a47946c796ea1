package assist

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/summary"
)

func testOverview() summary.Overview {
	return summary.Overview{
		TotalBalance: dec("11200.00"),
		MonthlySpent: dec("75.50"),
		CategorySpending: map[model.Category]decimal.Decimal{
			model.CategoryFood:      dec("50.00"),
			model.CategoryTransport: dec("25.50"),
		},
		NetDebt: summary.DebtTotals{
			TotalOwed:       dec("30.00"),
			TotalOwedToUser: dec("10.00"),
		},
		UpcomingReminders: []model.Reminder{
			{Title: "Hostel fee", Amount: dec("120.00"), DueDate: time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestLocalBalance(t *testing.T) {
	got, err := Local{}.Reply(context.Background(), testOverview(), "what's my balance?")
	require.NoError(t, err)
	assert.Contains(t, got, "11200.00")
}

func TestLocalSpending(t *testing.T) {
	got, err := Local{}.Reply(context.Background(), testOverview(), "how much did I spend this month?")
	require.NoError(t, err)
	assert.Contains(t, got, "75.50")
	assert.Contains(t, got, "food")
	assert.Contains(t, got, "50.00")
}

func TestLocalSpendingNoExpenses(t *testing.T) {
	ov := summary.Overview{MonthlySpent: decimal.Zero}
	got, err := Local{}.Reply(context.Background(), ov, "spending?")
	require.NoError(t, err)
	assert.Contains(t, got, "not recorded any expenses")
}

func TestLocalDebts(t *testing.T) {
	got, err := Local{}.Reply(context.Background(), testOverview(), "who do I owe?")
	require.NoError(t, err)
	assert.Contains(t, got, "30.00")
	assert.Contains(t, got, "10.00")
}

func TestLocalReminders(t *testing.T) {
	got, err := Local{}.Reply(context.Background(), testOverview(), "any bills due?")
	require.NoError(t, err)
	assert.Contains(t, got, "Hostel fee")
	assert.Contains(t, got, "120.00")
}

func TestLocalFallback(t *testing.T) {
	got, err := Local{}.Reply(context.Background(), testOverview(), "tell me a joke")
	require.NoError(t, err)
	assert.Contains(t, got, "11200.00")
	assert.Contains(t, got, "75.50")
}

func TestLocalDeterministic(t *testing.T) {
	a, err := Local{}.Reply(context.Background(), testOverview(), "balance")
	require.NoError(t, err)
	b, err := Local{}.Reply(context.Background(), testOverview(), "balance")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
