package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/summary"
)

// Local is the built-in offline assistant. It answers deterministically
// from the overview with simple keyword dispatch; no network, no model.
type Local struct{}

// Reply implements Assistant.
func (Local) Reply(_ context.Context, ov summary.Overview, message string) (string, error) {
	q := strings.ToLower(message)

	switch {
	case strings.Contains(q, "balance"):
		return fmt.Sprintf("Your total balance across all accounts is %s.", money(ov.TotalBalance)), nil

	case strings.Contains(q, "spend"), strings.Contains(q, "spent"), strings.Contains(q, "spending"):
		top, amt := topCategory(ov.CategorySpending)
		if top == "" {
			return "You have not recorded any expenses this month.", nil
		}
		return fmt.Sprintf("You have spent %s this month. Your biggest category is %s at %s.",
			money(ov.MonthlySpent), top, money(amt)), nil

	case strings.Contains(q, "debt"), strings.Contains(q, "owe"):
		return fmt.Sprintf("You owe friends %s and friends owe you %s.",
			money(ov.NetDebt.TotalOwed), money(ov.NetDebt.TotalOwedToUser)), nil

	case strings.Contains(q, "remind"), strings.Contains(q, "due"), strings.Contains(q, "bill"):
		if len(ov.UpcomingReminders) == 0 {
			return "You have no upcoming payment reminders.", nil
		}
		next := ov.UpcomingReminders[0]
		return fmt.Sprintf("You have %d upcoming reminders. The next one is %q (%s) due %s.",
			len(ov.UpcomingReminders), next.Title, money(next.Amount), next.DueDate.Format("2 Jan 2006")), nil
	}

	return fmt.Sprintf("Your balance is %s and you have spent %s this month. Ask me about your balance, spending, debts or reminders.",
		money(ov.TotalBalance), money(ov.MonthlySpent)), nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func topCategory(byCat map[model.Category]decimal.Decimal) (model.Category, decimal.Decimal) {
	var top model.Category
	max := decimal.Zero
	// Walk in declared order so ties resolve deterministically.
	for _, c := range model.Categories() {
		if amt, ok := byCat[c]; ok && amt.GreaterThan(max) {
			top, max = c, amt
		}
	}
	return top, max
}
