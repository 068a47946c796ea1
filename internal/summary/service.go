// Package summary computes derived, read-only views over a store
// snapshot. Nothing is cached: every call recomputes from the current
// snapshot, so results are never staler than the last mutation.
package summary

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
)

// Source is anything that can produce a consistent snapshot of the
// entity collections.
type Source interface {
	Snapshot() (store.Snapshot, error)
}

// Service computes aggregates. Stateless between calls.
type Service struct {
	src Source
}

// NewService creates a summary Service over a snapshot source.
func NewService(src Source) *Service {
	return &Service{src: src}
}

// DebtTotals splits unsettled debt by direction.
type DebtTotals struct {
	TotalOwed       decimal.Decimal `json:"totalOwed"`       // user owes friends
	TotalOwedToUser decimal.Decimal `json:"totalOwedToUser"` // friends owe user
}

// MarshalJSON writes both totals as exact 2-dp strings.
func (d DebtTotals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalOwed       string `json:"totalOwed"`
		TotalOwedToUser string `json:"totalOwedToUser"`
	}{d.TotalOwed.StringFixed(2), d.TotalOwedToUser.StringFixed(2)})
}

// Overview is the one-call aggregate bundle consumed by the HTTP layer
// and handed to the assistant as read-only context.
type Overview struct {
	TotalBalance       decimal.Decimal                    `json:"totalBalance"`
	MonthlySpent       decimal.Decimal                    `json:"monthlySpent"`
	CategorySpending   map[model.Category]decimal.Decimal `json:"categorySpending"`
	NetDebt            DebtTotals                         `json:"netDebt"`
	UpcomingReminders  []model.Reminder                   `json:"upcomingReminders"`
	RecentTransactions []model.Transaction                `json:"recentTransactions"`
	ActiveDebts        []model.Debt                       `json:"activeDebts"`
}

// MarshalJSON writes every money field as an exact 2-dp string.
func (o Overview) MarshalJSON() ([]byte, error) {
	type overview Overview
	spending := make(map[model.Category]string, len(o.CategorySpending))
	for c, v := range o.CategorySpending {
		spending[c] = v.StringFixed(2)
	}
	return json.Marshal(struct {
		overview
		TotalBalance     string                    `json:"totalBalance"`
		MonthlySpent     string                    `json:"monthlySpent"`
		CategorySpending map[model.Category]string `json:"categorySpending"`
	}{overview(o), o.TotalBalance.StringFixed(2), o.MonthlySpent.StringFixed(2), spending})
}

// overviewLimit caps the list sections of an Overview.
const overviewLimit = 5

// Overview computes the full bundle from a single snapshot, so the
// sections are mutually consistent.
func (s *Service) Overview(ref time.Time) (Overview, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		TotalBalance:       totalBalance(snap),
		MonthlySpent:       monthlySpent(snap, ref),
		CategorySpending:   categorySpending(snap, ref),
		NetDebt:            netDebt(snap),
		UpcomingReminders:  upcomingReminders(snap, overviewLimit, ref),
		RecentTransactions: recentTransactions(snap, overviewLimit),
		ActiveDebts:        activeDebts(snap, overviewLimit),
	}, nil
}

// TotalBalance sums every account balance.
func (s *Service) TotalBalance() (decimal.Decimal, error) {
	snap, err := s.snapshot()
	if err != nil {
		return decimal.Zero, err
	}
	return totalBalance(snap), nil
}

// MonthlySpent sums expense amounts in the same calendar month and
// year as ref (wall-clock month, not a rolling window).
func (s *Service) MonthlySpent(ref time.Time) (decimal.Decimal, error) {
	snap, err := s.snapshot()
	if err != nil {
		return decimal.Zero, err
	}
	return monthlySpent(snap, ref), nil
}

// CategorySpending breaks the monthly expense total down by category.
// Every known category is present in the result, zero when unused.
func (s *Service) CategorySpending(ref time.Time) (map[model.Category]decimal.Decimal, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return categorySpending(snap, ref), nil
}

// NetDebt sums unsettled debts by direction.
func (s *Service) NetDebt() (DebtTotals, error) {
	snap, err := s.snapshot()
	if err != nil {
		return DebtTotals{}, err
	}
	return netDebt(snap), nil
}

// UpcomingReminders returns pending reminders due strictly after ref,
// soonest first, at most limit of them.
func (s *Service) UpcomingReminders(limit int, ref time.Time) ([]model.Reminder, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return upcomingReminders(snap, limit, ref), nil
}

// RecentTransactions returns the newest transactions, at most limit.
func (s *Service) RecentTransactions(limit int) ([]model.Transaction, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return recentTransactions(snap, limit), nil
}

// ActiveDebts returns unsettled debts in store order (newest first),
// at most limit.
func (s *Service) ActiveDebts(limit int) ([]model.Debt, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return activeDebts(snap, limit), nil
}

func (s *Service) snapshot() (store.Snapshot, error) {
	snap, err := s.src.Snapshot()
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	return snap, nil
}

func totalBalance(snap store.Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, a := range snap.Accounts {
		total = total.Add(a.Balance)
	}
	return total
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func monthlySpent(snap store.Snapshot, ref time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, t := range snap.Transactions {
		if t.Type == model.TransactionExpense && sameMonth(t.CreatedAt, ref) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

func categorySpending(snap store.Snapshot, ref time.Time) map[model.Category]decimal.Decimal {
	out := make(map[model.Category]decimal.Decimal, len(model.Categories()))
	for _, c := range model.Categories() {
		out[c] = decimal.Zero
	}
	for _, t := range snap.Transactions {
		if t.Type == model.TransactionExpense && sameMonth(t.CreatedAt, ref) {
			out[t.Category] = out[t.Category].Add(t.Amount)
		}
	}
	return out
}

func netDebt(snap store.Snapshot) DebtTotals {
	totals := DebtTotals{TotalOwed: decimal.Zero, TotalOwedToUser: decimal.Zero}
	for _, d := range snap.Debts {
		if d.Settled {
			continue
		}
		switch d.Type {
		case model.DebtOwe:
			totals.TotalOwed = totals.TotalOwed.Add(d.Amount)
		case model.DebtOwed:
			totals.TotalOwedToUser = totals.TotalOwedToUser.Add(d.Amount)
		}
	}
	return totals
}

func upcomingReminders(snap store.Snapshot, limit int, ref time.Time) []model.Reminder {
	var out []model.Reminder
	for _, r := range snap.Reminders {
		if r.Status != model.ReminderPending || !r.DueDate.After(ref) {
			continue
		}
		out = append(out, r)
	}
	return truncate(out, limit)
}

func recentTransactions(snap store.Snapshot, limit int) []model.Transaction {
	return truncate(snap.Transactions, limit)
}

func activeDebts(snap store.Snapshot, limit int) []model.Debt {
	var out []model.Debt
	for _, d := range snap.Debts {
		if !d.Settled {
			out = append(out, d)
		}
	}
	return truncate(out, limit)
}

func truncate[T any](in []T, limit int) []T {
	if limit < 0 {
		limit = 0
	}
	if len(in) > limit {
		in = in[:limit]
	}
	return in
}
