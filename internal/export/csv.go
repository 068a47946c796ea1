package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/finbook-dev/finbook/internal/model"
)

const timeFormat = time.RFC3339

// AccountsHeader is the CSV header for accounts.csv.
const AccountsHeader = "id,name,type,balance,created_at"

// WriteAccounts writes accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "name", "type", "balance", "created_at"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, a := range accounts {
		row := []string{a.ID, a.Name, string(a.Type), a.Balance.StringFixed(2), a.CreatedAt.Format(timeFormat)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// TransactionsHeader is the CSV header for transactions.csv.
const TransactionsHeader = "id,account_id,type,amount,description,category,created_at"

// WriteTransactions writes transactions.csv.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "account_id", "type", "amount", "description", "category", "created_at"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txns {
		row := []string{t.ID, t.AccountID, string(t.Type), t.Amount.StringFixed(2), t.Description, string(t.Category), t.CreatedAt.Format(timeFormat)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// DebtsHeader is the CSV header for debts.csv.
const DebtsHeader = "id,friend_name,type,amount,description,settled,created_at"

// WriteDebts writes debts.csv.
func WriteDebts(w io.Writer, debts []model.Debt) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "friend_name", "type", "amount", "description", "settled", "created_at"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, d := range debts {
		row := []string{d.ID, d.FriendName, string(d.Type), d.Amount.StringFixed(2), d.Description, strconv.FormatBool(d.Settled), d.CreatedAt.Format(timeFormat)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// RemindersHeader is the CSV header for reminders.csv.
const RemindersHeader = "id,title,description,amount,due_date,status,recurring,created_at"

// WriteReminders writes reminders.csv.
func WriteReminders(w io.Writer, reminders []model.Reminder) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "title", "description", "amount", "due_date", "status", "recurring", "created_at"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range reminders {
		row := []string{r.ID, r.Title, r.Description, r.Amount.StringFixed(2), r.DueDate.Format(timeFormat), string(r.Status), strconv.FormatBool(r.Recurring), r.CreatedAt.Format(timeFormat)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
