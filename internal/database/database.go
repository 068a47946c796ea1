// Package database is the Postgres-backed entity store. It exposes the
// same surface as the in-memory store so callers can be wired to either
// one, and it reuses the store package's parameter types and their
// validation so both backends reject the same inputs.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/finbook-dev/finbook/internal/id"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
)

// Store persists entities in Postgres via gorm.
type Store struct {
	db  *gorm.DB
	now func() time.Time

	// mu guards lastStamp so created_at values never decrease even if
	// the wall clock steps backwards between inserts.
	mu        sync.Mutex
	lastStamp time.Time
}

// timestamp returns a non-decreasing creation time.
func (s *Store) timestamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now()
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Nanosecond)
	}
	s.lastStamp = t
	return t
}

// Open connects to Postgres, migrates the schema, and seeds the two
// starter accounts when the accounts table is empty.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := db.AutoMigrate(&Account{}, &Transaction{}, &Debt{}, &Reminder{}, &ChatMessage{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	s := &Store{db: db, now: time.Now}
	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("seeding accounts: %w", err)
	}
	return s, nil
}

func (s *Store) seed() error {
	var count int64
	if err := s.db.Model(&Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	now := s.timestamp()
	rows := []Account{
		{
			ID:        id.New(id.KindAccount),
			Name:      "Main Account",
			Type:      string(model.AccountTypeMain),
			Balance:   decimal.RequireFromString("2450.00"),
			CreatedAt: now,
		},
		{
			ID:        id.New(id.KindAccount),
			Name:      "Savings Account",
			Type:      string(model.AccountTypeSavings),
			Balance:   decimal.RequireFromString("8750.00"),
			CreatedAt: now,
		},
	}
	return s.db.Create(&rows).Error
}

// CreateAccount adds an account with the given opening balance.
func (s *Store) CreateAccount(p store.AccountParams) (model.Account, error) {
	if err := p.Validate(); err != nil {
		return model.Account{}, err
	}
	row := Account{
		ID:        id.New(id.KindAccount),
		Name:      p.Name,
		Type:      string(p.Type),
		Balance:   p.OpeningBalance,
		CreatedAt: s.timestamp(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return model.Account{}, fmt.Errorf("inserting account: %w", err)
	}
	return row.toModel(), nil
}

// Accounts lists accounts oldest first.
func (s *Store) Accounts() ([]model.Account, error) {
	var rows []Account
	if err := s.db.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	out := make([]model.Account, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

// Account fetches one account by id.
func (s *Store) Account(accountID string) (model.Account, error) {
	var row Account
	if err := s.db.First(&row, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Account{}, fmt.Errorf("account %s: %w", accountID, store.ErrNotFound)
		}
		return model.Account{}, fmt.Errorf("fetching account: %w", err)
	}
	return row.toModel(), nil
}

// CreateTransaction inserts the transaction and folds its signed amount
// into the owning account's balance, both inside one database
// transaction with the account row locked.
func (s *Store) CreateTransaction(p store.TransactionParams) (model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return model.Transaction{}, err
	}
	var created Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var acct Account
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&acct, "id = ?", p.AccountID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("account %s: %w", p.AccountID, store.ErrNotFound)
			}
			return err
		}
		created = Transaction{
			ID:          id.New(id.KindTransaction),
			AccountID:   p.AccountID,
			Type:        string(p.Type),
			Amount:      p.Amount,
			Description: p.Description,
			Category:    string(p.Category),
			CreatedAt:   s.timestamp(),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		balance := acct.Balance.Add(created.toModel().Signed())
		return tx.Model(&Account{}).Where("id = ?", acct.ID).
			Update("balance", balance).Error
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return created.toModel(), nil
}

// Transactions lists transactions newest first, narrowed by f.
func (s *Store) Transactions(f store.TransactionFilter) ([]model.Transaction, error) {
	q := s.db.Order("created_at DESC, id DESC")
	if f.AccountID != "" {
		q = q.Where("account_id = ?", f.AccountID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", string(f.Category))
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}
	var rows []Transaction
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	out := make([]model.Transaction, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

// Transaction fetches one transaction by id.
func (s *Store) Transaction(txnID string) (model.Transaction, error) {
	var row Transaction
	if err := s.db.First(&row, "id = ?", txnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Transaction{}, fmt.Errorf("transaction %s: %w", txnID, store.ErrNotFound)
		}
		return model.Transaction{}, fmt.Errorf("fetching transaction: %w", err)
	}
	return row.toModel(), nil
}

// DeleteTransaction removes a transaction. Deleting an absent id is a
// no-op. The account balance is NOT re-adjusted.
func (s *Store) DeleteTransaction(txnID string) error {
	return s.db.Delete(&Transaction{}, "id = ?", txnID).Error
}

// CreateDebt records a debt between the user and a friend.
func (s *Store) CreateDebt(p store.DebtParams) (model.Debt, error) {
	if err := p.Validate(); err != nil {
		return model.Debt{}, err
	}
	row := Debt{
		ID:          id.New(id.KindDebt),
		FriendName:  p.FriendName,
		Type:        string(p.Type),
		Amount:      p.Amount,
		Description: p.Description,
		CreatedAt:   s.timestamp(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return model.Debt{}, fmt.Errorf("inserting debt: %w", err)
	}
	return row.toModel(), nil
}

// Debts lists debts newest first.
func (s *Store) Debts() ([]model.Debt, error) {
	var rows []Debt
	if err := s.db.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	out := make([]model.Debt, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

// Debt fetches one debt by id.
func (s *Store) Debt(debtID string) (model.Debt, error) {
	var row Debt
	if err := s.db.First(&row, "id = ?", debtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Debt{}, fmt.Errorf("debt %s: %w", debtID, store.ErrNotFound)
		}
		return model.Debt{}, fmt.Errorf("fetching debt: %w", err)
	}
	return row.toModel(), nil
}

// UpdateDebt applies the non-nil fields of u to a debt.
func (s *Store) UpdateDebt(debtID string, u store.DebtUpdate) (model.Debt, error) {
	if err := u.Validate(); err != nil {
		return model.Debt{}, err
	}
	var row Debt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "id = ?", debtID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("debt %s: %w", debtID, store.ErrNotFound)
			}
			return err
		}
		if u.FriendName != nil {
			row.FriendName = *u.FriendName
		}
		if u.Type != nil {
			row.Type = string(*u.Type)
		}
		if u.Amount != nil {
			row.Amount = *u.Amount
		}
		if u.Description != nil {
			row.Description = *u.Description
		}
		if u.Settled != nil {
			row.Settled = *u.Settled
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return model.Debt{}, err
	}
	return row.toModel(), nil
}

// SettleDebt marks a debt settled.
func (s *Store) SettleDebt(debtID string) (model.Debt, error) {
	settled := true
	return s.UpdateDebt(debtID, store.DebtUpdate{Settled: &settled})
}

// DeleteDebt removes a debt. Deleting an absent id is a no-op.
func (s *Store) DeleteDebt(debtID string) error {
	return s.db.Delete(&Debt{}, "id = ?", debtID).Error
}

// CreateReminder adds a pending payment reminder.
func (s *Store) CreateReminder(p store.ReminderParams) (model.Reminder, error) {
	if err := p.Validate(); err != nil {
		return model.Reminder{}, err
	}
	row := Reminder{
		ID:          id.New(id.KindReminder),
		Title:       p.Title,
		Description: p.Description,
		Amount:      p.Amount,
		DueDate:     p.DueDate,
		Status:      string(model.ReminderPending),
		Recurring:   p.Recurring,
		CreatedAt:   s.timestamp(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return model.Reminder{}, fmt.Errorf("inserting reminder: %w", err)
	}
	return row.toModel(), nil
}

// Reminders lists reminders soonest due first.
func (s *Store) Reminders() ([]model.Reminder, error) {
	var rows []Reminder
	if err := s.db.Order("due_date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	out := make([]model.Reminder, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

// Reminder fetches one reminder by id.
func (s *Store) Reminder(remID string) (model.Reminder, error) {
	var row Reminder
	if err := s.db.First(&row, "id = ?", remID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Reminder{}, fmt.Errorf("reminder %s: %w", remID, store.ErrNotFound)
		}
		return model.Reminder{}, fmt.Errorf("fetching reminder: %w", err)
	}
	return row.toModel(), nil
}

// UpdateReminder applies the non-nil fields of u to a reminder.
func (s *Store) UpdateReminder(remID string, u store.ReminderUpdate) (model.Reminder, error) {
	if err := u.Validate(); err != nil {
		return model.Reminder{}, err
	}
	var row Reminder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "id = ?", remID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reminder %s: %w", remID, store.ErrNotFound)
			}
			return err
		}
		if u.Title != nil {
			row.Title = *u.Title
		}
		if u.Description != nil {
			row.Description = *u.Description
		}
		if u.Amount != nil {
			row.Amount = *u.Amount
		}
		if u.DueDate != nil {
			row.DueDate = *u.DueDate
		}
		if u.Status != nil {
			row.Status = string(*u.Status)
		}
		if u.Recurring != nil {
			row.Recurring = *u.Recurring
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return model.Reminder{}, err
	}
	return row.toModel(), nil
}

// SnoozeReminder pushes the due date out and marks the reminder
// snoozed.
func (s *Store) SnoozeReminder(remID string, until time.Time) (model.Reminder, error) {
	status := model.ReminderSnoozed
	return s.UpdateReminder(remID, store.ReminderUpdate{Status: &status, DueDate: &until})
}

// MarkReminderPaid marks a reminder paid.
func (s *Store) MarkReminderPaid(remID string) (model.Reminder, error) {
	status := model.ReminderPaid
	return s.UpdateReminder(remID, store.ReminderUpdate{Status: &status})
}

// DeleteReminder removes a reminder. Deleting an absent id is a no-op.
func (s *Store) DeleteReminder(remID string) error {
	return s.db.Delete(&Reminder{}, "id = ?", remID).Error
}

// AppendMessage records one chat message.
func (s *Store) AppendMessage(content string, isUser bool) (model.ChatMessage, error) {
	if content == "" {
		return model.ChatMessage{}, store.ValidationError{Field: "content", Reason: "required"}
	}
	row := ChatMessage{
		ID:        id.New(id.KindMessage),
		Content:   content,
		IsUser:    isUser,
		CreatedAt: s.timestamp(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return model.ChatMessage{}, fmt.Errorf("inserting chat message: %w", err)
	}
	return row.toModel(), nil
}

// Messages lists the conversation oldest first.
func (s *Store) Messages() ([]model.ChatMessage, error) {
	var rows []ChatMessage
	if err := s.db.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	out := make([]model.ChatMessage, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

// ClearMessages removes every chat message.
func (s *Store) ClearMessages() error {
	return s.db.Exec("DELETE FROM chat_messages").Error
}

// Snapshot reads all five collections inside one read-only database
// transaction so the result is internally consistent.
func (s *Store) Snapshot() (store.Snapshot, error) {
	var snap store.Snapshot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var accounts []Account
		if err := tx.Order("created_at ASC, id ASC").Find(&accounts).Error; err != nil {
			return err
		}
		var txns []Transaction
		if err := tx.Order("created_at DESC, id DESC").Find(&txns).Error; err != nil {
			return err
		}
		var debts []Debt
		if err := tx.Order("created_at DESC, id DESC").Find(&debts).Error; err != nil {
			return err
		}
		var reminders []Reminder
		if err := tx.Order("due_date ASC, id ASC").Find(&reminders).Error; err != nil {
			return err
		}
		var messages []ChatMessage
		if err := tx.Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
			return err
		}
		snap.Accounts = make([]model.Account, len(accounts))
		for i, r := range accounts {
			snap.Accounts[i] = r.toModel()
		}
		snap.Transactions = make([]model.Transaction, len(txns))
		for i, r := range txns {
			snap.Transactions[i] = r.toModel()
		}
		snap.Debts = make([]model.Debt, len(debts))
		for i, r := range debts {
			snap.Debts[i] = r.toModel()
		}
		snap.Reminders = make([]model.Reminder, len(reminders))
		for i, r := range reminders {
			snap.Reminders[i] = r.toModel()
		}
		snap.Messages = make([]model.ChatMessage, len(messages))
		for i, r := range messages {
			snap.Messages[i] = r.toModel()
		}
		return nil
	}, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	return snap, nil
}
