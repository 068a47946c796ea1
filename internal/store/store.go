// Package store is the authoritative in-memory keyed store for the five
// entity kinds: accounts, transactions, debts, reminders and chat
// messages. One mutex guards the whole store, so every mutation,
// including transaction creation plus its balance adjustment, is a
// single atomic step to any reader.
package store

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/id"
	"github.com/finbook-dev/finbook/internal/model"
)

// Store holds all entity collections. Construct with New; pass by
// pointer to every consumer.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	// Creation timestamps are store-assigned and never decrease, even
	// if the wall clock steps backwards.
	lastStamp time.Time

	accounts    []model.Account // insertion order
	accountIdx  map[string]int
	txns        map[string]model.Transaction
	txnOrder    []string
	debts       map[string]model.Debt
	debtOrder   []string
	reminders   map[string]model.Reminder
	remOrder    []string
	messages    []model.ChatMessage
}

// New returns a seeded store: "Main Account" (main, 2450.00) and
// "Savings Account" (savings, 8750.00), nothing else.
func New() *Store {
	s := &Store{
		now:        time.Now,
		accountIdx: make(map[string]int),
		txns:       make(map[string]model.Transaction),
		debts:      make(map[string]model.Debt),
		reminders:  make(map[string]model.Reminder),
	}
	// No lock needed: s has not escaped yet.
	s.insertAccount("Main Account", model.AccountTypeMain, decimal.RequireFromString("2450.00"))
	s.insertAccount("Savings Account", model.AccountTypeSavings, decimal.RequireFromString("8750.00"))
	return s
}

// Snapshot is a point-in-time copy of every collection, taken under one
// lock acquisition. Summary computations read snapshots so they never
// see a torn state spanning a concurrent mutation.
type Snapshot struct {
	Accounts     []model.Account     // insertion order
	Transactions []model.Transaction // descending createdAt
	Debts        []model.Debt        // descending createdAt
	Reminders    []model.Reminder    // ascending dueDate
	Messages     []model.ChatMessage // ascending createdAt
}

// Snapshot copies all five collections atomically.
func (s *Store) Snapshot() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Accounts:     s.listAccounts(),
		Transactions: s.listTransactions(TransactionFilter{}),
		Debts:        s.listDebts(),
		Reminders:    s.listReminders(),
		Messages:     s.listMessages(),
	}, nil
}

// timestamp returns the creation time for a new entity. Callers must
// hold the write lock.
func (s *Store) timestamp() time.Time {
	t := s.now()
	if t.Before(s.lastStamp) {
		t = s.lastStamp
	}
	s.lastStamp = t
	return t
}

// insertAccount adds an account row. Callers must hold the write lock.
func (s *Store) insertAccount(name string, typ model.AccountType, balance decimal.Decimal) model.Account {
	a := model.Account{
		ID:        id.New(id.KindAccount),
		Name:      name,
		Type:      typ,
		Balance:   balance,
		CreatedAt: s.timestamp(),
	}
	s.accountIdx[a.ID] = len(s.accounts)
	s.accounts = append(s.accounts, a)
	return a
}

// validMoney reports whether d fits the fixed-point money format:
// at most 2 decimal places.
func validMoney(d decimal.Decimal) bool {
	return d.Exponent() >= -2
}
