package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/id"
	"github.com/finbook-dev/finbook/internal/model"
)

// TransactionParams holds the caller-supplied fields for a new
// transaction. Amount is a positive magnitude; Type carries the sign.
type TransactionParams struct {
	AccountID   string
	Type        model.TransactionType
	Amount      decimal.Decimal
	Description string
	Category    model.Category
}

func (p TransactionParams) Validate() error {
	if p.AccountID == "" {
		return ValidationError{Field: "accountId", Reason: "required"}
	}
	if !p.Type.Valid() {
		return ValidationError{Field: "type", Reason: fmt.Sprintf("unknown transaction type %q", p.Type)}
	}
	if !p.Amount.IsPositive() {
		return ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if !validMoney(p.Amount) {
		return ValidationError{Field: "amount", Reason: "more than 2 decimal places"}
	}
	if !p.Category.Valid() {
		return ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", p.Category)}
	}
	return nil
}

// CreateTransaction inserts a transaction and applies its balance delta
// to the owning account in the same critical section. If the account
// does not exist, nothing is created and no balance changes.
func (s *Store) CreateTransaction(p TransactionParams) (model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return model.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.accountIdx[p.AccountID]
	if !ok {
		return model.Transaction{}, fmt.Errorf("account %s: %w", p.AccountID, ErrNotFound)
	}

	t := model.Transaction{
		ID:          id.New(id.KindTransaction),
		AccountID:   p.AccountID,
		Type:        p.Type,
		Amount:      p.Amount,
		Description: p.Description,
		Category:    p.Category,
		CreatedAt:   s.timestamp(),
	}
	s.txns[t.ID] = t
	s.txnOrder = append(s.txnOrder, t.ID)

	// Balance rule: income adds, expense subtracts.
	s.accounts[i].Balance = s.accounts[i].Balance.Add(t.Signed())

	return t, nil
}

// TransactionFilter narrows a transaction listing. Zero values mean
// "no constraint"; the date range is inclusive on both ends.
type TransactionFilter struct {
	AccountID string
	Category  model.Category
	StartDate *time.Time
	EndDate   *time.Time
}

func (f TransactionFilter) matches(t model.Transaction) bool {
	if f.AccountID != "" && t.AccountID != f.AccountID {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.StartDate != nil && t.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.CreatedAt.After(*f.EndDate) {
		return false
	}
	return true
}

// Transactions returns matching transactions, newest first.
func (s *Store) Transactions(f TransactionFilter) ([]model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listTransactions(f), nil
}

func (s *Store) listTransactions(f TransactionFilter) []model.Transaction {
	out := make([]model.Transaction, 0, len(s.txnOrder))
	// Walk insertion order backwards so equal timestamps stay
	// newest-first after the stable sort.
	for i := len(s.txnOrder) - 1; i >= 0; i-- {
		t := s.txns[s.txnOrder[i]]
		if f.matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Transaction returns the transaction with the given id.
func (s *Store) Transaction(txnID string) (model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.txns[txnID]
	if !ok {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", txnID, ErrNotFound)
	}
	return t, nil
}

// DeleteTransaction removes a transaction. Deleting an absent id is a
// no-op. The owning account's balance is NOT re-adjusted: the balance
// reflects every transaction ever created, not the surviving set.
func (s *Store) DeleteTransaction(txnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txns[txnID]; !ok {
		return nil
	}
	delete(s.txns, txnID)
	for i, v := range s.txnOrder {
		if v == txnID {
			s.txnOrder = append(s.txnOrder[:i], s.txnOrder[i+1:]...)
			break
		}
	}
	return nil
}
