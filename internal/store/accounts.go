package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
)

// AccountParams holds the caller-supplied fields for a new account.
// OpeningBalance is the seed value; after creation only the balance
// rule writes the balance.
type AccountParams struct {
	Name           string
	Type           model.AccountType
	OpeningBalance decimal.Decimal
}

func (p AccountParams) Validate() error {
	if p.Name == "" {
		return ValidationError{Field: "name", Reason: "required"}
	}
	if !p.Type.Valid() {
		return ValidationError{Field: "type", Reason: fmt.Sprintf("unknown account type %q", p.Type)}
	}
	if !validMoney(p.OpeningBalance) {
		return ValidationError{Field: "openingBalance", Reason: "more than 2 decimal places"}
	}
	return nil
}

// CreateAccount inserts a new account and returns the stored entity.
func (s *Store) CreateAccount(p AccountParams) (model.Account, error) {
	if err := p.Validate(); err != nil {
		return model.Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertAccount(p.Name, p.Type, p.OpeningBalance), nil
}

// Accounts returns all accounts in insertion order. The result is a
// copy; mutating it does not touch the store. The error is always nil
// here; the signature is shared with the database backend.
func (s *Store) Accounts() ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listAccounts(), nil
}

func (s *Store) listAccounts() []model.Account {
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Account returns the account with the given id.
func (s *Store) Account(accountID string) (model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.accountIdx[accountID]
	if !ok {
		return model.Account{}, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	return s.accounts[i], nil
}
