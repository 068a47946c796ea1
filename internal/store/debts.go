package store

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/id"
	"github.com/finbook-dev/finbook/internal/model"
)

// DebtParams holds the caller-supplied fields for a new debt.
type DebtParams struct {
	FriendName  string
	Type        model.DebtType
	Amount      decimal.Decimal
	Description string
}

func (p DebtParams) Validate() error {
	if p.FriendName == "" {
		return ValidationError{Field: "friendName", Reason: "required"}
	}
	if !p.Type.Valid() {
		return ValidationError{Field: "type", Reason: fmt.Sprintf("unknown debt type %q", p.Type)}
	}
	if !p.Amount.IsPositive() {
		return ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if !validMoney(p.Amount) {
		return ValidationError{Field: "amount", Reason: "more than 2 decimal places"}
	}
	return nil
}

// CreateDebt inserts a new debt, unsettled.
func (s *Store) CreateDebt(p DebtParams) (model.Debt, error) {
	if err := p.Validate(); err != nil {
		return model.Debt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := model.Debt{
		ID:          id.New(id.KindDebt),
		FriendName:  p.FriendName,
		Type:        p.Type,
		Amount:      p.Amount,
		Description: p.Description,
		CreatedAt:   s.timestamp(),
	}
	s.debts[d.ID] = d
	s.debtOrder = append(s.debtOrder, d.ID)
	return d, nil
}

// Debts returns all debts, newest first.
func (s *Store) Debts() ([]model.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listDebts(), nil
}

func (s *Store) listDebts() []model.Debt {
	out := make([]model.Debt, 0, len(s.debtOrder))
	for i := len(s.debtOrder) - 1; i >= 0; i-- {
		out = append(out, s.debts[s.debtOrder[i]])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Debt returns the debt with the given id.
func (s *Store) Debt(debtID string) (model.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.debts[debtID]
	if !ok {
		return model.Debt{}, fmt.Errorf("debt %s: %w", debtID, ErrNotFound)
	}
	return d, nil
}

// DebtUpdate is a partial update; nil fields are left untouched.
type DebtUpdate struct {
	FriendName  *string
	Type        *model.DebtType
	Amount      *decimal.Decimal
	Description *string
	Settled     *bool
}

// Validate checks the non-nil fields of u.
func (u DebtUpdate) Validate() error {
	if u.FriendName != nil && *u.FriendName == "" {
		return ValidationError{Field: "friendName", Reason: "required"}
	}
	if u.Type != nil && !u.Type.Valid() {
		return ValidationError{Field: "type", Reason: fmt.Sprintf("unknown debt type %q", *u.Type)}
	}
	if u.Amount != nil {
		if !u.Amount.IsPositive() {
			return ValidationError{Field: "amount", Reason: "must be positive"}
		}
		if !validMoney(*u.Amount) {
			return ValidationError{Field: "amount", Reason: "more than 2 decimal places"}
		}
	}
	return nil
}

// UpdateDebt applies the non-nil fields of u and returns the updated
// debt.
func (s *Store) UpdateDebt(debtID string, u DebtUpdate) (model.Debt, error) {
	if err := u.Validate(); err != nil {
		return model.Debt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.debts[debtID]
	if !ok {
		return model.Debt{}, fmt.Errorf("debt %s: %w", debtID, ErrNotFound)
	}
	if u.FriendName != nil {
		d.FriendName = *u.FriendName
	}
	if u.Type != nil {
		d.Type = *u.Type
	}
	if u.Amount != nil {
		d.Amount = *u.Amount
	}
	if u.Description != nil {
		d.Description = *u.Description
	}
	if u.Settled != nil {
		d.Settled = *u.Settled
	}
	s.debts[debtID] = d
	return d, nil
}

// SettleDebt marks a debt settled.
func (s *Store) SettleDebt(debtID string) (model.Debt, error) {
	settled := true
	return s.UpdateDebt(debtID, DebtUpdate{Settled: &settled})
}

// DeleteDebt removes a debt. Deleting an absent id is a no-op.
func (s *Store) DeleteDebt(debtID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.debts[debtID]; !ok {
		return nil
	}
	delete(s.debts, debtID)
	for i, v := range s.debtOrder {
		if v == debtID {
			s.debtOrder = append(s.debtOrder[:i], s.debtOrder[i+1:]...)
			break
		}
	}
	return nil
}
