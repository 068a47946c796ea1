package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeMain    AccountType = "main"
	AccountTypeSavings AccountType = "savings"
	AccountTypeOther   AccountType = "other"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeMain, AccountTypeSavings, AccountTypeOther:
		return true
	}
	return false
}

// Account is a named balance bucket against which transactions post.
// Balance is written exclusively by the store's balance rule, never
// directly by a client.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MarshalJSON writes Balance as an exact 2-dp string.
func (a Account) MarshalJSON() ([]byte, error) {
	type account Account
	return json.Marshal(struct {
		account
		Balance string `json:"balance"`
	}{account(a), a.Balance.StringFixed(2)})
}
