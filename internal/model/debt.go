package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DebtType is the direction of an informal debt: "owe" means the user
// owes the friend, "owed" means the friend owes the user.
type DebtType string

const (
	DebtOwe  DebtType = "owe"
	DebtOwed DebtType = "owed"
)

// Valid reports whether t is a known debt type.
func (t DebtType) Valid() bool {
	return t == DebtOwe || t == DebtOwed
}

// Debt is an informal IOU between the user and a named friend. Debts
// never post to accounts.
type Debt struct {
	ID          string          `json:"id"`
	FriendName  string          `json:"friendName"`
	Type        DebtType        `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Settled     bool            `json:"settled"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MarshalJSON writes Amount as an exact 2-dp string.
func (d Debt) MarshalJSON() ([]byte, error) {
	type debt Debt
	return json.Marshal(struct {
		debt
		Amount string `json:"amount"`
	}{debt(d), d.Amount.StringFixed(2)})
}
