package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction. Amounts are always
// positive magnitudes; the sign is carried here.
type TransactionType string

const (
	TransactionExpense TransactionType = "expense"
	TransactionIncome  TransactionType = "income"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionExpense || t == TransactionIncome
}

// Category labels a transaction for spending breakdowns.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryStudy         Category = "study"
	CategoryMess          Category = "mess"
	CategoryOther         Category = "other"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryStudy,
		CategoryMess,
		CategoryOther,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

// Transaction is a single income or expense event against one account.
// Immutable once created, except for deletion.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MarshalJSON writes Amount as an exact 2-dp string.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type transaction Transaction
	return json.Marshal(struct {
		transaction
		Amount string `json:"amount"`
	}{transaction(t), t.Amount.StringFixed(2)})
}

// Signed returns the amount with the sign implied by the type
// (income positive, expense negative).
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
