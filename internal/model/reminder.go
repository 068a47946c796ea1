package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ReminderStatus is the lifecycle state of a payment reminder.
type ReminderStatus string

const (
	ReminderPending ReminderStatus = "pending"
	ReminderPaid    ReminderStatus = "paid"
	ReminderSnoozed ReminderStatus = "snoozed"
)

// Valid reports whether s is a known reminder status.
func (s ReminderStatus) Valid() bool {
	switch s {
	case ReminderPending, ReminderPaid, ReminderSnoozed:
		return true
	}
	return false
}

// Reminder is a scheduled, optionally recurring payment obligation.
type Reminder struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	Status      ReminderStatus  `json:"status"`
	Recurring   bool            `json:"recurring"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MarshalJSON writes Amount as an exact 2-dp string.
func (r Reminder) MarshalJSON() ([]byte, error) {
	type reminder Reminder
	return json.Marshal(struct {
		reminder
		Amount string `json:"amount"`
	}{reminder(r), r.Amount.StringFixed(2)})
}
