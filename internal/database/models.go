package database

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
)

// Account is the accounts table row.
type Account struct {
	ID        string          `gorm:"primaryKey;size:64"`
	Name      string          `gorm:"size:255;not null"`
	Type      string          `gorm:"size:16;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (a Account) toModel() model.Account {
	return model.Account{
		ID:        a.ID,
		Name:      a.Name,
		Type:      model.AccountType(a.Type),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

// Transaction is the transactions table row, with a foreign key to
// accounts.
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:64"`
	AccountID   string          `gorm:"size:64;not null;index"`
	Account     Account         `gorm:"foreignKey:AccountID;references:ID"`
	Type        string          `gorm:"size:16;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description string          `gorm:"size:255"`
	Category    string          `gorm:"size:32;not null;index"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

func (t Transaction) toModel() model.Transaction {
	return model.Transaction{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Type:        model.TransactionType(t.Type),
		Amount:      t.Amount,
		Description: t.Description,
		Category:    model.Category(t.Category),
		CreatedAt:   t.CreatedAt,
	}
}

// Debt is the debts table row.
type Debt struct {
	ID          string          `gorm:"primaryKey;size:64"`
	FriendName  string          `gorm:"size:255;not null"`
	Type        string          `gorm:"size:16;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description string          `gorm:"size:255"`
	Settled     bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

func (d Debt) toModel() model.Debt {
	return model.Debt{
		ID:          d.ID,
		FriendName:  d.FriendName,
		Type:        model.DebtType(d.Type),
		Amount:      d.Amount,
		Description: d.Description,
		Settled:     d.Settled,
		CreatedAt:   d.CreatedAt,
	}
}

// Reminder is the reminders table row.
type Reminder struct {
	ID          string          `gorm:"primaryKey;size:64"`
	Title       string          `gorm:"size:255;not null"`
	Description string          `gorm:"size:255"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DueDate     time.Time       `gorm:"not null;index"`
	Status      string          `gorm:"size:16;not null"`
	Recurring   bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time       `gorm:"not null"`
}

func (r Reminder) toModel() model.Reminder {
	return model.Reminder{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Amount:      r.Amount,
		DueDate:     r.DueDate,
		Status:      model.ReminderStatus(r.Status),
		Recurring:   r.Recurring,
		CreatedAt:   r.CreatedAt,
	}
}

// ChatMessage is the chat_messages table row.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Content   string    `gorm:"type:text;not null"`
	IsUser    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (m ChatMessage) toModel() model.ChatMessage {
	return model.ChatMessage{
		ID:        m.ID,
		Content:   m.Content,
		IsUser:    m.IsUser,
		CreatedAt: m.CreatedAt,
	}
}
