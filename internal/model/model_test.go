package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMoneyFieldsMarshalAsFixedTwoDecimalStrings(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		v    any
		want string
	}{
		{
			"account whole amount",
			Account{ID: "acc_1", Name: "Main Account", Type: AccountTypeMain, Balance: dec("2450.00"), CreatedAt: now},
			`"balance":"2450.00"`,
		},
		{
			"account one decimal place",
			Account{ID: "acc_2", Name: "Travel", Type: AccountTypeOther, Balance: dec("120.5"), CreatedAt: now},
			`"balance":"120.50"`,
		},
		{
			"transaction",
			Transaction{ID: "txn_1", AccountID: "acc_1", Type: TransactionExpense, Amount: dec("50"), Category: CategoryFood, CreatedAt: now},
			`"amount":"50.00"`,
		},
		{
			"debt",
			Debt{ID: "debt_1", FriendName: "Ravi", Type: DebtOwe, Amount: dec("80"), CreatedAt: now},
			`"amount":"80.00"`,
		},
		{
			"reminder",
			Reminder{ID: "rem_1", Title: "rent", Amount: dec("500.00"), DueDate: now, Status: ReminderPending, CreatedAt: now},
			`"amount":"500.00"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.v)
			require.NoError(t, err)
			assert.Contains(t, string(data), tc.want)
		})
	}
}

func TestAccountMarshalKeepsOtherFields(t *testing.T) {
	a := Account{ID: "acc_1", Name: "Main Account", Type: AccountTypeMain, Balance: dec("2450.00")}
	data, err := json.Marshal(a)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "acc_1", got["id"])
	assert.Equal(t, "Main Account", got["name"])
	assert.Equal(t, "main", got["type"])
	assert.Equal(t, "2450.00", got["balance"])
}
