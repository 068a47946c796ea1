// Package server exposes the tracker over HTTP with gin. It talks to
// the entity store through the Store interface, which both the
// in-memory and the Postgres backends satisfy.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finbook-dev/finbook/internal/assist"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
	"github.com/finbook-dev/finbook/internal/summary"
)

// Store is everything the HTTP layer needs from a backend.
type Store interface {
	CreateAccount(store.AccountParams) (model.Account, error)
	Accounts() ([]model.Account, error)
	Account(accountID string) (model.Account, error)

	CreateTransaction(store.TransactionParams) (model.Transaction, error)
	Transactions(store.TransactionFilter) ([]model.Transaction, error)
	Transaction(txnID string) (model.Transaction, error)
	DeleteTransaction(txnID string) error

	CreateDebt(store.DebtParams) (model.Debt, error)
	Debts() ([]model.Debt, error)
	Debt(debtID string) (model.Debt, error)
	UpdateDebt(debtID string, u store.DebtUpdate) (model.Debt, error)
	SettleDebt(debtID string) (model.Debt, error)
	DeleteDebt(debtID string) error

	CreateReminder(store.ReminderParams) (model.Reminder, error)
	Reminders() ([]model.Reminder, error)
	Reminder(remID string) (model.Reminder, error)
	UpdateReminder(remID string, u store.ReminderUpdate) (model.Reminder, error)
	SnoozeReminder(remID string, until time.Time) (model.Reminder, error)
	MarkReminderPaid(remID string) (model.Reminder, error)
	DeleteReminder(remID string) error

	AppendMessage(content string, isUser bool) (model.ChatMessage, error)
	Messages() ([]model.ChatMessage, error)
	ClearMessages() error

	Snapshot() (store.Snapshot, error)
}

// Server holds the handler dependencies.
type Server struct {
	store     Store
	summaries *summary.Service
	chat      *assist.Service
}

// New builds the server and its routes.
func New(st Store, summaries *summary.Service, chat *assist.Service) *Server {
	return &Server{store: st, summaries: summaries, chat: chat}
}

// Router returns the configured gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/accounts", s.listAccounts)
		api.POST("/accounts", s.createAccount)
		api.GET("/accounts/:id", s.getAccount)

		api.GET("/transactions", s.listTransactions)
		api.POST("/transactions", s.createTransaction)
		api.GET("/transactions/:id", s.getTransaction)
		api.DELETE("/transactions/:id", s.deleteTransaction)

		api.GET("/debts", s.listDebts)
		api.POST("/debts", s.createDebt)
		api.GET("/debts/:id", s.getDebt)
		api.PATCH("/debts/:id", s.updateDebt)
		api.POST("/debts/:id/settle", s.settleDebt)
		api.DELETE("/debts/:id", s.deleteDebt)

		api.GET("/reminders", s.listReminders)
		api.POST("/reminders", s.createReminder)
		api.GET("/reminders/:id", s.getReminder)
		api.PATCH("/reminders/:id", s.updateReminder)
		api.POST("/reminders/:id/snooze", s.snoozeReminder)
		api.POST("/reminders/:id/paid", s.markReminderPaid)
		api.DELETE("/reminders/:id", s.deleteReminder)

		api.GET("/summary", s.getSummary)

		api.GET("/chat", s.chatHistory)
		api.POST("/chat", s.chatSend)
		api.DELETE("/chat", s.chatClear)
	}
	return r
}

// writeError maps store errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	var verr store.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
