package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
)

type createTransactionRequest struct {
	AccountID   string          `json:"accountId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
}

func (s *Server) createTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	txn, err := s.store.CreateTransaction(store.TransactionParams{
		AccountID:   req.AccountID,
		Type:        model.TransactionType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		Category:    model.Category(req.Category),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// listTransactions narrows by optional query parameters: accountId,
// category, startDate and endDate (RFC 3339 or plain YYYY-MM-DD).
func (s *Server) listTransactions(c *gin.Context) {
	f := store.TransactionFilter{
		AccountID: c.Query("accountId"),
		Category:  model.Category(c.Query("category")),
	}
	if v := c.Query("startDate"); v != "" {
		ts, err := parseTime(v)
		if err != nil {
			badRequest(c, fmt.Errorf("startDate: %w", err))
			return
		}
		f.StartDate = &ts
	}
	if v := c.Query("endDate"); v != "" {
		ts, err := parseTime(v)
		if err != nil {
			badRequest(c, fmt.Errorf("endDate: %w", err))
			return
		}
		f.EndDate = &ts
	}
	txns, err := s.store.Transactions(f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

func (s *Server) getTransaction(c *gin.Context) {
	txn, err := s.store.Transaction(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (s *Server) deleteTransaction(c *gin.Context) {
	if err := s.store.DeleteTransaction(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseTime(v string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, v); err == nil {
		return ts, nil
	}
	return time.ParseInLocation("2006-01-02", v, time.Local)
}
