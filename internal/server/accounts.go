package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
)

type createAccountRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

func (s *Server) listAccounts(c *gin.Context) {
	accounts, err := s.store.Accounts()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (s *Server) createAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	acct, err := s.store.CreateAccount(store.AccountParams{
		Name:           req.Name,
		Type:           model.AccountType(req.Type),
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, acct)
}

func (s *Server) getAccount(c *gin.Context) {
	acct, err := s.store.Account(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, acct)
}
