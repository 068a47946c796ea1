package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
)

type createDebtRequest struct {
	FriendName  string          `json:"friendName"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type updateDebtRequest struct {
	FriendName  *string          `json:"friendName"`
	Type        *string          `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Settled     *bool            `json:"settled"`
}

func (r updateDebtRequest) toUpdate() store.DebtUpdate {
	u := store.DebtUpdate{
		FriendName:  r.FriendName,
		Amount:      r.Amount,
		Description: r.Description,
		Settled:     r.Settled,
	}
	if r.Type != nil {
		t := model.DebtType(*r.Type)
		u.Type = &t
	}
	return u
}

func (s *Server) listDebts(c *gin.Context) {
	debts, err := s.store.Debts()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, debts)
}

func (s *Server) createDebt(c *gin.Context) {
	var req createDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, err := s.store.CreateDebt(store.DebtParams{
		FriendName:  req.FriendName,
		Type:        model.DebtType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (s *Server) getDebt(c *gin.Context) {
	d, err := s.store.Debt(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) updateDebt(c *gin.Context) {
	var req updateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, err := s.store.UpdateDebt(c.Param("id"), req.toUpdate())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) settleDebt(c *gin.Context) {
	d, err := s.store.SettleDebt(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) deleteDebt(c *gin.Context) {
	if err := s.store.DeleteDebt(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
