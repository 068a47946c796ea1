package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
)

type createReminderRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	Recurring   bool            `json:"recurring"`
}

type updateReminderRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *time.Time       `json:"dueDate"`
	Status      *string          `json:"status"`
	Recurring   *bool            `json:"recurring"`
}

func (r updateReminderRequest) toUpdate() store.ReminderUpdate {
	u := store.ReminderUpdate{
		Title:       r.Title,
		Description: r.Description,
		Amount:      r.Amount,
		DueDate:     r.DueDate,
		Recurring:   r.Recurring,
	}
	if r.Status != nil {
		status := model.ReminderStatus(*r.Status)
		u.Status = &status
	}
	return u
}

type snoozeReminderRequest struct {
	Until time.Time `json:"until"`
}

func (s *Server) listReminders(c *gin.Context) {
	reminders, err := s.store.Reminders()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (s *Server) createReminder(c *gin.Context) {
	var req createReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := s.store.CreateReminder(store.ReminderParams{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Recurring:   req.Recurring,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) getReminder(c *gin.Context) {
	r, err := s.store.Reminder(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) updateReminder(c *gin.Context) {
	var req updateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := s.store.UpdateReminder(c.Param("id"), req.toUpdate())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) snoozeReminder(c *gin.Context) {
	var req snoozeReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := s.store.SnoozeReminder(c.Param("id"), req.Until)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) markReminderPaid(c *gin.Context) {
	r, err := s.store.MarkReminderPaid(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) deleteReminder(c *gin.Context) {
	if err := s.store.DeleteReminder(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
