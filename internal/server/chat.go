package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Content string `json:"content"`
}

func (s *Server) chatHistory(c *gin.Context) {
	history, err := s.chat.History()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (s *Server) chatSend(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, reply, err := s.chat.Send(c.Request.Context(), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "reply": reply})
}

func (s *Server) chatClear(c *gin.Context) {
	if err := s.chat.Clear(); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getSummary(c *gin.Context) {
	ov, err := s.summaries.Overview(time.Now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}
