// Package assist wires the chat surface to an assistant. The assistant
// itself is a capability behind the Assistant interface: it receives a
// read-only summary overview plus the user's message and returns text.
// The service owns persisting both sides of the exchange as chat
// messages; it owns nothing about how the reply is produced.
package assist

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/finbook-dev/finbook/internal/chatlog"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/summary"
)

// Assistant produces a reply to a user message given the current
// financial overview as context.
type Assistant interface {
	Reply(ctx context.Context, ov summary.Overview, message string) (string, error)
}

// ChatStore is the slice of the entity store the chat service needs.
type ChatStore interface {
	AppendMessage(content string, isUser bool) (model.ChatMessage, error)
	Messages() ([]model.ChatMessage, error)
	ClearMessages() error
}

// Service handles one conversation: a user message in, an assistant
// message out, both persisted.
type Service struct {
	store         ChatStore
	summaries     *summary.Service
	assistant     Assistant
	transcriptDir string
}

// NewService creates a chat Service.
func NewService(store ChatStore, summaries *summary.Service, assistant Assistant) *Service {
	return &Service{store: store, summaries: summaries, assistant: assistant}
}

// LogTo enables the CSV transcript under dir/logs/chat-log.csv.
func (s *Service) LogTo(dir string) {
	s.transcriptDir = dir
}

// Send persists the user message, asks the assistant for a reply with
// the current overview as context, and persists the reply verbatim.
// If the assistant fails, the user message stays persisted and the
// error is returned to the caller.
func (s *Service) Send(ctx context.Context, text string) (user, reply model.ChatMessage, err error) {
	user, err = s.store.AppendMessage(text, true)
	if err != nil {
		return model.ChatMessage{}, model.ChatMessage{}, err
	}

	ov, err := s.summaries.Overview(time.Now())
	if err != nil {
		return user, model.ChatMessage{}, err
	}
	answer, err := s.assistant.Reply(ctx, ov, text)
	if err != nil {
		return user, model.ChatMessage{}, fmt.Errorf("assistant: %w", err)
	}

	reply, err = s.store.AppendMessage(answer, false)
	if err != nil {
		return user, model.ChatMessage{}, err
	}

	s.logExchange(user, reply)
	return user, reply, nil
}

// History returns the conversation, oldest first.
func (s *Service) History() ([]model.ChatMessage, error) {
	return s.store.Messages()
}

// Clear wipes the conversation.
func (s *Service) Clear() error {
	return s.store.ClearMessages()
}

func (s *Service) logExchange(user, reply model.ChatMessage) {
	if s.transcriptDir == "" {
		return
	}
	entries := []chatlog.Entry{
		{Timestamp: user.CreatedAt, Role: "user", MessageID: user.ID, Content: user.Content},
		{Timestamp: reply.CreatedAt, Role: "assistant", MessageID: reply.ID, Content: reply.Content},
	}
	if err := chatlog.Append(s.transcriptDir, entries); err != nil {
		log.Printf("warning: failed to write chat log: %v", err)
	}
}
