package store

import (
	"github.com/finbook-dev/finbook/internal/id"
	"github.com/finbook-dev/finbook/internal/model"
)

// AppendMessage stores a chat message. Messages are append-only; the
// only other mutation is ClearMessages.
func (s *Store) AppendMessage(content string, isUser bool) (model.ChatMessage, error) {
	if content == "" {
		return model.ChatMessage{}, ValidationError{Field: "content", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := model.ChatMessage{
		ID:        id.New(id.KindMessage),
		Content:   content,
		IsUser:    isUser,
		CreatedAt: s.timestamp(),
	}
	s.messages = append(s.messages, m)
	return m, nil
}

// Messages returns all chat messages, oldest first.
func (s *Store) Messages() ([]model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listMessages(), nil
}

func (s *Store) listMessages() []model.ChatMessage {
	out := make([]model.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// ClearMessages removes every chat message unconditionally.
func (s *Store) ClearMessages() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	return nil
}
