package model

import "time"

// ChatMessage is one turn in the assistant conversation. Append-only
// except for a full clear.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"isUser"`
	CreatedAt time.Time `json:"createdAt"`
}
