package models

import "time"

// ChatMessage is a single turn in the assistant conversation, as pushed to
// websocket clients.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" | "model"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
