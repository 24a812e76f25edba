package domain

import "time"

// ChatMessage is one transcript entry. Role is captured at send time and is
// not re-derived when the sender's role changes later.
type ChatMessage struct {
	ID         int64     `json:"id"`
	SenderID   ConnID    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Role       Role      `json:"role"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sentAt"`
}
