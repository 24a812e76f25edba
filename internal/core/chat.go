package core

import (
	"sync"
	"time"

	"github.com/arlet/classroom/internal/domain"
)

// ChatLog is the ordered, append-only transcript. Deletion exists but is
// admin-gated by the coordinator; the log itself only knows ids.
type ChatLog struct {
	mu       sync.RWMutex
	messages []*domain.ChatMessage
	lastID   int64
}

func NewChatLog() *ChatLog {
	return &ChatLog{}
}

// Append records a message, capturing the sender's role at send time.
// IDs derive from the send time and are bumped on collision, so they stay
// unique and monotonic within the session lifetime.
func (l *ChatLog) Append(sender *domain.Participant, body string) *domain.ChatMessage {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	msg := &domain.ChatMessage{
		ID:         id,
		SenderID:   sender.ConnID,
		SenderName: sender.Name,
		Role:       sender.Role,
		Body:       body,
		SentAt:     now,
	}
	l.messages = append(l.messages, msg)
	return msg
}

// Delete removes a message by id, preserving the order of the rest.
func (l *ChatLog) Delete(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, m := range l.messages {
		if m.ID == id {
			l.messages = append(l.messages[:i], l.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Messages returns value copies in append order.
func (l *ChatLog) Messages() []domain.ChatMessage {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.ChatMessage, 0, len(l.messages))
	for _, m := range l.messages {
		out = append(out, *m)
	}
	return out
}

func (l *ChatLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

func (l *ChatLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = nil
}
