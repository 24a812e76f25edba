// Package app owns the session coordinator: the single mutation boundary for
// the one live classroom.
package app

import (
	"sync"

	"github.com/arlet/classroom/internal/core"
)

// Coordinator owns the session components and serializes every mutation
// through one mutex, so the admin-claim race resolves deterministically and
// each operation's outbound events are computed from one consistent snapshot.
// Operations return the outbound set; they never deliver it themselves.
type Coordinator struct {
	mu              sync.RWMutex
	registry        *core.Registry
	admin           *core.AdminAuthority
	chat            *core.ChatLog
	board           *core.WhiteboardGate
	maxParticipants int
}

// NewCoordinator builds a fresh, empty session. maxParticipants <= 0 means
// no cap.
func NewCoordinator(adminSecret string, maxParticipants int) *Coordinator {
	return &Coordinator{
		registry:        core.NewRegistry(),
		admin:           core.NewAdminAuthority(adminSecret),
		chat:            core.NewChatLog(),
		board:           core.NewWhiteboardGate(),
		maxParticipants: maxParticipants,
	}
}

// Read-only query surface, outside the event channel.

func (c *Coordinator) ParticipantCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry.Count()
}

func (c *Coordinator) AdminPresent() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.admin.Present()
}

func (c *Coordinator) ChatCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chat.Len()
}

func (c *Coordinator) DrawingEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.board.Enabled()
}
