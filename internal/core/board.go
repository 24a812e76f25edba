package core

import (
	"sync"

	"github.com/arlet/classroom/internal/domain"
)

// WhiteboardGate is the single drawing permission flag. The server keeps no
// canvas state; it only decides whether stroke events may be relayed.
type WhiteboardGate struct {
	mu      sync.RWMutex
	enabled bool
}

func NewWhiteboardGate() *WhiteboardGate {
	return &WhiteboardGate{enabled: true}
}

func (g *WhiteboardGate) SetEnabled(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = enabled
}

func (g *WhiteboardGate) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

// Authorize is the one access-control predicate for relaying strokes and
// clearing: drawing is open to everyone while enabled, and to the admin always.
func (g *WhiteboardGate) Authorize(p *domain.Participant) bool {
	if p == nil {
		return false
	}
	return g.Enabled() || p.Role == domain.RoleAdmin
}
