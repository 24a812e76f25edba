package app

import (
	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

// RelayStroke forwards a stroke to everyone else if the whiteboard gate
// authorizes the sender. Unauthorized strokes are dropped without error;
// the channel is best-effort, unbuffered and unordered beyond arrival.
func (c *Coordinator) RelayStroke(id domain.ConnID, stroke domain.Stroke) []core.Outbound {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.registry.Lookup(id)
	if !ok || !c.board.Authorize(p) {
		return nil
	}
	return []core.Outbound{{
		Type:     core.EvtStroke,
		Data:     core.StrokeData{From: id, Stroke: stroke},
		Audience: core.ExceptConn(id, c.registry.ConnIDs(id)),
	}}
}

// ClearCanvas broadcasts a clear signal. There is no server-side buffer to
// wipe; clients own the pixels.
func (c *Coordinator) ClearCanvas(id domain.ConnID) []core.Outbound {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.registry.Lookup(id)
	if !ok || p.Role != domain.RoleAdmin {
		return nil
	}
	return []core.Outbound{{
		Type:     core.EvtCanvasCleared,
		Audience: core.ToAll(c.registry.ConnIDs("")),
	}}
}

// ToggleDrawing flips the whiteboard gate, admin only.
func (c *Coordinator) ToggleDrawing(id domain.ConnID, enabled bool) []core.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.registry.Lookup(id)
	if !ok || p.Role != domain.RoleAdmin {
		return nil
	}
	c.board.SetEnabled(enabled)
	return []core.Outbound{{
		Type:     core.EvtDrawingToggled,
		Data:     core.DrawingToggledData{Enabled: enabled},
		Audience: core.ToAll(c.registry.ConnIDs("")),
	}}
}
