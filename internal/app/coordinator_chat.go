package app

import (
	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

// ChatSend appends to the transcript and broadcasts the new message. Unknown
// senders and empty bodies emit nothing.
func (c *Coordinator) ChatSend(id domain.ConnID, body string) []core.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.registry.Lookup(id)
	if !ok || body == "" {
		return nil
	}
	msg := c.chat.Append(p, body)
	return []core.Outbound{{
		Type:     core.EvtChatMessage,
		Data:     core.ChatMessageData{Message: *msg},
		Audience: core.ToAll(c.registry.ConnIDs("")),
	}}
}

// ChatDelete removes one message by id. Only the admin may delete; anyone
// else, or a miss on the id, changes nothing and broadcasts nothing.
func (c *Coordinator) ChatDelete(id domain.ConnID, messageID int64) []core.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.registry.Lookup(id)
	if !ok || p.Role != domain.RoleAdmin {
		return nil
	}
	if !c.chat.Delete(messageID) {
		return nil
	}
	return []core.Outbound{{
		Type:     core.EvtChatDeleted,
		Data:     core.ChatDeletedData{MessageID: messageID},
		Audience: core.ToAll(c.registry.ConnIDs("")),
	}}
}
