package app

import (
	"encoding/json"

	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

const (
	SignalOffer     = "offer"
	SignalAnswer    = "answer"
	SignalCandidate = "candidate"
)

func validSignalKind(kind string) bool {
	switch kind {
	case SignalOffer, SignalAnswer, SignalCandidate:
		return true
	}
	return false
}

// Signal relays an opaque peer negotiation payload to one destination. The
// only membership check is that the destination is currently registered;
// otherwise the message is dropped silently and the negotiation layer is
// expected to cope.
func (c *Coordinator) Signal(from, to domain.ConnID, kind string, payload json.RawMessage) []core.Outbound {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !validSignalKind(kind) {
		return nil
	}
	if _, ok := c.registry.Lookup(from); !ok {
		return nil
	}
	if _, ok := c.registry.Lookup(to); !ok {
		return nil
	}
	return []core.Outbound{{
		Type:     core.EvtSignal,
		Data:     core.SignalData{From: from, Kind: kind, Payload: payload},
		Audience: core.ToConn(to),
	}}
}
