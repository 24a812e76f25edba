package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

// handleSignal relays a peer negotiation message to one destination. The
// payload is never inspected here or anywhere server-side.
func (ctl *Controller) handleSignal(sid domain.ConnID, data []byte) {
	type signalPayload struct {
		To      string          `json:"to"`
		Kind    string          `json:"kind"`
		Payload json.RawMessage `json:"payload"`
	}
	var p signalPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad signal payload")
		return
	}
	ctl.dispatch(func() []core.Outbound {
		return ctl.coord.Signal(sid, domain.ConnID(p.To), p.Kind, p.Payload)
	})
}
