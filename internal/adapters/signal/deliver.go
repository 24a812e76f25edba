package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

// dispatch runs one coordinator operation and delivers its outbound set
// before the next operation may run. The coordinator computes the set from
// one consistent snapshot; serializing delivery keeps fan-out order
// consistent across connections.
func (ctl *Controller) dispatch(op func() []core.Outbound) {
	ctl.dispatchMu.Lock()
	defer ctl.dispatchMu.Unlock()
	ctl.deliver(op())
}

func (ctl *Controller) deliver(outs []core.Outbound) {
	for _, out := range outs {
		frame, err := encode(out)
		if err != nil {
			log.Error().Err(err).Str("module", "signal").Str("event", string(out.Type)).Msg("encode outbound")
			continue
		}
		// Broadcasts go to the recipients the coordinator resolved from
		// session membership, never to every open socket: a connection that
		// has not joined gets nothing but its own targeted replies.
		switch out.Audience.Kind {
		case core.AudienceConn:
			ctl.sendTo(out.Audience.Conn, frame)
		default:
			for _, id := range out.Audience.Recipients {
				ctl.sendTo(id, frame)
			}
		}
	}
}

// encode wraps the event in the outbound wire envelope.
func encode(out core.Outbound) ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Data any    `json:"data,omitempty"`
	}{Type: string(out.Type), Data: out.Data})
}

// sendTo writes to one connection, best-effort. A missing connection means
// the peer closed mid-event; the frame is simply dropped.
func (ctl *Controller) sendTo(id domain.ConnID, frame []byte) {
	ctl.connsMu.RLock()
	conn, ok := ctl.conns[id]
	ctl.connsMu.RUnlock()
	if !ok {
		return
	}
	if err := conn.TrySend(frame); err != nil {
		if errors.Is(err, ErrBackpressure) {
			log.Warn().Str("module", "signal").Str("conn", string(id)).Msg("send channel full, dropping frame")
			return
		}
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("send failed")
	}
}
