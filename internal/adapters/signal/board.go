package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

func (ctl *Controller) handleStroke(sid domain.ConnID, data []byte) {
	var stroke domain.Stroke
	if err := json.Unmarshal(data, &stroke); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad stroke payload")
		return
	}
	ctl.dispatch(func() []core.Outbound {
		return ctl.coord.RelayStroke(sid, stroke)
	})
}

func (ctl *Controller) handleClearCanvas(sid domain.ConnID) {
	ctl.dispatch(func() []core.Outbound {
		return ctl.coord.ClearCanvas(sid)
	})
}

func (ctl *Controller) handleToggleDrawing(sid domain.ConnID, data []byte) {
	type togglePayload struct {
		Enabled bool `json:"enabled"`
	}
	var p togglePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad toggle payload")
		return
	}
	ctl.dispatch(func() []core.Outbound {
		return ctl.coord.ToggleDrawing(sid, p.Enabled)
	})
}
