package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

func (ctl *Controller) handleChatSend(sid domain.ConnID, data []byte) {
	type chatPayload struct {
		Body string `json:"body"`
	}
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad chat payload")
		return
	}
	ctl.dispatch(func() []core.Outbound {
		return ctl.coord.ChatSend(sid, p.Body)
	})
}

func (ctl *Controller) handleChatDelete(sid domain.ConnID, data []byte) {
	type deletePayload struct {
		MessageID int64 `json:"messageId"`
	}
	var p deletePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad chat delete payload")
		return
	}
	ctl.dispatch(func() []core.Outbound {
		return ctl.coord.ChatDelete(sid, p.MessageID)
	})
}
