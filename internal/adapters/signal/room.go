package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

func (ctl *Controller) handleJoin(sid domain.ConnID, data []byte) {
	type joinPayload struct {
		Name   string `json:"name"`
		Secret string `json:"secret,omitempty"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		return
	}
	ctl.dispatch(func() []core.Outbound {
		return ctl.coord.Join(sid, p.Name, p.Secret)
	})
}

func (ctl *Controller) handleClaimAdmin(sid domain.ConnID, data []byte) {
	type claimPayload struct {
		Secret string `json:"secret"`
	}
	var p claimPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad claim payload")
		return
	}
	if !ctl.limiter.Allow(sid) {
		log.Warn().Str("module", "signal").Str("conn", string(sid)).Msg("claim attempts rate limited")
		// Claims always answer; a throttled attempt is still a denial.
		ctl.dispatch(func() []core.Outbound {
			return []core.Outbound{{
				Type:     core.EvtClaimResult,
				Data:     core.ClaimResultData{Granted: false, Reason: "rate_limited"},
				Audience: core.ToConn(sid),
			}}
		})
		return
	}
	ctl.dispatch(func() []core.Outbound {
		return ctl.coord.ClaimAdmin(sid, p.Secret)
	})
}

func (ctl *Controller) handleStreamStatus(sid domain.ConnID, data []byte) {
	type statusPayload struct {
		Active bool `json:"active"`
	}
	var p statusPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad stream status payload")
		return
	}
	ctl.dispatch(func() []core.Outbound {
		return ctl.coord.StreamStatus(sid, p.Active)
	})
}
