package app

import (
	"errors"

	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join registers a connection as a participant. A supplied secret is an
// inline admin claim; a failed claim leaves the joiner a student with no
// error beyond the role in the snapshot.
func (c *Coordinator) Join(id domain.ConnID, name, secret string) []core.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.registry.Lookup(id); ok {
		// Duplicate join on a live connection is ignored.
		return nil
	}
	if c.maxParticipants > 0 && c.registry.Count() >= c.maxParticipants {
		log.Warn().Str("module", "app.coordinator").Str("conn", string(id)).Int("cap", c.maxParticipants).Msg("join rejected, session full")
		return []core.Outbound{{
			Type:     core.EvtError,
			Data:     core.ErrorData{Error: "session_full"},
			Audience: core.ToConn(id),
		}}
	}
	p, err := domain.NewParticipant(id, name)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.coordinator").Str("conn", string(id)).Msg("join rejected, bad name")
		return []core.Outbound{{
			Type:     core.EvtError,
			Data:     core.ErrorData{Error: "invalid_name"},
			Audience: core.ToConn(id),
		}}
	}
	c.registry.Add(p)
	if secret != "" {
		if err := c.admin.Claim(id, secret); err == nil {
			p.Role = domain.RoleAdmin
		}
	}
	log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Str("name", p.Name).Str("role", string(p.Role)).Msg("participant joined")

	snapshot := core.SnapshotData{
		You:            *p,
		Roster:         c.registry.Snapshot(),
		Chat:           c.chat.Messages(),
		DrawingEnabled: c.board.Enabled(),
	}
	return []core.Outbound{
		{Type: core.EvtJoinAccepted, Data: snapshot, Audience: core.ToConn(id)},
		{Type: core.EvtParticipantJoined, Data: core.ParticipantData{Participant: *p}, Audience: core.ExceptConn(id, c.registry.ConnIDs(id))},
	}
}

// ClaimAdmin promotes a joined participant if the secret matches and no admin
// exists. The requester always gets an explicit result; other authorization
// failures in this system stay silent, this one does not.
func (c *Coordinator) ClaimAdmin(id domain.ConnID, secret string) []core.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.registry.Lookup(id)
	if !ok {
		return nil
	}
	if err := c.admin.Claim(id, secret); err != nil {
		return []core.Outbound{{
			Type:     core.EvtClaimResult,
			Data:     core.ClaimResultData{Granted: false, Reason: claimReason(err)},
			Audience: core.ToConn(id),
		}}
	}
	p.Role = domain.RoleAdmin
	return []core.Outbound{
		{Type: core.EvtClaimResult, Data: core.ClaimResultData{Granted: true}, Audience: core.ToConn(id)},
		{Type: core.EvtParticipantUpdated, Data: core.ParticipantData{Participant: *p}, Audience: core.ExceptConn(id, c.registry.ConnIDs(id))},
	}
}

func claimReason(err error) string {
	switch {
	case errors.Is(err, core.ErrAdminAlreadyPresent):
		return "admin_already_present"
	default:
		return "wrong_secret"
	}
}

// Disconnect handles a connection going away, joined or not. An admin leaving
// tears the whole session down; a student leaving is a roster edit. Removing
// an already-absent connection is a no-op with no broadcast.
func (c *Coordinator) Disconnect(id domain.ConnID) []core.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.registry.Remove(id)
	if !ok {
		return nil
	}
	if adminID, present := c.admin.AdminID(); present && adminID == id {
		return c.resetSession(id)
	}
	log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Msg("participant left")
	return []core.Outbound{{
		Type:     core.EvtParticipantLeft,
		Data:     core.ParticipantData{Participant: *p},
		Audience: core.ToAll(c.registry.ConnIDs("")),
	}}
}

// resetSession is the teardown rule: the admin is gone, everyone else is told
// the session ended, and the state returns to its initial empty values.
// Callers hold c.mu and have already removed the admin from the registry.
func (c *Coordinator) resetSession(adminID domain.ConnID) []core.Outbound {
	log.Info().Str("module", "app.coordinator").Str("conn", string(adminID)).Msg("admin left, resetting session")
	// Recipients are captured before the reset wipes the registry.
	out := []core.Outbound{{
		Type:     core.EvtSessionEnded,
		Audience: core.ExceptConn(adminID, c.registry.ConnIDs(adminID)),
	}}
	c.admin.Release()
	c.registry.Reset()
	c.chat.Reset()
	c.board.SetEnabled(true)
	return out
}

// StreamStatus flips a participant's media flag and tells everyone else.
func (c *Coordinator) StreamStatus(id domain.ConnID, active bool) []core.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.registry.Lookup(id)
	if !ok {
		return nil
	}
	p.StreamActive = active
	return []core.Outbound{{
		Type:     core.EvtStreamStatus,
		Data:     core.StreamStatusData{ConnID: id, Active: active},
		Audience: core.ExceptConn(id, c.registry.ConnIDs(id)),
	}}
}
