// Package core holds the session components and the outbound event model.
// Components own state; they never touch transport resources.
package core

import (
	"encoding/json"

	"github.com/arlet/classroom/internal/domain"
)

type EventType string

const (
	EvtJoinAccepted       EventType = "join_accepted"
	EvtParticipantJoined  EventType = "participant_joined"
	EvtParticipantLeft    EventType = "participant_left"
	EvtParticipantUpdated EventType = "participant_updated"
	EvtClaimResult        EventType = "claim_result"
	EvtChatMessage        EventType = "chat_message"
	EvtChatDeleted        EventType = "chat_deleted"
	EvtStroke             EventType = "stroke"
	EvtCanvasCleared      EventType = "canvas_cleared"
	EvtDrawingToggled     EventType = "drawing_toggled"
	EvtStreamStatus       EventType = "stream_status"
	EvtSessionEnded       EventType = "session_ended"
	EvtSignal             EventType = "signal"
	EvtError              EventType = "error"
)

type AudienceKind int

const (
	AudienceAll AudienceKind = iota
	AudienceExcept
	AudienceConn
)

// Audience says which connections an outbound event goes to. For broadcast
// kinds the recipient set is resolved from session membership at mutation
// time, so transport connections that never joined (or were orphaned by a
// session reset) receive no room broadcasts.
type Audience struct {
	Kind       AudienceKind
	Conn       domain.ConnID   // target for AudienceConn, excluded id for AudienceExcept
	Recipients []domain.ConnID // resolved joined connections for broadcast kinds
}

func ToAll(recipients []domain.ConnID) Audience {
	return Audience{Kind: AudienceAll, Recipients: recipients}
}

func ExceptConn(id domain.ConnID, recipients []domain.ConnID) Audience {
	return Audience{Kind: AudienceExcept, Conn: id, Recipients: recipients}
}

func ToConn(id domain.ConnID) Audience { return Audience{Kind: AudienceConn, Conn: id} }

// Outbound pairs one event with its audience. Coordinator operations return
// these so delivery can be asserted on without a live transport.
type Outbound struct {
	Type     EventType
	Data     any
	Audience Audience
}

// SnapshotData is the private reply to a joiner: the full session state as of
// the moment the join was processed.
type SnapshotData struct {
	You            domain.Participant   `json:"you"`
	Roster         []domain.Participant `json:"roster"`
	Chat           []domain.ChatMessage `json:"chat"`
	DrawingEnabled bool                 `json:"drawingEnabled"`
}

type ParticipantData struct {
	Participant domain.Participant `json:"participant"`
}

type ChatMessageData struct {
	Message domain.ChatMessage `json:"message"`
}

type ChatDeletedData struct {
	MessageID int64 `json:"messageId"`
}

type StrokeData struct {
	From   domain.ConnID `json:"from"`
	Stroke domain.Stroke `json:"stroke"`
}

type DrawingToggledData struct {
	Enabled bool `json:"enabled"`
}

type StreamStatusData struct {
	ConnID domain.ConnID `json:"id"`
	Active bool          `json:"active"`
}

type ClaimResultData struct {
	Granted bool   `json:"granted"`
	Reason  string `json:"reason,omitempty"`
}

// SignalData carries a peer negotiation message. Payload stays opaque; the
// server never parses it.
type SignalData struct {
	From    domain.ConnID   `json:"from"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type ErrorData struct {
	Error string `json:"error"`
}
