package app_test

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlet/classroom/internal/app"
	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

const secret = "teach123"

func newSession() *app.Coordinator {
	return app.NewCoordinator(secret, 0)
}

func findEvent(t *testing.T, outs []core.Outbound, typ core.EventType) core.Outbound {
	t.Helper()
	for _, out := range outs {
		if out.Type == typ {
			return out
		}
	}
	t.Fatalf("no %s event in %v", typ, outs)
	return core.Outbound{}
}

func hasEvent(outs []core.Outbound, typ core.EventType) bool {
	for _, out := range outs {
		if out.Type == typ {
			return true
		}
	}
	return false
}

func TestJoinWithSecretGrantsAdmin(t *testing.T) {
	c := newSession()

	outs := c.Join("alice", "Alice", secret)
	require.Len(t, outs, 2)

	accepted := findEvent(t, outs, core.EvtJoinAccepted)
	assert.Equal(t, core.ToConn("alice"), accepted.Audience)
	snap := accepted.Data.(core.SnapshotData)
	assert.Equal(t, domain.RoleAdmin, snap.You.Role)
	assert.Len(t, snap.Roster, 1)
	assert.Empty(t, snap.Chat)
	assert.True(t, snap.DrawingEnabled)

	joined := findEvent(t, outs, core.EvtParticipantJoined)
	assert.Equal(t, core.AudienceExcept, joined.Audience.Kind)
	assert.Equal(t, domain.ConnID("alice"), joined.Audience.Conn)
	assert.Empty(t, joined.Audience.Recipients, "first joiner broadcasts to no one")

	assert.True(t, c.AdminPresent())
	assert.Equal(t, 1, c.ParticipantCount())
}

func TestJoinWithoutSecretIsStudent(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", secret)

	outs := c.Join("bob", "Bob", "")
	snap := findEvent(t, outs, core.EvtJoinAccepted).Data.(core.SnapshotData)
	assert.Equal(t, domain.RoleStudent, snap.You.Role)
	assert.Len(t, snap.Roster, 2)
}

func TestJoinWithSecretWhileAdminPresentStaysStudent(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", secret)

	outs := c.Join("bob", "Bob", secret)
	snap := findEvent(t, outs, core.EvtJoinAccepted).Data.(core.SnapshotData)
	assert.Equal(t, domain.RoleStudent, snap.You.Role, "claim fails silently at join")
}

func TestJoinSnapshotReflectsPriorMutations(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", secret)
	c.ChatSend("alice", "welcome")
	deleted := c.ChatSend("alice", "typo")
	msgID := deleted[0].Data.(core.ChatMessageData).Message.ID
	c.ChatDelete("alice", msgID)
	c.ToggleDrawing("alice", false)

	outs := c.Join("bob", "Bob", "")
	snap := findEvent(t, outs, core.EvtJoinAccepted).Data.(core.SnapshotData)
	require.Len(t, snap.Chat, 1)
	assert.Equal(t, "welcome", snap.Chat[0].Body)
	assert.Equal(t, domain.RoleAdmin, snap.Chat[0].Role)
	assert.False(t, snap.DrawingEnabled)
	assert.Len(t, snap.Roster, 2)
}

func TestDuplicateJoinIgnored(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", "")

	assert.Nil(t, c.Join("alice", "Alice again", ""))
	assert.Equal(t, 1, c.ParticipantCount())
}

func TestJoinRejectedWhenFull(t *testing.T) {
	c := app.NewCoordinator(secret, 1)
	c.Join("alice", "Alice", "")

	outs := c.Join("bob", "Bob", "")
	require.Len(t, outs, 1)
	errEvt := findEvent(t, outs, core.EvtError)
	assert.Equal(t, core.ToConn("bob"), errEvt.Audience)
	assert.Equal(t, "session_full", errEvt.Data.(core.ErrorData).Error)
	assert.Equal(t, 1, c.ParticipantCount())
}

func TestJoinRejectedOnBadName(t *testing.T) {
	c := newSession()

	outs := c.Join("alice", "", "")
	require.Len(t, outs, 1)
	assert.Equal(t, "invalid_name", findEvent(t, outs, core.EvtError).Data.(core.ErrorData).Error)
	assert.Equal(t, 0, c.ParticipantCount())
}

func TestClaimAdminGranted(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", "")

	outs := c.ClaimAdmin("alice", secret)
	res := findEvent(t, outs, core.EvtClaimResult)
	assert.Equal(t, core.ToConn("alice"), res.Audience)
	assert.True(t, res.Data.(core.ClaimResultData).Granted)

	updated := findEvent(t, outs, core.EvtParticipantUpdated)
	assert.Equal(t, core.AudienceExcept, updated.Audience.Kind)
	assert.Equal(t, domain.ConnID("alice"), updated.Audience.Conn)
	assert.Equal(t, domain.RoleAdmin, updated.Data.(core.ParticipantData).Participant.Role)
	assert.True(t, c.AdminPresent())
}

func TestClaimAdminWrongSecret(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", "")

	outs := c.ClaimAdmin("alice", "nope")
	res := findEvent(t, outs, core.EvtClaimResult).Data.(core.ClaimResultData)
	assert.False(t, res.Granted)
	assert.Equal(t, "wrong_secret", res.Reason)
	assert.False(t, c.AdminPresent())
	assert.False(t, hasEvent(outs, core.EvtParticipantUpdated))
}

func TestClaimAdminFromUnjoinedIgnored(t *testing.T) {
	c := newSession()
	assert.Nil(t, c.ClaimAdmin("ghost", secret))
	assert.False(t, c.AdminPresent())
}

func TestConcurrentClaimsExactlyOneGranted(t *testing.T) {
	c := newSession()
	const n = 16
	ids := make([]domain.ConnID, n)
	for i := range ids {
		ids[i] = domain.ConnID(fmt.Sprintf("c%d", i))
		c.Join(ids[i], fmt.Sprintf("Student %d", i), "")
	}

	results := make([][]core.Outbound, n)
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id domain.ConnID) {
			defer wg.Done()
			results[i] = c.ClaimAdmin(id, secret)
		}(i, id)
	}
	wg.Wait()

	granted := 0
	for _, outs := range results {
		res := findEvent(t, outs, core.EvtClaimResult).Data.(core.ClaimResultData)
		if res.Granted {
			granted++
		} else {
			assert.Equal(t, "admin_already_present", res.Reason)
		}
	}
	assert.Equal(t, 1, granted)
}

func TestAdminDisconnectResetsSession(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", secret)
	c.Join("bob", "Bob", "")
	c.ChatSend("bob", "hi")
	c.ToggleDrawing("alice", false)

	outs := c.Disconnect("alice")
	require.Len(t, outs, 1)
	ended := findEvent(t, outs, core.EvtSessionEnded)
	assert.Equal(t, core.AudienceExcept, ended.Audience.Kind)
	assert.Equal(t, []domain.ConnID{"bob"}, ended.Audience.Recipients, "teardown notice reaches the participants present before the reset")

	// Initial-session values restored.
	assert.Equal(t, 0, c.ParticipantCount())
	assert.False(t, c.AdminPresent())
	assert.Equal(t, 0, c.ChatCount())
	assert.True(t, c.DrawingEnabled())

	// After the reset a correct-secret join claims admin again.
	rejoin := c.Join("bob", "Bob", secret)
	snap := findEvent(t, rejoin, core.EvtJoinAccepted).Data.(core.SnapshotData)
	assert.Equal(t, domain.RoleAdmin, snap.You.Role)
	assert.Len(t, snap.Roster, 1)
	assert.Empty(t, snap.Chat)
}

func TestStudentDisconnect(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", secret)
	c.Join("bob", "Bob", "")

	outs := c.Disconnect("bob")
	left := findEvent(t, outs, core.EvtParticipantLeft)
	assert.Equal(t, "bob", string(left.Data.(core.ParticipantData).Participant.ConnID))
	assert.Equal(t, []domain.ConnID{"alice"}, left.Audience.Recipients)
	assert.Equal(t, 1, c.ParticipantCount())
	assert.True(t, c.AdminPresent(), "student departure leaves the session intact")
}

func TestDisconnectIdempotent(t *testing.T) {
	c := newSession()
	c.Join("bob", "Bob", "")

	require.NotNil(t, c.Disconnect("bob"))
	assert.Nil(t, c.Disconnect("bob"), "second disconnect emits nothing")
	assert.Nil(t, c.Disconnect("ghost"))
}

func TestChatSendBroadcasts(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", "")

	outs := c.ChatSend("alice", "hello")
	msg := findEvent(t, outs, core.EvtChatMessage)
	assert.Equal(t, core.AudienceAll, msg.Audience.Kind)
	assert.Equal(t, []domain.ConnID{"alice"}, msg.Audience.Recipients, "sender included, nobody else")
	data := msg.Data.(core.ChatMessageData).Message
	assert.Equal(t, "hello", data.Body)
	assert.Equal(t, "Alice", data.SenderName)
	assert.Equal(t, domain.RoleStudent, data.Role)
	assert.Equal(t, 1, c.ChatCount())
}

func TestChatSendFromUnjoinedIgnored(t *testing.T) {
	c := newSession()
	assert.Nil(t, c.ChatSend("ghost", "hello"))
	assert.Nil(t, c.ChatSend("ghost", ""))
	assert.Equal(t, 0, c.ChatCount())
}

func TestChatSendEmptyBodyIgnored(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", "")

	assert.Nil(t, c.ChatSend("alice", ""))
	assert.Equal(t, 0, c.ChatCount())
}

func TestChatDeleteRequiresAdmin(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", secret)
	c.Join("bob", "Bob", "")
	sent := c.ChatSend("bob", "delete me")
	msgID := sent[0].Data.(core.ChatMessageData).Message.ID

	assert.Nil(t, c.ChatDelete("bob", msgID), "student delete never removes")
	assert.Equal(t, 1, c.ChatCount())

	outs := c.ChatDelete("alice", msgID)
	del := findEvent(t, outs, core.EvtChatDeleted)
	assert.Equal(t, msgID, del.Data.(core.ChatDeletedData).MessageID)
	assert.Equal(t, 0, c.ChatCount())

	assert.Nil(t, c.ChatDelete("alice", msgID), "missing id is a silent no-op")
}

func TestStrokeRelayRespectsGate(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", secret)
	c.Join("bob", "Bob", "")
	stroke := domain.Stroke{FromX: 1, FromY: 2, ToX: 3, ToY: 4, Color: "#000", Width: 2, Mode: domain.StrokeDraw}

	outs := c.RelayStroke("bob", stroke)
	relayed := findEvent(t, outs, core.EvtStroke)
	assert.Equal(t, core.AudienceExcept, relayed.Audience.Kind)
	assert.Equal(t, []domain.ConnID{"alice"}, relayed.Audience.Recipients)
	assert.Equal(t, stroke, relayed.Data.(core.StrokeData).Stroke)

	c.ToggleDrawing("alice", false)
	assert.Nil(t, c.RelayStroke("bob", stroke), "locked board drops student strokes")
	assert.NotNil(t, c.RelayStroke("alice", stroke), "admin draws through the lock")
	assert.Nil(t, c.RelayStroke("ghost", stroke))
}

func TestClearCanvasAdminOnly(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", secret)
	c.Join("bob", "Bob", "")

	assert.Nil(t, c.ClearCanvas("bob"))

	outs := c.ClearCanvas("alice")
	cleared := findEvent(t, outs, core.EvtCanvasCleared)
	assert.Equal(t, core.AudienceAll, cleared.Audience.Kind)
	assert.ElementsMatch(t, []domain.ConnID{"alice", "bob"}, cleared.Audience.Recipients)
}

func TestToggleDrawingAdminOnly(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", secret)
	c.Join("bob", "Bob", "")

	assert.Nil(t, c.ToggleDrawing("bob", false))
	assert.True(t, c.DrawingEnabled())

	outs := c.ToggleDrawing("alice", false)
	toggled := findEvent(t, outs, core.EvtDrawingToggled)
	assert.Equal(t, core.AudienceAll, toggled.Audience.Kind)
	assert.ElementsMatch(t, []domain.ConnID{"alice", "bob"}, toggled.Audience.Recipients)
	assert.False(t, toggled.Data.(core.DrawingToggledData).Enabled)
	assert.False(t, c.DrawingEnabled())
}

func TestStreamStatusBroadcast(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", "")

	outs := c.StreamStatus("alice", true)
	status := findEvent(t, outs, core.EvtStreamStatus)
	assert.Equal(t, core.AudienceExcept, status.Audience.Kind)
	assert.Empty(t, status.Audience.Recipients, "sole participant broadcasts to no one")
	assert.True(t, status.Data.(core.StreamStatusData).Active)

	// The flag shows up in the next joiner's snapshot.
	snap := findEvent(t, c.Join("bob", "Bob", ""), core.EvtJoinAccepted).Data.(core.SnapshotData)
	require.Len(t, snap.Roster, 2)
	for _, p := range snap.Roster {
		if p.ConnID == "alice" {
			assert.True(t, p.StreamActive)
		}
	}

	assert.Nil(t, c.StreamStatus("ghost", true))
}

func TestSignalRelayTargeted(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", "")
	c.Join("bob", "Bob", "")
	payload := json.RawMessage(`{"sdp":"opaque-blob"}`)

	outs := c.Signal("alice", "bob", app.SignalOffer, payload)
	require.Len(t, outs, 1)
	sig := findEvent(t, outs, core.EvtSignal)
	assert.Equal(t, core.ToConn("bob"), sig.Audience)
	data := sig.Data.(core.SignalData)
	assert.Equal(t, "alice", string(data.From))
	assert.Equal(t, app.SignalOffer, data.Kind)
	assert.Equal(t, payload, data.Payload, "payload passes through untouched")
}

func TestSignalRelayDrops(t *testing.T) {
	c := newSession()
	c.Join("alice", "Alice", "")
	payload := json.RawMessage(`{}`)

	assert.Nil(t, c.Signal("alice", "ghost", app.SignalAnswer, payload), "absent destination")
	assert.Nil(t, c.Signal("ghost", "alice", app.SignalOffer, payload), "unjoined sender")
	assert.Nil(t, c.Signal("alice", "alice", "bogus", payload), "unknown kind")
}
