package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

func TestWhiteboardGateDefaultsEnabled(t *testing.T) {
	g := core.NewWhiteboardGate()
	assert.True(t, g.Enabled())
}

func TestWhiteboardGateAuthorize(t *testing.T) {
	g := core.NewWhiteboardGate()
	stu := student("c1", "Alice")
	admin := student("c2", "Teach")
	admin.Role = domain.RoleAdmin

	assert.True(t, g.Authorize(stu))
	assert.True(t, g.Authorize(admin))
	assert.False(t, g.Authorize(nil))

	g.SetEnabled(false)
	assert.False(t, g.Authorize(stu))
	assert.True(t, g.Authorize(admin), "admin draws even while the board is locked")
}
