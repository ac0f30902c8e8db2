package mobile

import (
	"fmt"

	"github.com/OpenRA/OpenRA-sub026/internal/activity"
	"github.com/OpenRA/OpenRA-sub026/internal/core"
)

// Turn rotates a unit towards a facing at its rate of turn.
type Turn struct {
	activity.Base
	mobile  *Mobile
	desired int
}

func NewTurn(m *Mobile, desired int) *Turn {
	return &Turn{mobile: m, desired: core.NormalizeFacing(desired)}
}

func (t *Turn) Tick(self activity.Actor) activity.Result {
	if t.IsCanceled() || t.mobile.facing == t.desired {
		return activity.Done()
	}
	t.mobile.facing = core.TickFacing(t.mobile.facing, t.desired, t.mobile.info.ROT)
	if t.mobile.facing == t.desired {
		return activity.Done()
	}
	return activity.Continue()
}

func (t *Turn) String() string { return fmt.Sprintf("Turn(%d)", t.desired) }
