package mobile

import (
	"testing"

	"github.com/OpenRA/OpenRA-sub026/internal/activity"
	"github.com/OpenRA/OpenRA-sub026/internal/core"
)

func TestTurnUsesRateOfTurn(t *testing.T) {
	w := newTestWorld(t, 1, "...")
	m := addUnit(t, w, "p1", core.C(1, 0), north, testInfo(6))
	m.Actor().QueueActivity(NewTurn(m, east))

	ticks := tickUntilIdle(t, w, m.Actor(), 100)
	if ticks != 8 {
		t.Errorf("turn took %d ticks, expected 8", ticks)
	}
	if m.Facing() != east {
		t.Errorf("Facing() = %d, expected %d", m.Facing(), east)
	}
}

func TestPerformMoveDelaysPathing(t *testing.T) {
	w := newTestWorld(t, 4, "......")
	info := testInfo(6)
	info.PathDelayAverage = 5
	info.PathDelaySpread = 5
	m := addUnit(t, w, "p1", core.C(0, 0), east, info)

	m.PerformMove(core.C(4, 0), false)
	delay := m.ticksBeforePathing
	if delay < 0 || delay >= 10 {
		t.Fatalf("delay = %d, expected in [0, 10)", delay)
	}
	if w.SharedRandom.TotalCount != 1 {
		t.Errorf("jitter drew %d values, expected 1", w.SharedRandom.TotalCount)
	}

	for i := 0; i < delay; i++ {
		w.Tick()
	}
	if m.PathHash() != 0 || m.CenterPosition() != core.CenterOfCell(core.C(0, 0)) {
		t.Fatal("unit pathed before its delay elapsed")
	}
	w.Tick()
	if m.PathHash() == 0 {
		t.Error("unit did not path after its delay")
	}
}

func TestPerformMoveReplacesOrQueues(t *testing.T) {
	w := newTestWorld(t, 1, "......")
	m := addUnit(t, w, "p1", core.C(0, 0), east, testInfo(6))
	m.Actor().QueueActivity(activity.NewWait(50), activity.NewWait(50))

	m.PerformMove(core.C(3, 0), true)
	if n := len(m.Actor().Activities()); n != 3 {
		t.Fatalf("queued order: %d activities, expected 3", n)
	}

	m.PerformMove(core.C(4, 0), false)
	names := m.Actor().Activities()
	if len(names) != 2 || names[1] != "Move(4,0)" {
		t.Errorf("activities = %v, expected [Wait Move(4,0)]", names)
	}
}

func TestNearestMoveableCell(t *testing.T) {
	w := newTestWorld(t, 1, "...#.", ".....")
	m := addUnit(t, w, "p1", core.C(0, 0), east, testInfo(6))

	if got := m.NearestMoveableCell(core.C(1, 1)); got != core.C(1, 1) {
		t.Errorf("free target moved to %v", got)
	}
	if got := m.NearestMoveableCell(core.C(3, 0)); got != core.C(2, 0) {
		t.Errorf("NearestMoveableCell(rock) = %v, expected (2,0)", got)
	}
}

func TestStopCancelsMove(t *testing.T) {
	w := newTestWorld(t, 1, "........")
	m := addUnit(t, w, "p1", core.C(0, 0), east, testInfo(6))
	m.PerformMove(core.C(7, 0), false)
	for i := 0; i < 3; i++ {
		w.Tick()
	}

	if !m.Stop() {
		t.Fatal("Stop() refused")
	}
	tickUntilIdle(t, w, m.Actor(), 100)
	if m.Location().X > 2 {
		t.Errorf("unit kept going after stop: %v", m.Location())
	}
}

type halfSpeed struct{}

func (halfSpeed) SpeedModifier() int { return 50 }

func TestMovementSpeedForCell(t *testing.T) {
	w := newTestWorld(t, 1, ".:#")
	info := testInfo(10)
	info.SpeedModifiers = []int{120}
	m := addUnit(t, w, "p1", core.C(0, 0), east, info)

	tests := []struct {
		cell     core.Cell
		expected int
	}{
		{core.C(0, 0), 12},
		{core.C(1, 0), 6},
		{core.C(2, 0), 0},
	}
	for _, tc := range tests {
		if got := m.MovementSpeedForCell(tc.cell); got != tc.expected {
			t.Errorf("MovementSpeedForCell(%v) = %d, expected %d", tc.cell, got, tc.expected)
		}
	}

	m.AddSpeedModifier(halfSpeed{})
	if got := m.MovementSpeedForCell(core.C(0, 0)); got != 6 {
		t.Errorf("with runtime modifier = %d, expected 6", got)
	}
	if got := m.MovementCostForCell(core.C(1, 0)); got != 200 {
		t.Errorf("MovementCostForCell(rough) = %d, expected 200", got)
	}
}

func TestEveryMoveJittersItsFirstPathRequest(t *testing.T) {
	const seed = 4
	tests := []struct {
		name  string
		start func(m, other *Mobile)
	}{
		{"MoveTo", func(m, _ *Mobile) { m.Actor().QueueActivity(m.MoveTo(core.C(4, 0), 0)) }},
		{"ScriptedMoveTo", func(m, _ *Mobile) { m.Actor().QueueActivity(m.ScriptedMoveTo(core.C(4, 0))) }},
		{"MoveWithinRange", func(m, other *Mobile) {
			m.Actor().QueueActivity(m.MoveWithinRange(other.Actor(), 1))
		}},
		{"PerformMove", func(m, _ *Mobile) { m.PerformMove(core.C(4, 0), false) }},
	}

	delay := 5 + core.NewSharedRandom(seed).NextRange(-5, 5)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, seed, "......", "......")
			info := testInfo(6)
			info.PathDelayAverage = 5
			info.PathDelaySpread = 5
			m := addUnit(t, w, "p1", core.C(0, 0), east, info)
			other := addUnit(t, w, "p2", core.C(5, 1), east, info)
			finder := &countingFinder{inner: w.PathFinder()}
			w.SetPathFinder(finder)

			tc.start(m, other)
			pathedAt := -1
			for i := 1; i <= 20; i++ {
				w.Tick()
				if finder.calls > 0 {
					pathedAt = i
					break
				}
			}
			if pathedAt != delay+1 {
				t.Errorf("first path request on tick %d, expected %d", pathedAt, delay+1)
			}
			if w.SharedRandom.TotalCount != 1 {
				t.Errorf("jitter drew %d values, expected 1", w.SharedRandom.TotalCount)
			}
		})
	}
}
