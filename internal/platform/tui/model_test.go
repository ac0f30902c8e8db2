package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/OpenRA/OpenRA-sub026/internal/core"
	"github.com/OpenRA/OpenRA-sub026/internal/registry"
)

// countingSim finishes after a fixed number of steps.
type countingSim struct {
	limit  int
	tick   int
	resets int
	seed   int64
}

var _ registry.Simulation = (*countingSim)(nil)

func (s *countingSim) ID() string          { return "counting" }
func (s *countingSim) Title() string       { return "Counting" }
func (s *countingSim) Description() string { return "steps to a limit" }

func (s *countingSim) Reset(cfg core.RuntimeConfig) {
	s.tick = 0
	s.resets++
	s.seed = cfg.Seed
}

func (s *countingSim) Step() core.StepResult {
	if s.tick < s.limit {
		s.tick++
	}
	return core.StepResult{State: s.State()}
}

func (s *countingSim) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "@")
}

func (s *countingSim) State() core.SimState {
	return core.SimState{Tick: s.tick, SyncHash: uint64(s.tick) * 7, Finished: s.tick >= s.limit}
}

func newTestViewer(limit int) (ViewerModel, *countingSim) {
	sim := &countingSim{limit: limit}
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 10, Seed: 5}
	return NewViewerModel(sim, nil, cfg), sim
}

func update(t *testing.T, m ViewerModel, msg tea.Msg) (ViewerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	vm, ok := next.(ViewerModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return vm, cmd
}

func TestViewerTicksUntilFinished(t *testing.T) {
	m, _ := newTestViewer(3)

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	if st := m.State(); st.Tick != 3 || !st.Finished {
		t.Errorf("State() = %+v, expected finished at tick 3", st)
	}
}

func TestViewerPauseAndStep(t *testing.T) {
	m, _ := newTestViewer(10)

	m, _ = update(t, m, runeKey("p"))
	if !m.Paused() {
		t.Fatal("expected paused")
	}
	m, _ = update(t, m, TickMsg{})
	if m.State().Tick != 0 {
		t.Errorf("paused viewer advanced to tick %d", m.State().Tick)
	}

	m, _ = update(t, m, runeKey("n"))
	m, _ = update(t, m, runeKey("n"))
	if m.State().Tick != 2 {
		t.Errorf("Tick after two steps = %d, expected 2", m.State().Tick)
	}

	m, _ = update(t, m, runeKey("p"))
	m, _ = update(t, m, runeKey("n"))
	if m.State().Tick != 2 {
		t.Error("step should only apply while paused")
	}
}

func TestViewerSpeedBounds(t *testing.T) {
	m, _ := newTestViewer(10)

	for i := 0; i < 10; i++ {
		m, _ = update(t, m, runeKey("+"))
	}
	if m.TickRate() != maxTickRate {
		t.Errorf("TickRate() = %d, expected cap %d", m.TickRate(), maxTickRate)
	}
	for i := 0; i < 20; i++ {
		m, _ = update(t, m, runeKey("-"))
	}
	if m.TickRate() != minTickRate {
		t.Errorf("TickRate() = %d, expected floor %d", m.TickRate(), minTickRate)
	}
}

func TestViewerRestartKeepsSeed(t *testing.T) {
	m, sim := newTestViewer(10)
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey("r"))

	if m.State().Tick != 0 {
		t.Errorf("Tick after restart = %d, expected 0", m.State().Tick)
	}
	if sim.resets != 2 || sim.seed != 5 {
		t.Errorf("resets = %d seed = %d, expected 2 and 5", sim.resets, sim.seed)
	}

	m, _ = update(t, m, runeKey("s"))
	if sim.seed == 5 {
		t.Error("reseed kept the old seed")
	}
}

func TestViewerBackAndQuit(t *testing.T) {
	m, _ := newTestViewer(10)

	back, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() {
		t.Error("esc should request the menu")
	}
	if cmd != nil {
		t.Error("back inside a session must not quit the program")
	}

	quit, cmd := update(t, m, runeKey("q"))
	if !quit.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if quit.View() != "" {
		t.Error("quitting viewer should render nothing")
	}
}

func TestViewerView(t *testing.T) {
	m, _ := newTestViewer(10)
	view := m.View()

	for _, want := range []string{"Counting", "tick 0", "seed 5", "@"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestRenderScreenRegion(t *testing.T) {
	s := core.NewScreen(4, 3)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	got := RenderScreen(s, 2, 2)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen returned %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || strings.Contains(lines[0], "c") {
		t.Errorf("line 0 = %q, expected the first two cells", lines[0])
	}
}

func TestSessionNavigation(t *testing.T) {
	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10})

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.screen != screenHistory {
		t.Fatalf("screen = %v, expected history", s.screen)
	}
	if !strings.Contains(s.View(), "No run database open") {
		t.Error("history without a store should say so")
	}

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Errorf("screen = %v, expected menu after back", s.screen)
	}
	if s.quitting || cmd != nil {
		t.Error("going back must not end the session")
	}
}
