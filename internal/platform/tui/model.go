package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/OpenRA/OpenRA-sub026/internal/core"
	"github.com/OpenRA/OpenRA-sub026/internal/registry"
	"github.com/OpenRA/OpenRA-sub026/internal/storage"
)

// Rows reserved for the status line and help bar.
const chromeRows = 3

// DefaultSampleEvery is how often the viewer records the sync hash.
const DefaultSampleEvery = 25

// ViewerModel is the Bubble Tea model for watching a scenario run.
type ViewerModel struct {
	sim        registry.Simulation
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       ViewerKeyMap
	help       help.Model
	units      table.Model
	state      core.SimState
	tickRate   int
	paused     bool
	showUnits  bool
	quitting   bool
	backToMenu bool
	quitOnBack bool
	recorded   bool
	samples    []storage.SyncSample
}

// sized is implemented by simulations that draw into a fixed region.
type sized interface {
	Size() (w, h int)
}

// seeded is implemented by simulations that choose their own seed when the
// runtime config leaves it at zero.
type seeded interface {
	Seed() int64
}

// NewViewerModel creates a viewer for sim and resets it.
func NewViewerModel(sim registry.Simulation, store *storage.Store, cfg core.RuntimeConfig) ViewerModel {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := ViewerModel{
		sim:      sim,
		screen:   core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-chromeRows, 1)),
		store:    store,
		config:   cfg,
		keys:     DefaultViewerKeyMap(),
		help:     help.New(),
		units:    newUnitTable(cfg.ScreenH - chromeRows - 2),
		tickRate: cfg.TickRate,
	}
	m.sim.Reset(m.config)
	m.state = m.sim.State()
	return m
}

func newUnitTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Unit", Width: 8},
		{Title: "Cell", Width: 8},
		{Title: "Face", Width: 4},
		{Title: "Activity", Width: 16},
		{Title: "Q", Width: 2},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(core.Max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(s)
	return t
}

// Init starts the tick loop.
func (m ViewerModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-chromeRows, 1))
		m.units.SetHeight(core.Max(msg.Height-chromeRows-2, 3))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

func (m ViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	case core.ActionPause:
		m.paused = !m.paused
	case core.ActionStep:
		if m.paused {
			m.step()
		}
	case core.ActionFaster:
		m.tickRate = core.Min(m.tickRate*2, maxTickRate)
	case core.ActionSlower:
		m.tickRate = core.Max(m.tickRate/2, minTickRate)
	case core.ActionRestart:
		m.restart()
	case core.ActionReseed:
		m.config.Seed = time.Now().UnixNano()
		m.restart()
	case core.ActionTable:
		m.showUnits = !m.showUnits
	}
	return m, nil
}

func (m *ViewerModel) restart() {
	m.sim.Reset(m.config)
	m.state = m.sim.State()
	m.samples = nil
	m.recorded = false
}

// step advances one tick, sampling the hash and recording the run once it
// finishes.
func (m *ViewerModel) step() {
	if m.state.Finished {
		return
	}
	m.state = m.sim.Step().State
	if m.state.Tick%DefaultSampleEvery == 0 {
		m.samples = append(m.samples, storage.SyncSample{Tick: m.state.Tick, Hash: m.state.SyncHash})
	}
	if m.state.Finished && !m.recorded {
		if m.store != nil {
			//nolint:errcheck // Best-effort save, viewer continues regardless
			m.store.SaveRun(storage.RunRecord{
				ScenarioID: m.sim.ID(),
				Seed:       m.seed(),
				Ticks:      m.state.Tick,
				FinalHash:  m.state.SyncHash,
				Samples:    m.samples,
			})
		}
		m.recorded = true
	}
}

// View renders the current state to a string for display.
func (m ViewerModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.sim.Render(m.screen)
	w, h := 0, 0
	if sz, ok := m.sim.(sized); ok {
		w, h = sz.Size()
	}
	board := panelStyle.Render(RenderScreen(m.screen, w, h))

	if inspector, ok := m.sim.(registry.Inspector); ok && m.showUnits {
		m.units.SetRows(unitRows(inspector.Actors()))
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, " ", panelStyle.Render(m.units.View()))
	}

	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(board)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ViewerModel) statusLine() string {
	status := statusStyle.Render(fmt.Sprintf("%s  tick %d  seed %d  sync %016x  %d tps",
		m.sim.Title(), m.state.Tick, m.seed(), m.state.SyncHash, m.tickRate))

	switch {
	case m.state.Finished:
		status += " " + pausedStyle.Render("DONE")
	case m.paused:
		status += " " + pausedStyle.Render("PAUSED")
	}
	return status + dimStyle.Render(fmt.Sprintf("  %d/%d idle", m.state.Idle, m.state.Actors))
}

func unitRows(actors []core.ActorStatus) []table.Row {
	rows := make([]table.Row, len(actors))
	for i, a := range actors {
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("#%d", a.ID)
		}
		activity := a.Activity
		if activity == "" {
			activity = "idle"
		}
		rows[i] = table.Row{
			name,
			a.Cell.String(),
			fmt.Sprintf("%d", a.Facing),
			activity,
			fmt.Sprintf("%d", a.Queued),
		}
	}
	return rows
}

func (m ViewerModel) seed() int64 {
	if s, ok := m.sim.(seeded); ok {
		return s.Seed()
	}
	return m.config.Seed
}

// State returns the last observed simulation state.
func (m ViewerModel) State() core.SimState { return m.state }

// Paused reports whether playback is paused.
func (m ViewerModel) Paused() bool { return m.paused }

// TickRate returns the playback rate in ticks per second.
func (m ViewerModel) TickRate() int { return m.tickRate }

// IsQuitting returns true if user requested to quit entirely.
func (m ViewerModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m ViewerModel) BackToMenu() bool { return m.backToMenu }

// Run starts the viewer for sim and blocks until it exits.
// Returns true if the user asked to go back to the menu.
func Run(sim registry.Simulation, store *storage.Store, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewViewerModel(sim, store, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if vm, ok := final.(ViewerModel); ok {
		return vm.BackToMenu(), nil
	}
	return false, nil
}
