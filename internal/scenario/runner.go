package scenario

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/OpenRA/OpenRA-sub026/internal/activity"
	"github.com/OpenRA/OpenRA-sub026/internal/config"
	"github.com/OpenRA/OpenRA-sub026/internal/core"
	"github.com/OpenRA/OpenRA-sub026/internal/mobile"
	"github.com/OpenRA/OpenRA-sub026/internal/pathfind"
	"github.com/OpenRA/OpenRA-sub026/internal/world"
)

// DefaultTickLimit caps scenarios that do not set their own tick count.
const DefaultTickLimit = 5000

var ownerColors = []core.Color{
	core.ColorBrightCyan,
	core.ColorBrightRed,
	core.ColorBrightGreen,
	core.ColorBrightYellow,
	core.ColorBrightMagenta,
}

// Runner drives one scenario on a fresh world.
type Runner struct {
	def    Definition
	rules  config.Rules
	logger *log.Logger

	world     *world.World
	units     map[string]*mobile.Mobile
	names     map[uint32]string
	owners    map[string]core.Color
	orders    []OrderDef
	nextOrder int
	seed      int64
	finished  bool
	err       error
}

// RunnerOption customises a Runner.
type RunnerOption func(*Runner)

// WithLogger routes world logging to l.
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner for def. Call Reset before stepping.
func NewRunner(def Definition, rules config.Rules, opts ...RunnerOption) *Runner {
	r := &Runner{def: def, rules: rules}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = world.DiscardLogger()
	}
	return r
}

func (r *Runner) ID() string          { return r.def.ID }
func (r *Runner) Title() string       { return r.def.Name }
func (r *Runner) Description() string { return r.def.Description }

// Definition returns the scenario being run.
func (r *Runner) Definition() Definition { return r.def }

// World returns the current world, or nil before Reset.
func (r *Runner) World() *world.World { return r.world }

// Seed returns the seed of the current run.
func (r *Runner) Seed() int64 { return r.seed }

// Err returns the error from the last Reset, if building failed.
func (r *Runner) Err() error { return r.err }

// Unit returns the mobile of the named unit.
func (r *Runner) Unit(name string) (*mobile.Mobile, bool) {
	m, ok := r.units[name]
	return m, ok
}

// Reset rebuilds the world. A zero seed falls back to the scenario's seed.
func (r *Runner) Reset(cfg core.RuntimeConfig) {
	r.seed = cfg.Seed
	if r.seed == 0 {
		r.seed = r.def.Seed
	}
	r.err = r.build()
	if r.err != nil {
		r.logger.Error("scenario build failed", "scenario", r.def.ID, "err", r.err)
		r.finished = true
	}
}

func (r *Runner) build() error {
	m, err := world.ParseLayout(r.def.Layout, r.rules.Legend(), firstRune(r.def.Pad))
	if err != nil {
		return fmt.Errorf("scenario %s: %w", r.def.ID, err)
	}
	m.Title = r.def.Name

	w := world.New(m, world.Options{Seed: r.seed, Logger: r.logger})
	w.SetPathFinder(pathfind.New(w))

	r.world = w
	r.units = make(map[string]*mobile.Mobile, len(r.def.Units))
	r.names = make(map[uint32]string, len(r.def.Units))
	r.owners = make(map[string]core.Color)
	r.finished = false
	r.nextOrder = 0

	for _, u := range r.def.Units {
		info, ok := r.rules.Units[u.Type]
		if !ok {
			return fmt.Errorf("scenario %s: unit %q has unknown type %q", r.def.ID, u.Name, u.Type)
		}
		facing := info.InitialFacing
		if u.Facing != nil {
			facing = *u.Facing
		}
		a := w.CreateActor(u.Type, u.Owner)
		mob, err := mobile.New(a, info, u.At.Cell(), facing)
		if err != nil {
			return fmt.Errorf("scenario %s: unit %q: %w", r.def.ID, u.Name, err)
		}
		r.units[u.Name] = mob
		r.names[a.ID()] = u.Name
		if _, ok := r.owners[u.Owner]; !ok {
			r.owners[u.Owner] = ownerColors[len(r.owners)%len(ownerColors)]
		}
	}

	r.orders = append([]OrderDef(nil), r.def.Orders...)
	sort.SliceStable(r.orders, func(i, j int) bool {
		return r.orders[i].Tick < r.orders[j].Tick
	})
	return nil
}

// Step issues the orders due this tick and advances the world.
func (r *Runner) Step() core.StepResult {
	if r.world == nil || r.finished {
		return core.StepResult{State: r.State()}
	}

	now := r.world.WorldTick()
	for r.nextOrder < len(r.orders) && r.orders[r.nextOrder].Tick <= now {
		r.issue(r.orders[r.nextOrder])
		r.nextOrder++
	}

	r.world.Tick()

	limit := r.def.Ticks
	if limit <= 0 {
		limit = DefaultTickLimit
	}
	if r.world.WorldTick() >= limit {
		r.finished = true
	} else if r.nextOrder == len(r.orders) && r.allIdle() {
		r.finished = true
	}
	return core.StepResult{State: r.State()}
}

func (r *Runner) issue(o OrderDef) {
	mob := r.units[o.Unit]
	self := mob.Actor()
	r.logger.Debug("order", "tick", r.world.WorldTick(), "unit", o.Unit, "kind", o.Kind)

	queue := func(a activity.Activity) {
		if !o.Queued {
			self.CancelActivity()
		}
		self.QueueActivity(a)
	}

	switch o.Kind {
	case OrderMove:
		mob.PerformMove(o.Target.Cell(), o.Queued)
	case OrderMoveNear:
		queue(mob.MoveTo(o.Target.Cell(), o.Near))
	case OrderMoveWithin:
		queue(mob.MoveWithinRange(r.units[o.Of].Actor(), o.Range))
	case OrderScriptedMove:
		queue(mob.ScriptedMoveTo(o.Target.Cell()))
	case OrderWait:
		queue(activity.NewWait(o.Ticks))
	case OrderWaitIdle:
		other := r.units[o.Of].Actor()
		queue(activity.NewWaitFor(other.IsIdle))
	case OrderStop:
		mob.Stop()
	case OrderScatter:
		mob.Scatter()
	}
}

func (r *Runner) allIdle() bool {
	for _, a := range r.world.Actors() {
		if !a.IsIdle() {
			return false
		}
	}
	return true
}

// State returns the current status.
func (r *Runner) State() core.SimState {
	if r.world == nil {
		return core.SimState{Finished: r.finished}
	}
	idle := 0
	actors := r.world.Actors()
	for _, a := range actors {
		if a.IsIdle() {
			idle++
		}
	}
	return core.SimState{
		Tick:     r.world.WorldTick(),
		Actors:   len(actors),
		Idle:     idle,
		SyncHash: r.world.SyncHash(),
		Finished: r.finished,
	}
}

// Actors summarises every unit in ID order.
func (r *Runner) Actors() []core.ActorStatus {
	if r.world == nil {
		return nil
	}
	var out []core.ActorStatus
	for _, a := range r.world.Actors() {
		mv := a.Mover()
		if mv == nil {
			continue
		}
		status := core.ActorStatus{
			ID:     a.ID(),
			Name:   r.names[a.ID()],
			Type:   a.Type,
			Owner:  a.Owner,
			Cell:   mv.Location(),
			Facing: mv.Facing(),
			Moving: mv.IsMoving(),
		}
		if names := a.Activities(); len(names) > 0 {
			status.Activity = names[0]
			status.Queued = len(names) - 1
		}
		out = append(out, status)
	}
	return out
}

// Render draws the terrain and units into dst, one character per cell.
func (r *Runner) Render(dst *core.Screen) {
	if r.err != nil {
		dst.DrawTextColored(0, 0, r.err.Error(), core.ColorRed)
		return
	}
	if r.world == nil {
		return
	}

	m := r.world.Map
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			name := m.TerrainAt(core.C(x, y))
			t, _ := r.rules.TerrainType(name)
			color, _ := core.ParseColor(t.Color)
			dst.SetColored(x, y, firstRune(t.Symbol), color)
		}
	}

	for _, a := range r.world.Actors() {
		mv := a.Mover()
		if mv == nil {
			continue
		}
		c := mv.CenterPosition().ToCell()
		sym := firstRune(r.rules.Units[a.Type].Symbol)
		dst.SetColored(c.X, c.Y, sym, r.owners[a.Owner])
	}
}

// Size returns the map size in cells, or zero before Reset.
func (r *Runner) Size() (w, h int) {
	if r.world == nil {
		return 0, 0
	}
	return r.world.Map.Width(), r.world.Map.Height()
}

// RunResult summarises a completed run.
type RunResult struct {
	Ticks     int
	FinalHash uint64
	Samples   []Sample
}

// Sample is the world hash at a tick.
type Sample struct {
	Tick int
	Hash uint64
}

// Run resets the runner with seed and steps it until it finishes,
// recording the world hash every sampleEvery ticks.
func (r *Runner) Run(seed int64, sampleEvery int) (RunResult, error) {
	r.Reset(core.RuntimeConfig{Seed: seed})
	if r.err != nil {
		return RunResult{}, r.err
	}

	var res RunResult
	for !r.finished {
		st := r.Step().State
		if sampleEvery > 0 && st.Tick%sampleEvery == 0 {
			res.Samples = append(res.Samples, Sample{Tick: st.Tick, Hash: st.SyncHash})
		}
	}
	st := r.State()
	res.Ticks = st.Tick
	res.FinalHash = st.SyncHash
	return res, nil
}

func firstRune(s string) rune {
	if s == "" {
		return '?'
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
