package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/OpenRA/OpenRA-sub026/internal/config"
	"github.com/OpenRA/OpenRA-sub026/internal/registry"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

var (
	rulesMu     sync.RWMutex
	activeRules *config.Rules
	activeLog   *log.Logger
)

// UseLogger routes the logging of registered scenarios to l.
func UseLogger(l *log.Logger) {
	rulesMu.Lock()
	defer rulesMu.Unlock()
	activeLog = l
}

// UseRules sets the ruleset used by registered scenarios created after the
// call. By default the rules are loaded with config.LoadRules("").
func UseRules(r config.Rules) {
	rulesMu.Lock()
	defer rulesMu.Unlock()
	activeRules = &r
}

func currentRules() config.Rules {
	rulesMu.RLock()
	r := activeRules
	rulesMu.RUnlock()
	if r != nil {
		return *r
	}

	rules, err := config.LoadRules("")
	if err != nil {
		rules = config.DefaultRules()
	}
	UseRules(rules)
	return rules
}

// Builtin returns the embedded scenarios sorted by ID.
func Builtin() ([]Definition, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("reading builtin scenarios: %w", err)
	}

	defs := make([]Definition, 0, len(entries))
	for _, e := range entries {
		name := path.Join("builtin", e.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		def, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		def.FilePath = name
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs, nil
}

// Register adds def to the simulation registry.
func Register(def Definition) {
	registry.Register(def.ID, func() registry.Simulation {
		rules := currentRules()
		rulesMu.RLock()
		l := activeLog
		rulesMu.RUnlock()
		return NewRunner(def, rules, WithLogger(l))
	})
}

func init() {
	defs, err := Builtin()
	if err != nil {
		panic(err)
	}
	for _, def := range defs {
		Register(def)
	}
}
