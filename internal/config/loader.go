package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/OpenRA/OpenRA-sub026/internal/core"
)

// LoadRules loads the ruleset.
// Search order: customPath -> ~/.rts/configs/rules.yaml -> ./configs/rules.yaml -> embedded default
func LoadRules(customPath string) (Rules, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to read rules %s: %w", customPath, err)
		}
		rules, err := ParseRules(data)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to parse rules %s: %w", customPath, err)
		}
		return rules, nil
	}

	if userPath := userConfigPath("rules.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if rules, err := ParseRules(data); err == nil {
				return rules, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "rules.yaml")); err == nil {
		if rules, err := ParseRules(data); err == nil {
			return rules, nil
		}
	}

	rules, err := ParseRules(defaultRulesYAML)
	if err != nil {
		return DefaultRules(), nil // Fallback to hardcoded if embed fails
	}
	return rules, nil
}

// ParseRules decodes and validates a YAML ruleset.
func ParseRules(data []byte) (Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, err
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate checks the ruleset for internal consistency.
func (r Rules) Validate() error {
	if len(r.Terrain) == 0 {
		return errors.New("config: no terrain types")
	}
	names := make(map[string]bool, len(r.Terrain))
	symbols := make(map[string]string, len(r.Terrain))
	for _, t := range r.Terrain {
		if t.Name == "" {
			return errors.New("config: terrain type without name")
		}
		if names[t.Name] {
			return fmt.Errorf("config: duplicate terrain %q", t.Name)
		}
		names[t.Name] = true
		if utf8.RuneCountInString(t.Symbol) != 1 {
			return fmt.Errorf("config: terrain %q symbol must be one character", t.Name)
		}
		if other, ok := symbols[t.Symbol]; ok {
			return fmt.Errorf("config: terrain %q reuses symbol of %q", t.Name, other)
		}
		symbols[t.Symbol] = t.Name
		if t.Color != "" {
			if _, ok := core.ParseColor(t.Color); !ok {
				return fmt.Errorf("config: terrain %q has unknown color %q", t.Name, t.Color)
			}
		}
	}

	for _, name := range r.UnitTypes() {
		u := r.Units[name]
		if u.Speed <= 0 {
			return fmt.Errorf("config: unit %q needs a positive speed", name)
		}
		if u.Facings < 0 || u.Facings > 256 {
			return fmt.Errorf("config: unit %q facings must be in [0, 256]", name)
		}
		if u.ROT <= 0 {
			return fmt.Errorf("config: unit %q needs a positive rot", name)
		}
		if u.WaitAverage < 0 || u.WaitSpread < 0 {
			return fmt.Errorf("config: unit %q has negative wait", name)
		}
		if len(u.TerrainSpeeds) == 0 {
			return fmt.Errorf("config: unit %q can move on no terrain", name)
		}
		for terrain, ts := range u.TerrainSpeeds {
			if !names[terrain] {
				return fmt.Errorf("config: unit %q references unknown terrain %q", name, terrain)
			}
			if ts.Cost <= 0 || ts.Speed <= 0 {
				return fmt.Errorf("config: unit %q has invalid speed or cost on %q", name, terrain)
			}
		}
	}
	return nil
}

// UnitTypes returns the unit type names in sorted order.
func (r Rules) UnitTypes() []string {
	out := make([]string, 0, len(r.Units))
	for name := range r.Units {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Legend maps terrain symbols to terrain names.
func (r Rules) Legend() map[rune]string {
	legend := make(map[rune]string, len(r.Terrain))
	for _, t := range r.Terrain {
		sym, _ := utf8.DecodeRuneInString(t.Symbol)
		legend[sym] = t.Name
	}
	return legend
}

// TerrainType returns the terrain type with the given name.
func (r Rules) TerrainType(name string) (TerrainType, bool) {
	for _, t := range r.Terrain {
		if t.Name == name {
			return t, true
		}
	}
	return TerrainType{}, false
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rts", "configs", filename)
}
