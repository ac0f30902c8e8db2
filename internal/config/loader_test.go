package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedRulesParse(t *testing.T) {
	rules, err := ParseRules(defaultRulesYAML)
	if err != nil {
		t.Fatalf("embedded rules invalid: %v", err)
	}
	if _, ok := rules.Units["tank"]; !ok {
		t.Error("embedded rules missing tank")
	}
	if len(rules.Legend()) != len(rules.Terrain) {
		t.Error("legend size does not match terrain count")
	}
}

func TestDefaultRulesValid(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Errorf("DefaultRules() invalid: %v", err)
	}
}

func TestUnitDefaultsFillUnsetFields(t *testing.T) {
	rules, err := ParseRules([]byte(`
terrain:
  - { name: clear, symbol: "." }
units:
  scout:
    speed: 9
    terrain_speeds:
      clear: { speed: 100 }
`))
	if err != nil {
		t.Fatalf("ParseRules() error = %v", err)
	}
	u := rules.Units["scout"]
	if u.Speed != 9 {
		t.Errorf("Speed = %d, expected 9", u.Speed)
	}
	if u.WaitAverage != 5 || u.WaitSpread != 2 {
		t.Errorf("wait = %d±%d, expected 5±2", u.WaitAverage, u.WaitSpread)
	}
	if u.InitialFacing != 128 || u.ROT != 255 {
		t.Errorf("facing defaults wrong: initial=%d rot=%d", u.InitialFacing, u.ROT)
	}
	if u.TerrainSpeeds["clear"].Cost != 100 {
		t.Errorf("terrain cost = %d, expected default 100", u.TerrainSpeeds["clear"].Cost)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no terrain", `units: {}`, "no terrain"},
		{"duplicate symbol", `
terrain:
  - { name: a, symbol: "." }
  - { name: b, symbol: "." }
`, "reuses symbol"},
		{"unknown terrain", `
terrain:
  - { name: clear, symbol: "." }
units:
  x:
    terrain_speeds:
      lava: { speed: 100 }
`, "unknown terrain"},
		{"bad color", `
terrain:
  - { name: clear, symbol: ".", color: plaid }
`, "unknown color"},
		{"too many facings", `
terrain:
  - { name: clear, symbol: "." }
units:
  x:
    facings: 512
    terrain_speeds:
      clear: { speed: 100 }
`, "facings must be"},
		{"negative facings", `
terrain:
  - { name: clear, symbol: "." }
units:
  x:
    facings: -8
    terrain_speeds:
      clear: { speed: 100 }
`, "facings must be"},
		{"zero speed", `
terrain:
  - { name: clear, symbol: "." }
units:
  x:
    speed: 0
    terrain_speeds:
      clear: { speed: 100 }
`, "positive speed"},
		{"zero terrain speed", `
terrain:
  - { name: clear, symbol: "." }
units:
  x:
    terrain_speeds:
      clear: { speed: 0 }
`, "invalid speed or cost"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("ParseRules() error = %v, expected to contain %q", err, tc.want)
			}
		})
	}
}

func TestLoadRulesCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `
terrain:
  - { name: sand, symbol: "s", color: yellow }
units:
  buggy:
    speed: 12
    terrain_speeds:
      sand: { speed: 90, cost: 110 }
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if rules.Units["buggy"].TerrainSpeeds["sand"].Cost != 110 {
		t.Errorf("custom rules not loaded: %+v", rules.Units["buggy"])
	}
}

func TestLoadRulesMissingCustomPath(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}
}
