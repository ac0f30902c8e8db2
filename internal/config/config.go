// Package config provides YAML-based rules loading for the simulation:
// terrain types and per-unit movement parameters.
package config

import (
	"gopkg.in/yaml.v3"
)

// Rules is the complete ruleset a world is built from.
type Rules struct {
	Terrain []TerrainType       `yaml:"terrain"`
	Units   map[string]UnitInfo `yaml:"units"`
}

// TerrainType describes one kind of map cell.
type TerrainType struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Color  string `yaml:"color"`
}

// UnitInfo holds the movement parameters of a unit type.
type UnitInfo struct {
	Symbol        string `yaml:"symbol"`
	Speed         int    `yaml:"speed"`
	ROT           int    `yaml:"rot"`
	Facings       int    `yaml:"facings"`
	InitialFacing int    `yaml:"initial_facing"`

	// Blocked-path policy: ticks to wait before re-routing.
	WaitAverage int `yaml:"wait_average"`
	WaitSpread  int `yaml:"wait_spread"`

	// Jitter before the first path request of a move order.
	PathDelayAverage int `yaml:"path_delay_average"`
	PathDelaySpread  int `yaml:"path_delay_spread"`

	// Percentages applied to speed, in order.
	SpeedModifiers []int `yaml:"speed_modifiers"`

	// Terrains missing here are impassable.
	TerrainSpeeds map[string]TerrainSpeed `yaml:"terrain_speeds"`
}

// TerrainSpeed is a unit's speed percentage and path cost on a terrain.
type TerrainSpeed struct {
	Speed int `yaml:"speed"`
	Cost  int `yaml:"cost"`
}

// UnmarshalYAML fills unset fields with DefaultUnitInfo values.
func (u *UnitInfo) UnmarshalYAML(node *yaml.Node) error {
	type plain UnitInfo
	p := plain(DefaultUnitInfo())
	p.TerrainSpeeds = nil
	if err := node.Decode(&p); err != nil {
		return err
	}
	*u = UnitInfo(p)
	return nil
}

// UnmarshalYAML defaults the cost of a terrain entry to 100.
func (t *TerrainSpeed) UnmarshalYAML(node *yaml.Node) error {
	type plain TerrainSpeed
	p := plain{Speed: 100, Cost: 100}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = TerrainSpeed(p)
	return nil
}
