package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultUnitInfo returns the movement parameters used for unset fields.
func DefaultUnitInfo() UnitInfo {
	return UnitInfo{
		Symbol:           "u",
		Speed:            1,
		ROT:              255,
		Facings:          32,
		InitialFacing:    128,
		WaitAverage:      5,
		WaitSpread:       2,
		PathDelayAverage: 5,
		PathDelaySpread:  5,
		TerrainSpeeds: map[string]TerrainSpeed{
			"clear": {Speed: 100, Cost: 100},
		},
	}
}

// DefaultRules returns the hardcoded ruleset used when no YAML is available.
func DefaultRules() Rules {
	tank := DefaultUnitInfo()
	tank.Symbol = "T"
	tank.Speed = 6
	tank.ROT = 8
	tank.TerrainSpeeds = map[string]TerrainSpeed{
		"clear": {Speed: 100, Cost: 100},
		"road":  {Speed: 120, Cost: 100},
		"rough": {Speed: 60, Cost: 170},
	}

	jeep := DefaultUnitInfo()
	jeep.Symbol = "J"
	jeep.Speed = 10
	jeep.ROT = 16
	jeep.TerrainSpeeds = map[string]TerrainSpeed{
		"clear": {Speed: 100, Cost: 100},
		"road":  {Speed: 150, Cost: 100},
		"rough": {Speed: 50, Cost: 200},
	}

	harvester := DefaultUnitInfo()
	harvester.Symbol = "H"
	harvester.Speed = 4
	harvester.ROT = 4
	harvester.WaitAverage = 8
	harvester.WaitSpread = 3
	harvester.TerrainSpeeds = map[string]TerrainSpeed{
		"clear": {Speed: 100, Cost: 100},
		"road":  {Speed: 110, Cost: 100},
		"rough": {Speed: 80, Cost: 130},
	}

	return Rules{
		Terrain: []TerrainType{
			{Name: "clear", Symbol: ".", Color: "gray"},
			{Name: "road", Symbol: "=", Color: "yellow"},
			{Name: "rough", Symbol: ":", Color: "orange"},
			{Name: "water", Symbol: "~", Color: "blue"},
			{Name: "rock", Symbol: "#", Color: "white"},
		},
		Units: map[string]UnitInfo{
			"tank":      tank,
			"jeep":      jeep,
			"harvester": harvester,
		},
	}
}
