// Package terrain provides the height oracles the locomotion core samples.
//
// The core only depends on the Oracle interface. Procedural biomes and the
// sampled Heightmap live here so the viewer and headless runner have real
// ground to walk on.
package terrain

import (
	"fmt"
	"strings"
)

// Kind selects a terrain height function.
type Kind uint8

const (
	KindDunes Kind = iota
	KindIce
	KindCanyon
	KindCrystal
	KindTech
	KindMoon
	KindMars
	KindObsidian
	KindVolcano
	KindOasis
	KindRain
	KindWaterPlanet
	KindGrass
	KindFlatDesert
	KindAntarctica
	KindFlat
)

var kindNames = [...]string{
	KindDunes:       "dunes",
	KindIce:         "ice",
	KindCanyon:      "canyon",
	KindCrystal:     "crystal",
	KindTech:        "tech",
	KindMoon:        "moon",
	KindMars:        "mars",
	KindObsidian:    "obsidian",
	KindVolcano:     "volcano",
	KindOasis:       "oasis",
	KindRain:        "rain",
	KindWaterPlanet: "water_planet",
	KindGrass:       "grass",
	KindFlatDesert:  "flat_desert",
	KindAntarctica:  "antarctica",
	KindFlat:        "flat",
}

// String returns the config name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind converts a config name to a Kind. "sand" is accepted as an alias
// for dunes.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "sand" || name == "" {
		return KindDunes, nil
	}
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return KindDunes, fmt.Errorf("unknown terrain kind %q", name)
}

// MarshalText implements encoding.TextMarshaler (used by yaml.v3).
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler (used by yaml.v3).
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Oracle answers ground height queries. Implementations must be total over
// all finite (x, z), deterministic and free of side effects.
type Oracle interface {
	Height(x, z float32, kind Kind) float32
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(x, z float32, kind Kind) float32

// Height implements Oracle.
func (f OracleFunc) Height(x, z float32, kind Kind) float32 {
	return f(x, z, kind)
}

// Heightmap is a regular grid of pre-sampled heights covering a bounded area.
type Heightmap struct {
	Altitudes [][]float32 // 2D array [x][z] of heights
	CellsX    int         // Number of samples in X direction
	CellsZ    int         // Number of samples in Z direction
	CellSize  float32     // Distance between samples in world units
	OriginX   float32     // World X of sample [0][0]
	OriginZ   float32     // World Z of sample [0][0]
	Kind      Kind        // Kind the grid was sampled for

	fallback Oracle
}

// LineVertex is a position + color vertex for line rendering.
type LineVertex struct {
	Position [3]float32
	Color    [3]float32
}
