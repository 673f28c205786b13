package config

import (
	_ "embed"
)

//go:embed defaults/gotris.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Matrix: MatrixConfig{
			Width:       10,
			VisibleRows: 20,
			SpawnRow:    18,
			SpawnCol:    -1,
		},
		Rules: RulesConfig{
			Rotation:         "srs",
			Randomizer:       "bag",
			StartLevel:       1,
			Preview:          5,
			Ghost:            true,
			HoldOncePerPiece: true,
		},
		Keys: KeysConfig{
			Left:      []string{"left", "h"},
			Right:     []string{"right", "l"},
			SoftDrop:  []string{"down", "j"},
			HardDrop:  []string{" ", "c"},
			RotateCW:  []string{"up", "x"},
			RotateCCW: []string{"z", "ctrl+z"},
			Hold:      []string{"C", "v"},
			Pause:     []string{"p", "esc"},
			Quit:      []string{"q", "ctrl+c"},
			Start:     []string{"enter", "s"},
		},
	}
}
