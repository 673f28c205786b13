// Package config provides YAML-based configuration for gotris: playfield
// geometry, rule choices and key bindings.
package config

import (
	"errors"
	"fmt"

	"github.com/hersh/gotris/internal/game"
)

// Config is the full game configuration.
type Config struct {
	Matrix MatrixConfig `yaml:"matrix"`
	Rules  RulesConfig  `yaml:"rules"`
	Keys   KeysConfig   `yaml:"keys"`
}

// MatrixConfig defines the playfield.
type MatrixConfig struct {
	Width       int `yaml:"width"`
	VisibleRows int `yaml:"visible_rows"`
	SpawnRow    int `yaml:"spawn_row"`
	SpawnCol    int `yaml:"spawn_col"` // -1 centres the spawn box
}

// RulesConfig selects rule variants.
type RulesConfig struct {
	Rotation         string `yaml:"rotation"`
	Randomizer       string `yaml:"randomizer"`
	StartLevel       int    `yaml:"start_level"`
	Preview          int    `yaml:"preview"`
	Ghost            bool   `yaml:"ghost"`
	HoldOncePerPiece bool   `yaml:"hold_once_per_piece"`
}

// KeysConfig lists the keys bound to each action, in bubbletea key names.
type KeysConfig struct {
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	SoftDrop  []string `yaml:"soft_drop"`
	HardDrop  []string `yaml:"hard_drop"`
	RotateCW  []string `yaml:"rotate_cw"`
	RotateCCW []string `yaml:"rotate_ccw"`
	Hold      []string `yaml:"hold"`
	Pause     []string `yaml:"pause"`
	Quit      []string `yaml:"quit"`
	Start     []string `yaml:"start"`
}

const maxPreview = 6

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if c.Matrix.Width < 4 {
		errs = append(errs, fmt.Errorf("matrix.width must be at least 4, got %d", c.Matrix.Width))
	}
	if c.Matrix.VisibleRows < 4 {
		errs = append(errs, fmt.Errorf("matrix.visible_rows must be at least 4, got %d", c.Matrix.VisibleRows))
	}
	if c.Matrix.SpawnRow < 0 {
		errs = append(errs, fmt.Errorf("matrix.spawn_row must not be negative, got %d", c.Matrix.SpawnRow))
	}
	if c.Matrix.SpawnCol < -1 || (c.Matrix.Width >= 4 && c.Matrix.SpawnCol > c.Matrix.Width-4) {
		errs = append(errs, fmt.Errorf("matrix.spawn_col %d leaves no room for a piece", c.Matrix.SpawnCol))
	}
	if _, err := game.LookupRotationSystem(c.Rules.Rotation); err != nil {
		errs = append(errs, fmt.Errorf("rules.rotation: %w", err))
	}
	if _, err := game.LookupRandomizer(c.Rules.Randomizer); err != nil {
		errs = append(errs, fmt.Errorf("rules.randomizer: %w", err))
	}
	if c.Rules.Preview < 0 || c.Rules.Preview > maxPreview {
		errs = append(errs, fmt.Errorf("rules.preview must be within 0..%d, got %d", maxPreview, c.Rules.Preview))
	}

	bindings := map[string][]string{
		"left":       c.Keys.Left,
		"right":      c.Keys.Right,
		"soft_drop":  c.Keys.SoftDrop,
		"hard_drop":  c.Keys.HardDrop,
		"rotate_cw":  c.Keys.RotateCW,
		"rotate_ccw": c.Keys.RotateCCW,
		"hold":       c.Keys.Hold,
		"pause":      c.Keys.Pause,
		"quit":       c.Keys.Quit,
		"start":      c.Keys.Start,
	}
	for _, action := range []string{"left", "right", "soft_drop", "hard_drop", "rotate_cw", "rotate_ccw", "hold", "pause", "quit", "start"} {
		if len(bindings[action]) == 0 {
			errs = append(errs, fmt.Errorf("keys.%s has no keys", action))
		}
	}

	return errors.Join(errs...)
}

// SpawnPos resolves the configured spawn position.
func (c Config) SpawnPos() game.Position {
	col := c.Matrix.SpawnCol
	if col < 0 {
		col = (c.Matrix.Width - 3) / 2
	}
	return game.Position{Row: c.Matrix.SpawnRow, Col: col}
}

// NewSim builds the opening snapshot for a game with the given seed.
func (c Config) NewSim(seed uint64) (*game.TetrisSim, error) {
	rs, err := game.LookupRotationSystem(c.Rules.Rotation)
	if err != nil {
		return nil, err
	}
	randomizer, err := game.LookupRandomizer(c.Rules.Randomizer)
	if err != nil {
		return nil, err
	}
	matrix := game.NewMatrix(c.Matrix.Width, c.SpawnPos())
	return game.NewTetrisSim(matrix, randomizer(rs.Prototypes(), seed)), nil
}
