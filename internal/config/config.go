// Package config provides YAML-based game configuration loading and
// difficulty presets for the stacking game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// StackConfig contains all configuration for the stacking game.
type StackConfig struct {
	World         WorldConfig        `yaml:"world"`
	Physics       PhysicsConfig      `yaml:"physics"`
	Camera        CameraConfig       `yaml:"camera"`
	Leaderboard   LeaderboardConfig  `yaml:"leaderboard"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// WorldConfig defines the fixed logical playfield.
// World units are independent of the terminal size.
type WorldConfig struct {
	Width             float64 `yaml:"width"`               // Logical game width, bounce boundaries at 0 and Width
	BlockHeight       float64 `yaml:"block_height"`        // Vertical distance between stacked blocks
	InitialBlockWidth float64 `yaml:"initial_block_width"` // Width of the base block
	BaseOffset        float64 `yaml:"base_offset"`         // Distance from the view bottom to the base block
}

// PhysicsConfig defines the speed range a new block's speed is drawn from.
type PhysicsConfig struct {
	MinSpeed float64 `yaml:"min_speed"` // Units per second, inclusive
	MaxSpeed float64 `yaml:"max_speed"` // Units per second, exclusive
}

// CameraConfig defines camera smoothing and off-screen pruning.
type CameraConfig struct {
	DecayBase   float64 `yaml:"decay_base"`   // Remaining distance fraction after one second, in (0, 1)
	PruneMargin float64 `yaml:"prune_margin"` // How far below the view a block may scroll before eviction
}

// LeaderboardConfig defines the remote score store the game reports to.
type LeaderboardConfig struct {
	BaseURL string        `yaml:"base_url"`
	GameID  string        `yaml:"game_id"`
	Timeout time.Duration `yaml:"timeout"`
}

// NotificationConfig defines toast defaults.
type NotificationConfig struct {
	DurationMS int `yaml:"duration_ms"`
}

// Duration returns the toast duration as a time.Duration.
func (n NotificationConfig) Duration() time.Duration {
	return time.Duration(n.DurationMS) * time.Millisecond
}

// ErrInvalidConfig is returned by Validate for unusable configuration values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks that the configuration can drive the simulation.
func (c StackConfig) Validate() error {
	switch {
	case c.World.Width <= 0:
		return fmt.Errorf("%w: world.width must be positive", ErrInvalidConfig)
	case c.World.BlockHeight <= 0:
		return fmt.Errorf("%w: world.block_height must be positive", ErrInvalidConfig)
	case c.World.InitialBlockWidth <= 0 || c.World.InitialBlockWidth > c.World.Width:
		return fmt.Errorf("%w: world.initial_block_width must be in (0, width]", ErrInvalidConfig)
	case c.Physics.MinSpeed <= 0:
		return fmt.Errorf("%w: physics.min_speed must be positive", ErrInvalidConfig)
	case c.Physics.MinSpeed >= c.Physics.MaxSpeed:
		return fmt.Errorf("%w: physics.min_speed must be below max_speed", ErrInvalidConfig)
	case c.Camera.DecayBase <= 0 || c.Camera.DecayBase >= 1:
		return fmt.Errorf("%w: camera.decay_base must be in (0, 1)", ErrInvalidConfig)
	case c.Camera.PruneMargin < 0:
		return fmt.Errorf("%w: camera.prune_margin must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI string to a preset.
// Unknown or empty values yield "" which leaves the config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// speedScaleForPreset returns the multiplier applied to the speed range.
func speedScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.6
	case DifficultyHard:
		return 1.4
	default:
		return 1.0
	}
}

// ApplyStackPreset modifies the config based on a difficulty preset.
func ApplyStackPreset(cfg *StackConfig, preset DifficultyPreset) {
	scale := speedScaleForPreset(preset)
	cfg.Physics.MinSpeed *= scale
	cfg.Physics.MaxSpeed *= scale

	// Easy also gives a wider starting block
	if preset == DifficultyEasy {
		cfg.World.InitialBlockWidth = min(cfg.World.InitialBlockWidth*1.5, cfg.World.Width)
	}
}
