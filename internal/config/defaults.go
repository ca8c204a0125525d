package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/stack.yaml
var defaultStackYAML []byte

// DefaultStackConfig returns the hardcoded stacking game configuration.
func DefaultStackConfig() StackConfig {
	return StackConfig{
		World: WorldConfig{
			Width:             400,
			BlockHeight:       30,
			InitialBlockWidth: 100,
			BaseOffset:        100,
		},
		Physics: PhysicsConfig{
			MinSpeed: 300,
			MaxSpeed: 800,
		},
		Camera: CameraConfig{
			DecayBase:   0.001,
			PruneMargin: 100,
		},
		Leaderboard: LeaderboardConfig{
			BaseURL: "https://oeinleaderboard.ert.im",
			GameID:  "stack-top",
			Timeout: 10 * time.Second,
		},
		Notifications: NotificationConfig{
			DurationMS: 2000,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultStackYAML
}
