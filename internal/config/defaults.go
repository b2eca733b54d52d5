package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/gridbreak.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors
// defaults/gridbreak.yaml and is used when that file cannot be parsed.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:  35,
			Height: 26,
		},
		Session: SessionConfig{
			MaxTurns: 900,
			Lives:    3,
		},
		Scoring: ScoringConfig{
			LevelBonus: 5,
			Points: BrickPoints{
				Red:    25,
				Orange: 15,
				Yellow: 20,
				Green:  10,
				Blue:   5,
			},
		},
		Ball: BallConfig{
			InitialDelay: 1,
		},
		Bot: BotConfig{
			TurnTimeout: 250 * time.Millisecond,
		},
		TUI: TUIConfig{
			TickRate: 10,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
