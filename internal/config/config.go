// Package config provides YAML-based configuration loading, validation and
// difficulty presets for gridbreak.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors. Callers abort startup on any of them.
var (
	ErrBrickWidth    = errors.New("config: board width not compatible with three-wide bricks")
	ErrBoardTooSmall = errors.New("config: board too small")
	ErrInvalid       = errors.New("config: invalid value")
)

// Minimum board size: the brick rows end at row 9 and the paddle needs
// open rows below them; respawn columns [3, width-3] need width >= 8.
const (
	MinBoardWidth  = 8
	MinBoardHeight = 12
)

// Config contains all configuration for a gridbreak session.
type Config struct {
	Board   BoardConfig   `yaml:"board" json:"board"`
	Session SessionConfig `yaml:"session" json:"session"`
	Scoring ScoringConfig `yaml:"scoring" json:"scoring"`
	Ball    BallConfig    `yaml:"ball" json:"ball"`
	Bot     BotConfig     `yaml:"bot" json:"bot"`
	TUI     TUIConfig     `yaml:"tui" json:"tui"`
}

// BoardConfig defines the grid dimensions, walls included.
type BoardConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// SessionConfig defines the terminal conditions of a game.
type SessionConfig struct {
	MaxTurns int `yaml:"max_turns" json:"max_turns"`
	Lives    int `yaml:"lives" json:"lives"`
}

// ScoringConfig defines brick values.
type ScoringConfig struct {
	LevelBonus int         `yaml:"level_bonus" json:"level_bonus"`
	Points     BrickPoints `yaml:"points" json:"points"`
}

// BrickPoints is the base value of a brick by row color.
type BrickPoints struct {
	Red    int `yaml:"red" json:"red"`
	Orange int `yaml:"orange" json:"orange"`
	Yellow int `yaml:"yellow" json:"yellow"`
	Green  int `yaml:"green" json:"green"`
	Blue   int `yaml:"blue" json:"blue"`
}

// BallConfig defines ball pacing.
type BallConfig struct {
	InitialDelay int `yaml:"initial_delay" json:"initial_delay"`
}

// BotConfig defines limits applied to scripted bots.
type BotConfig struct {
	TurnTimeout time.Duration `yaml:"turn_timeout" json:"turn_timeout"`
}

// TUIConfig defines interactive pacing.
type TUIConfig struct {
	TickRate int `yaml:"tick_rate" json:"tick_rate"`
}

// Validate checks the board geometry and session limits.
func (c Config) Validate() error {
	if (c.Board.Width-2)%3 != 0 {
		return fmt.Errorf("%w: width %d leaves %d interior columns", ErrBrickWidth, c.Board.Width, c.Board.Width-2)
	}
	if c.Board.Width < MinBoardWidth || c.Board.Height < MinBoardHeight {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d",
			ErrBoardTooSmall, c.Board.Width, c.Board.Height, MinBoardWidth, MinBoardHeight)
	}
	if c.Session.Lives < 1 {
		return fmt.Errorf("%w: lives must be at least 1, got %d", ErrInvalid, c.Session.Lives)
	}
	if c.Session.MaxTurns < 1 {
		return fmt.Errorf("%w: max_turns must be at least 1, got %d", ErrInvalid, c.Session.MaxTurns)
	}
	if c.Ball.InitialDelay < 1 {
		return fmt.Errorf("%w: ball initial_delay must be at least 1, got %d", ErrInvalid, c.Ball.InitialDelay)
	}
	if c.Scoring.LevelBonus < 0 {
		return fmt.Errorf("%w: level_bonus must not be negative", ErrInvalid)
	}
	return nil
}

// Preset is a named difficulty.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ParsePreset converts a CLI value to a Preset. Empty means no preset.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetEasy, PresetNormal, PresetHard:
		return Preset(s), nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalid, s)
	}
}
