// Package bot provides the agents that drive a gridbreak engine: sandboxed
// Lua scripts and a couple of built-in Go strategies.
package bot

import (
	"context"
	_ "embed"
	"errors"

	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/core"
	"github.com/vovakirdan/gridbreak/internal/games/breakout"
	"github.com/vovakirdan/gridbreak/internal/registry"
)

// ErrNoMove is returned when a script finishes a turn without setting a
// valid `move`.
var ErrNoMove = errors.New("bot: script did not set move")

//go:embed scripts/sample.lua
var sampleScript string

// SampleScript returns the source of the built-in sample bot.
func SampleScript() string {
	return sampleScript
}

func init() {
	registry.Register("sample", "Lua sample bot, leads the ball by one column", func(cfg config.Config) (registry.Bot, error) {
		return NewLua("sample", sampleScript, cfg)
	})
	registry.Register("tracker", "keeps the paddle under the ball", func(config.Config) (registry.Bot, error) {
		return Tracker{}, nil
	})
	registry.Register("idle", "never moves", func(config.Config) (registry.Bot, error) {
		return Idle{}, nil
	})
}

// Tracker moves the paddle toward the ball column.
type Tracker struct{}

// Name implements registry.Bot.
func (Tracker) Name() string { return "tracker" }

// Decide implements registry.Bot.
func (Tracker) Decide(_ context.Context, obs breakout.Observation) (breakout.Command, error) {
	switch core.Sign(obs.BallX - obs.PlayerX) {
	case -1:
		return breakout.CommandLeft, nil
	case 1:
		return breakout.CommandRight, nil
	default:
		return breakout.CommandStay, nil
	}
}

// Idle always stays.
type Idle struct{}

// Name implements registry.Bot.
func (Idle) Name() string { return "idle" }

// Decide implements registry.Bot.
func (Idle) Decide(context.Context, breakout.Observation) (breakout.Command, error) {
	return breakout.CommandStay, nil
}
