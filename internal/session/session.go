// Package session drives one headless game: it asks a bot for a command
// every turn and feeds it to the engine until the game ends.
package session

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gridbreak/internal/games/breakout"
	"github.com/vovakirdan/gridbreak/internal/registry"
)

// Recorder receives every command played, in order.
type Recorder interface {
	Record(cmd breakout.Command)
}

// Options configures Run.
type Options struct {
	// RunID identifies the run in storage and replay tapes.
	// A random UUID is generated when empty.
	RunID string

	Logger   *log.Logger
	Recorder Recorder
}

// Result is the outcome of a finished run.
type Result struct {
	RunID     string
	Bot       string
	Score     int
	Turns     int
	Level     int
	Lives     int
	Messages  []string
	BotErrors int
}

// Run plays e to completion with b. A bot error never stops the game:
// it is logged and the turn is played as a stay. Run returns early with
// the context error when ctx is cancelled.
func Run(ctx context.Context, e *breakout.Engine, b registry.Bot, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	res := Result{RunID: runID, Bot: b.Name()}
	logger.Info("run started", "run", runID, "bot", b.Name())

	obs := e.Observe()
	for e.IsRunning() {
		if err := ctx.Err(); err != nil {
			res.fill(e)
			return res, fmt.Errorf("session: run %s: %w", runID, err)
		}

		cmd, err := b.Decide(ctx, obs)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				res.fill(e)
				return res, fmt.Errorf("session: run %s: %w", runID, ctxErr)
			}
			res.BotErrors++
			logger.Warn("bot error, staying", "bot", b.Name(), "turn", e.Turns()+1, "err", err)
			cmd = breakout.CommandStay
		}

		if opts.Recorder != nil {
			opts.Recorder.Record(cmd)
		}
		obs = e.Step(cmd)
	}

	res.fill(e)
	logger.Info("run finished",
		"run", runID,
		"bot", b.Name(),
		"score", res.Score,
		"turns", res.Turns,
		"level", res.Level,
		"lives", res.Lives,
	)
	return res, nil
}

func (r *Result) fill(e *breakout.Engine) {
	r.Score = e.Score()
	r.Turns = e.Turns()
	r.Level = e.Level()
	r.Lives = e.Lives()
	r.Messages = e.Messages()
}
