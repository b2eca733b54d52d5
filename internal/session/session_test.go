package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/games/breakout"
)

type scriptedBot struct {
	cmds  []breakout.Command
	turn  int
	fails map[int]bool
}

func (b *scriptedBot) Name() string { return "scripted" }

func (b *scriptedBot) Decide(context.Context, breakout.Observation) (breakout.Command, error) {
	defer func() { b.turn++ }()
	if b.fails[b.turn] {
		return breakout.CommandLeft, errors.New("script failure")
	}
	if b.turn < len(b.cmds) {
		return b.cmds[b.turn], nil
	}
	return breakout.CommandStay, nil
}

type sliceRecorder struct{ cmds []breakout.Command }

func (r *sliceRecorder) Record(cmd breakout.Command) { r.cmds = append(r.cmds, cmd) }

func newEngine(t *testing.T, maxTurns int) *breakout.Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Session.MaxTurns = maxTurns
	e, err := breakout.New(cfg, breakout.NewRNG(7))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRunToMaxTurns(t *testing.T) {
	e := newEngine(t, 50)
	rec := &sliceRecorder{}

	res, err := Run(context.Background(), e, &scriptedBot{}, Options{Recorder: rec})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.Turns != 50 {
		t.Errorf("Turns = %d, expected 50", res.Turns)
	}
	if len(rec.cmds) != 50 {
		t.Errorf("recorded %d commands, expected 50", len(rec.cmds))
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", res.RunID, err)
	}
	if res.Bot != "scripted" {
		t.Errorf("Bot = %q, expected scripted", res.Bot)
	}
	if last := res.Messages[len(res.Messages)-1]; last != breakout.MsgOutOfMoves {
		t.Errorf("last message = %q, expected %q", last, breakout.MsgOutOfMoves)
	}
	if res.Score != e.Score() || res.Lives != e.Lives() {
		t.Error("Result does not match the engine")
	}
}

func TestRunKeepsRunID(t *testing.T) {
	res, err := Run(context.Background(), newEngine(t, 3), &scriptedBot{}, Options{RunID: "fixed"})
	if err != nil {
		t.Fatal(err)
	}
	if res.RunID != "fixed" {
		t.Errorf("RunID = %q, expected fixed", res.RunID)
	}
}

func TestRunBotErrorPlaysStay(t *testing.T) {
	e := newEngine(t, 3)
	rec := &sliceRecorder{}
	b := &scriptedBot{
		cmds:  []breakout.Command{breakout.CommandRight, breakout.CommandRight, breakout.CommandRight},
		fails: map[int]bool{1: true},
	}

	res, err := Run(context.Background(), e, b, Options{Recorder: rec})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.BotErrors != 1 {
		t.Errorf("BotErrors = %d, expected 1", res.BotErrors)
	}
	want := []breakout.Command{breakout.CommandRight, breakout.CommandStay, breakout.CommandRight}
	for i, cmd := range want {
		if rec.cmds[i] != cmd {
			t.Errorf("command %d = %v, expected %v", i, rec.cmds[i], cmd)
		}
	}
	if e.Paddle().Center != 19 {
		t.Errorf("Paddle().Center = %d, expected 19", e.Paddle().Center)
	}
}

func TestRunQuit(t *testing.T) {
	b := &scriptedBot{cmds: []breakout.Command{breakout.CommandStay, breakout.CommandQuit}}

	res, err := Run(context.Background(), newEngine(t, 900), b, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Turns != 2 {
		t.Errorf("Turns = %d, expected 2", res.Turns)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, newEngine(t, 900), &scriptedBot{}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if res.Turns != 0 {
		t.Errorf("Turns = %d, expected 0", res.Turns)
	}
}
