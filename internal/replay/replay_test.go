package replay

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/games/breakout"
	"github.com/vovakirdan/gridbreak/internal/session"
)

// weaver alternates between chasing the ball and drifting left.
type weaver struct{}

func (weaver) Name() string { return "weaver" }

func (weaver) Decide(_ context.Context, obs breakout.Observation) (breakout.Command, error) {
	switch {
	case obs.BallY%5 == 0:
		return breakout.CommandLeft, nil
	case obs.BallX < obs.PlayerX:
		return breakout.CommandLeft, nil
	case obs.BallX > obs.PlayerX:
		return breakout.CommandRight, nil
	default:
		return breakout.CommandStay, nil
	}
}

func recordRun(t *testing.T, seed int64) Tape {
	t.Helper()
	cfg := config.Default()
	e, err := breakout.New(cfg, breakout.NewRNG(seed))
	if err != nil {
		t.Fatal(err)
	}

	rec := NewRecorder()
	res, err := session.Run(context.Background(), e, weaver{}, session.Options{Recorder: rec})
	if err != nil {
		t.Fatalf("session.Run() failed: %v", err)
	}

	return rec.Tape(Tape{
		RunID:  res.RunID,
		Bot:    res.Bot,
		Seed:   seed,
		Config: cfg,
		Score:  res.Score,
		Turns:  res.Turns,
		Level:  res.Level,
		Lives:  res.Lives,
	})
}

func TestSaveLoadVerify(t *testing.T) {
	tape := recordRun(t, 2024)
	path := filepath.Join(t.TempDir(), "run.json")

	if err := Save(path, tape); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.RunID != tape.RunID || loaded.Config != tape.Config || loaded.CommandsB64 != tape.CommandsB64 {
		t.Error("loaded tape differs from the saved one")
	}

	out, err := Verify(loaded)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if out.Score != tape.Score || out.Turns != tape.Turns {
		t.Errorf("replayed score %d turns %d, expected %d and %d", out.Score, out.Turns, tape.Score, tape.Turns)
	}
}

func TestVerifyMismatch(t *testing.T) {
	tape := recordRun(t, 5)
	tape.Score++

	if _, err := Verify(tape); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify() error = %v, expected ErrMismatch", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrMalformed) {
		t.Errorf("Load(bad json) error = %v, expected ErrMalformed", err)
	}

	future := filepath.Join(dir, "future.json")
	if err := os.WriteFile(future, []byte(`{"tape_version": 99}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(future); !errors.Is(err, ErrMalformed) {
		t.Errorf("Load(future version) error = %v, expected ErrMalformed", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestTapeCommandsBadBase64(t *testing.T) {
	tape := Tape{CommandsB64: "%%%"}
	if _, err := tape.Commands(); !errors.Is(err, ErrMalformed) {
		t.Errorf("Commands() error = %v, expected ErrMalformed", err)
	}
}

func TestEncodeDecodeCommands(t *testing.T) {
	cmds := []breakout.Command{
		breakout.CommandStay, breakout.CommandLeft, breakout.CommandRight,
		breakout.CommandFire, breakout.CommandQuit,
	}

	got, err := DecodeCommands(EncodeCommands(cmds))
	if err != nil {
		t.Fatalf("DecodeCommands() failed: %v", err)
	}
	if len(got) != len(cmds) {
		t.Fatalf("decoded %d commands, expected %d", len(got), len(cmds))
	}
	for i := range cmds {
		if got[i] != cmds[i] {
			t.Errorf("command %d = %v, expected %v", i, got[i], cmds[i])
		}
	}

	empty, err := DecodeCommands(EncodeCommands(nil))
	if err != nil || len(empty) != 0 {
		t.Errorf("DecodeCommands(empty) = %v, %v", empty, err)
	}
}

func TestDecodeCommandsSkipsUnknownFields(t *testing.T) {
	b := EncodeCommands([]breakout.Command{breakout.CommandLeft})
	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendString(b, "future field")

	got, err := DecodeCommands(b)
	if err != nil || len(got) != 1 || got[0] != breakout.CommandLeft {
		t.Errorf("DecodeCommands() = %v, %v, expected [west]", got, err)
	}
}

func TestDecodeCommandsRejects(t *testing.T) {
	countMismatch := protowire.AppendTag(nil, fieldCount, protowire.VarintType)
	countMismatch = protowire.AppendVarint(countMismatch, 3)

	var badCmd []byte
	badCmd = protowire.AppendTag(badCmd, fieldCommands, protowire.BytesType)
	badCmd = protowire.AppendBytes(badCmd, protowire.AppendVarint(nil, 42))
	badCmd = protowire.AppendTag(badCmd, fieldCount, protowire.VarintType)
	badCmd = protowire.AppendVarint(badCmd, 1)

	tests := map[string][]byte{
		"count mismatch":  countMismatch,
		"unknown command": badCmd,
		"missing count":   EncodeCommands([]breakout.Command{breakout.CommandLeft})[:3],
		"truncated":       {0x0a, 0x05, 0x01},
	}

	for name, data := range tests {
		if _, err := DecodeCommands(data); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: DecodeCommands() error = %v, expected ErrMalformed", name, err)
		}
	}
}
