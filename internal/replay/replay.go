// Package replay records the commands of a run into a JSON tape and
// verifies a tape by playing it back on a fresh engine.
package replay

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/games/breakout"
)

// TapeVersion is the current tape format.
const TapeVersion = 1

var (
	// ErrMalformed is returned for tapes that cannot be decoded.
	ErrMalformed = errors.New("replay: malformed tape")
	// ErrMismatch is returned when a replayed run does not reproduce the
	// recorded outcome.
	ErrMismatch = errors.New("replay: outcome mismatch")
)

// Tape is a recorded run. Commands hold a base64 protobuf-wire envelope.
type Tape struct {
	TapeVersion int           `json:"tape_version"`
	RunID       string        `json:"run_id"`
	Bot         string        `json:"bot"`
	Seed        int64         `json:"seed"`
	Config      config.Config `json:"config"`
	Score       int           `json:"score"`
	Turns       int           `json:"turns"`
	Level       int           `json:"level"`
	Lives       int           `json:"lives"`
	CommandsB64 string        `json:"commands_b64"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Recorder collects the commands of a run.
type Recorder struct {
	cmds []breakout.Command
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one command.
func (r *Recorder) Record(cmd breakout.Command) {
	r.cmds = append(r.cmds, cmd)
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []breakout.Command {
	return append([]breakout.Command(nil), r.cmds...)
}

// Tape completes header with the recorded commands.
func (r *Recorder) Tape(header Tape) Tape {
	header.TapeVersion = TapeVersion
	header.CommandsB64 = base64.StdEncoding.EncodeToString(EncodeCommands(r.cmds))
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	return header
}

// Commands decodes the tape's command envelope.
func (t Tape) Commands() ([]breakout.Command, error) {
	bin, err := base64.StdEncoding.DecodeString(t.CommandsB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return DecodeCommands(bin)
}

// Save writes the tape as indented JSON.
func Save(path string, t Tape) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("replay: encode tape: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306 -- tapes are meant to be shared
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// Load reads a tape written by Save.
func Load(path string) (Tape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tape{}, fmt.Errorf("replay: read %s: %w", path, err)
	}
	var t Tape
	if err := json.Unmarshal(data, &t); err != nil {
		return Tape{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if t.TapeVersion != TapeVersion {
		return Tape{}, fmt.Errorf("%w: unsupported version %d", ErrMalformed, t.TapeVersion)
	}
	return t, nil
}

// Outcome is the state reached by playing a tape back.
type Outcome struct {
	Score    int
	Turns    int
	Level    int
	Lives    int
	Snapshot breakout.Snapshot
}

// Play runs the tape's commands on a fresh engine seeded like the
// original run. Commands past the end of the game are ignored.
func Play(t Tape) (Outcome, error) {
	cmds, err := t.Commands()
	if err != nil {
		return Outcome{}, err
	}
	e, err := breakout.New(t.Config, breakout.NewRNG(t.Seed))
	if err != nil {
		return Outcome{}, fmt.Errorf("replay: %w", err)
	}
	for _, c := range cmds {
		if !e.IsRunning() {
			break
		}
		e.Step(c)
	}
	return Outcome{
		Score:    e.Score(),
		Turns:    e.Turns(),
		Level:    e.Level(),
		Lives:    e.Lives(),
		Snapshot: e.Snapshot(),
	}, nil
}

// Verify plays the tape back and checks it reproduces the recorded
// score, turns, level and lives.
func Verify(t Tape) (Outcome, error) {
	out, err := Play(t)
	if err != nil {
		return out, err
	}
	if out.Score != t.Score || out.Turns != t.Turns || out.Level != t.Level || out.Lives != t.Lives {
		return out, fmt.Errorf("%w: recorded score %d turns %d level %d lives %d, replayed score %d turns %d level %d lives %d",
			ErrMismatch, t.Score, t.Turns, t.Level, t.Lives, out.Score, out.Turns, out.Level, out.Lives)
	}
	return out, nil
}
