package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/gridbreak/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunThenVerify(t *testing.T) {
	dir := t.TempDir()
	tape := filepath.Join(dir, "tape.json")
	db := filepath.Join(dir, "scores.db")

	out, err := execute(t, "run", "--bot", "tracker", "--seed", "42", "--db", db, "--log-level", "error", "--replay", tape)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.Contains(out, "Score:") {
		t.Errorf("run output missing score: %q", out)
	}

	out, err = execute(t, "verify", tape, "--db", db)
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	if !strings.HasPrefix(out, "OK:") {
		t.Errorf("verify output = %q, expected OK", out)
	}
	if !strings.Contains(out, "Matches the stored run") {
		t.Errorf("verify output = %q, expected a stored run match", out)
	}
}

func TestVerifyLeavesMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	tape := filepath.Join(dir, "tape.json")
	db := filepath.Join(dir, "scores.db")

	if _, err := execute(t, "run", "--bot", "idle", "--seed", "7", "--no-save", "--db", db, "--log-level", "error", "--replay", tape); err != nil {
		t.Fatalf("run error = %v", err)
	}
	defer func() { flagNoSave = false }()

	other := filepath.Join(dir, "none", "scores.db")
	out, err := execute(t, "verify", tape, "--db", other)
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	if !strings.HasPrefix(out, "OK:") || strings.Contains(out, "Matches the stored run") {
		t.Errorf("verify output = %q, expected OK without a stored run", out)
	}
	if _, err := os.Stat(filepath.Dir(other)); !os.IsNotExist(err) {
		t.Error("verify created the scores database directory")
	}
}

func TestRunUnknownBot(t *testing.T) {
	_, err := execute(t, "run", "--bot", "nobody", "--no-save", "--replay", "")
	if err == nil || !strings.Contains(err.Error(), "unknown bot") {
		t.Errorf("run --bot nobody error = %v, expected unknown bot", err)
	}
}

func TestBotsSample(t *testing.T) {
	defer func() { flagPrintSample = false }()

	out, err := execute(t, "bots", "--sample")
	if err != nil {
		t.Fatalf("bots --sample error = %v", err)
	}
	if !strings.Contains(out, "move") {
		t.Errorf("sample script = %q, expected it to set move", out)
	}
}

func TestConstantsCommand(t *testing.T) {
	out, err := execute(t, "constants")
	if err != nil {
		t.Fatalf("constants error = %v", err)
	}
	for _, want := range []string{"west", "MAP_WIDTH", "PLAYER"} {
		if !strings.Contains(out, want) {
			t.Errorf("constants output missing %q", want)
		}
	}
}

func TestLoadConfigDifficulty(t *testing.T) {
	defer func() { flagDifficulty = "" }()

	flagDifficulty = "easy"
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Session.Lives != 5 {
		t.Errorf("Lives = %d, expected 5", cfg.Session.Lives)
	}

	flagDifficulty = "brutal"
	if _, err := loadConfig(); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("loadConfig() error = %v, expected ErrInvalid", err)
	}
}

func TestIntroCommand(t *testing.T) {
	out, err := execute(t, "intro")
	if err != nil {
		t.Fatalf("intro error = %v", err)
	}
	if !strings.Contains(out, "Writing a bot") {
		t.Error("intro should explain how to write a bot")
	}
}
