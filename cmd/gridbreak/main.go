// gridbreak is a deterministic, turn-based Breakout played on a character
// grid by scripted bots or by a human at the terminal.
//
// Usage:
//
//	gridbreak run [script.lua]   - Play a headless game with a bot
//	gridbreak play               - Play interactively
//	gridbreak watch [script.lua] - Watch a bot play
//	gridbreak menu               - Pick a player interactively
//	gridbreak verify <tape>      - Re-run a replay tape
//	gridbreak scores             - Show run history
//	gridbreak serve              - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible games
//	--config <path>      - Load configuration from a YAML file
//	--difficulty <name>  - Apply a difficulty preset (easy, normal, hard)
//	--db <path>          - Set database path (default: ~/.gridbreak/scores.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridbreak/internal/bot"
	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/registry"
	"github.com/vovakirdan/gridbreak/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridbreak",
	Short: "gridbreak - turn-based Breakout for bots and humans",
	Long: `gridbreak is a deterministic Breakout played one turn at a time on a
character grid. Bots are Lua scripts that see the board and pick a move
every turn; humans can play the same game in the terminal.

Examples:
  gridbreak run                      # the sample bot plays a game
  gridbreak run mybot.lua --replay tape.json
  gridbreak watch --bot tracker
  gridbreak play --difficulty easy
  gridbreak verify tape.json
  gridbreak scores`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(botsCmd)
	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(introCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the configuration from --config and --difficulty.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// seed returns --seed, or a clock seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger builds a logger writing to w at --log-level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridbreak",
		Level:           level,
	}), nil
}

// tuiLogger logs to ~/.gridbreak/gridbreak.log, since stderr belongs to
// the alternate screen while a TUI runs.
func tuiLogger() (*log.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, err
	}
	dir := filepath.Join(home, ".gridbreak")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "gridbreak.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// openStore opens the scores database. A failure is reported and the
// game goes on without storage.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// loadBot returns the Lua script bot when a path is given, otherwise the
// registered bot called name.
func loadBot(args []string, name string, cfg config.Config, logger *log.Logger) (registry.Bot, error) {
	if len(args) > 0 {
		return bot.LoadLua(args[0], cfg, bot.WithLogger(logger))
	}
	if !registry.Exists(name) {
		return nil, fmt.Errorf("unknown bot %q (run 'gridbreak bots' to list them)", name)
	}
	return registry.Create(name, cfg)
}

// closeBot releases bots that hold resources, such as a Lua VM.
func closeBot(b registry.Bot) {
	if c, ok := b.(io.Closer); ok {
		//nolint:errcheck // Best-effort release
		c.Close()
	}
}
