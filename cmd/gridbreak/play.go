package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/platform/tui"
	"github.com/vovakirdan/gridbreak/internal/registry"
)

var flagWatchBot string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Play Breakout in the terminal, one turn per tick.

Controls:
  A/Left     - Move west
  D/Right    - Move east
  S/Down     - Stay
  P          - Pause
  Shift+Q    - End the game
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit
  Ctrl+S     - Save a screenshot

Examples:
  gridbreak play
  gridbreak play --difficulty hard --seed 7`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runTUI(nil, "")
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [script.lua]",
	Short: "Watch a bot play",
	Long: `Render a bot playing at the configured tick rate.

Examples:
  gridbreak watch mybot.lua
  gridbreak watch --bot tracker`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runTUI(args, flagWatchBot)
	},
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchBot, "bot", "sample", "Registered bot to watch when no script is given")
}

// runTUI plays one game in the terminal. An empty botName with no script
// means a human plays.
func runTUI(args []string, botName string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := checkTerminal(cfg); err != nil {
		return err
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.Options{Config: cfg, Seed: flagSeed, Logger: logger}
	if len(args) > 0 || botName != "" {
		b, botErr := loadBot(args, botName, cfg, logger)
		if botErr != nil {
			return botErr
		}
		defer closeBot(b)
		opts.Bot = b
	}

	opts.Store = openStore(logger)
	if opts.Store != nil {
		defer opts.Store.Close()
	}

	_, err = tui.Run(opts)
	return err
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a player interactively",
	Long: `Start with a menu listing the keyboard player and every registered bot.
After a game, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := checkTerminal(cfg); err != nil {
		return err
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	for {
		choice, err := tui.RunMenu(store)
		if err != nil {
			return err
		}
		if choice.Quit {
			return nil
		}

		opts := tui.Options{Config: cfg, Seed: flagSeed, Store: store, Logger: logger}
		if choice.Player != tui.HumanPlayer {
			b, botErr := registry.Create(choice.Player, cfg)
			if botErr != nil {
				return botErr
			}
			opts.Bot = b
		}

		back, err := tui.Run(opts)
		closeBot(opts.Bot)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

// checkTerminal fails early when stdout is a terminal too small for the board.
func checkTerminal(cfg config.Config) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return nil
	}
	needW := cfg.Board.Width
	needH := cfg.Board.Height + 8 // title, status panels and help line
	if w < needW || h < needH {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, needW, needH)
	}
	return nil
}
