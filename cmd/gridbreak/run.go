package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridbreak/internal/games/breakout"
	"github.com/vovakirdan/gridbreak/internal/replay"
	"github.com/vovakirdan/gridbreak/internal/session"
	"github.com/vovakirdan/gridbreak/internal/storage"
)

var (
	flagBot    string
	flagReplay string
	flagNoSave bool
)

var runCmd = &cobra.Command{
	Use:   "run [script.lua]",
	Short: "Play a headless game with a bot",
	Long: `Play one game to completion with a bot and print the outcome.

The bot is the Lua script given as argument, or the registered bot named by
--bot. The run is saved to the scores database unless --no-save is set.

Examples:
  gridbreak run
  gridbreak run mybot.lua --seed 42
  gridbreak run --bot tracker --replay tracker.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagBot, "bot", "sample", "Registered bot to play when no script is given")
	runCmd.Flags().StringVar(&flagReplay, "replay", "", "Write a replay tape to this path")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not save the run to the scores database")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	b, err := loadBot(args, flagBot, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBot(b)

	rng := breakout.NewRNG(seed())
	runSeed := rng.Seed()
	engine, err := breakout.New(cfg, rng, breakout.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rec := replay.NewRecorder()
	res, err := session.Run(ctx, engine, b, session.Options{Logger: logger, Recorder: rec})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, msg := range res.Messages {
		fmt.Fprintln(out, msg)
	}
	fmt.Fprintf(out, "Bot: %s  Seed: %d\n", res.Bot, runSeed)
	fmt.Fprintf(out, "Score: %d  Level: %d  Lives: %d  Turns: %d\n", res.Score, res.Level, res.Lives, res.Turns)
	if res.BotErrors > 0 {
		fmt.Fprintf(out, "Bot errors: %d (played as stay)\n", res.BotErrors)
	}

	if !flagNoSave {
		if store := openStore(logger); store != nil {
			_, saveErr := store.SaveRun(storage.RunEntry{
				RunID: res.RunID,
				Bot:   res.Bot,
				Seed:  runSeed,
				Score: res.Score,
				Turns: res.Turns,
				Level: res.Level,
				Lives: res.Lives,
			})
			if saveErr != nil {
				logger.Warn("could not save run", "run", res.RunID, "err", saveErr)
			}
			store.Close()
		}
	}

	if flagReplay != "" {
		tape := rec.Tape(replay.Tape{
			RunID:  res.RunID,
			Bot:    res.Bot,
			Seed:   runSeed,
			Config: cfg,
			Score:  res.Score,
			Turns:  res.Turns,
			Level:  res.Level,
			Lives:  res.Lives,
		})
		if err := replay.Save(flagReplay, tape); err != nil {
			return err
		}
		fmt.Fprintf(out, "Replay written to %s\n", flagReplay)
	}

	return nil
}
