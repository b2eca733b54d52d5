package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridbreak/internal/replay"
	"github.com/vovakirdan/gridbreak/internal/storage"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <tape.json>",
	Short: "Re-run a replay tape and check its outcome",
	Long: `Play the commands of a replay tape again with the recorded seed and
configuration, and check the game ends with the recorded score, turns,
level and lives.

Examples:
  gridbreak run --replay tape.json
  gridbreak verify tape.json`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	tape, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	out, err := replay.Verify(tape)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "OK: run %s by %s (seed %d)\n", tape.RunID, tape.Bot, tape.Seed)
	fmt.Fprintf(cmd.OutOrStdout(), "Score: %d  Level: %d  Lives: %d  Turns: %d  State: %016x\n",
		out.Score, out.Level, out.Lives, out.Turns, out.Snapshot.Hash())

	// Cross-check the run history when the tape's run was stored.
	// A missing database is not created.
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	exists, err := storage.Exists(flagDBPath)
	if err != nil {
		logger.Warn("cannot check scores database", "path", flagDBPath, "err", err)
		return nil
	}
	if !exists {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	defer store.Close()

	stored, err := store.RunByID(tape.RunID)
	if err != nil {
		logger.Warn("could not look up run", "run", tape.RunID, "err", err)
		return nil
	}
	if stored == nil {
		return nil
	}
	if stored.Score != out.Score || stored.Turns != out.Turns || stored.Seed != tape.Seed {
		return fmt.Errorf("%w: stored run %s has score %d turns %d seed %d",
			replay.ErrMismatch, stored.RunID, stored.Score, stored.Turns, stored.Seed)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Matches the stored run from %s\n", stored.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
