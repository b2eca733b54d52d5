package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridbreak/internal/storage"
)

var (
	flagScoresBot   string
	flagScoresLimit int
	flagScoresClear bool
	flagScoresStats bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history",
	Long: `Display the best runs, optionally for one bot.

Examples:
  gridbreak scores
  gridbreak scores --bot sample --limit 20
  gridbreak scores --stats
  gridbreak scores --bot human --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresBot, "bot", "", "Only show runs by this bot (\"human\" for keyboard play)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the runs instead of showing them")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-bot statistics")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearRuns(flagScoresBot); err != nil {
			return err
		}
		if flagScoresBot == "" {
			fmt.Fprintln(out, "All runs deleted.")
		} else {
			fmt.Fprintf(out, "Runs by %s deleted.\n", flagScoresBot)
		}
		return nil
	}

	if flagScoresStats {
		return printStats(out, store)
	}

	runs, err := store.TopRuns(flagScoresBot, flagScoresLimit)
	if err != nil {
		return err
	}

	title := "all bots"
	if flagScoresBot != "" {
		title = flagScoresBot
	}
	fmt.Fprintf(out, "High Scores - %s\n", title)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "  No runs yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s %-10s %7s %5s %5s %5s %-20s %s\n", "Rank", "Bot", "Score", "Level", "Lives", "Turns", "Seed", "Date")
	fmt.Fprintf(out, "  %-4s %-10s %7s %5s %5s %5s %-20s %s\n", "----", "---", "-----", "-----", "-----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d %-10s %7d %5d %5d %5d %-20d %s\n",
			i+1, r.Bot, r.Score, r.Level, r.Lives, r.Turns, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printStats(out io.Writer, store *storage.Store) error {
	stats, err := store.AllStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No runs yet.")
		return nil
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "  %-10s %5s %7s %9s %s\n", "Bot", "Runs", "Best", "Average", "Last played")
	fmt.Fprintf(out, "  %-10s %5s %7s %9s %s\n", "---", "----", "----", "-------", "-----------")
	for _, name := range names {
		s := stats[name]
		fmt.Fprintf(out, "  %-10s %5d %7d %9.1f %s\n", s.Bot, s.Runs, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
