package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridbreak/internal/bot"
	"github.com/vovakirdan/gridbreak/internal/config"
	"github.com/vovakirdan/gridbreak/internal/games/breakout"
	"github.com/vovakirdan/gridbreak/internal/registry"
)

var flagPrintSample bool

var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "List registered bots",
	Long: `Shows the built-in bots that --bot and the menu accept.

With --sample, prints the Lua source of the sample bot instead, as a
starting point for your own script:
  gridbreak bots --sample > mybot.lua`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if flagPrintSample {
			fmt.Fprint(cmd.OutOrStdout(), bot.SampleScript())
			return
		}

		bots := registry.List()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Available bots:")
		fmt.Fprintln(out)

		maxLen := 4 // "Name" header
		for _, b := range bots {
			if len(b.Name) > maxLen {
				maxLen = len(b.Name)
			}
		}

		fmt.Fprintf(out, "  %-*s  %s\n", maxLen, "Name", "Description")
		fmt.Fprintf(out, "  %-*s  %s\n", maxLen, "----", "-----------")
		for _, b := range bots {
			fmt.Fprintf(out, "  %-*s  %s\n", maxLen, b.Name, b.Description)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'gridbreak run --bot <name>' or 'gridbreak run <script.lua>'.")
	},
}

func init() {
	botsCmd.Flags().BoolVar(&flagPrintSample, "sample", false, "Print the sample bot's Lua source")
}

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Print the constants bots see",
	Long: `Print the constants table published as globals to Lua bots: move key
codes, tile codes and the map size.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for _, c := range breakout.Constants(cfg.Board) {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s = %d\n", c.Name, c.Value)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after --config and --difficulty are applied,
as YAML. The output is a valid config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
