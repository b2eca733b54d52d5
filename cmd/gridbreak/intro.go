package main

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
)

//go:embed intro.md
var intro string

var introCmd = &cobra.Command{
	Use:   "intro",
	Short: "Explain the game and how to write a bot",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), intro)
	},
}
