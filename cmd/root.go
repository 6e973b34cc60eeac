// Package cmd implements the CLI commands for deckpipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deckpipe",
	Short: "deckpipe — turn product marketing pages into slide decks",
	Long: `deckpipe extracts structured product data from a marketing website,
condenses it with a text completion service, and assembles the results
into a slide-deck file.

Usage:
  deckpipe generate "<presentation request>" --products "A,B" [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
