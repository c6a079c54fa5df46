// Package main provides the lr CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lr",
	Short: "Literature review workflow CLI",
	Long: `lr manages systematic literature reviews.

Core features:
  - Paper ingestion from PDFs with metadata extraction
  - Citation validation against CrossRef with confidence tiers
  - Duplicate detection by DOI and fuzzy title similarity
  - Dual-reviewer screening with Cohen's kappa reliability
  - Thematic synthesis with optional embedding support

All commands output JSON by default for scripting.
Use --human for human-readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
