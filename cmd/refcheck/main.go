// Package main provides the refcheck CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verboseOutput enables provider diagnostics on stderr
var verboseOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "Verify bibliography entries against scholarly databases",
	Long: `refcheck verifies the references of an academic paper.

It extracts bibliography entries from text or PDF input, resolves each
entry against scholarly databases (Semantic Scholar, OpenAlex, arXiv, or
a local database), and reports discrepancies between what a reference
claims and what the canonical record says. All commands output JSON by
default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verboseOutput, "verbose", "v", false, "Log provider diagnostics to stderr")
	rootCmd.Version = Version
}
