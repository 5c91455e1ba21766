package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aipick",
	Short: "AI Pick Daily - dual-strategy stock scoring",
	Long: `AI Pick Daily

Dual-strategy (momentum + conservative) stock scorer over Yahoo Finance
data, with rate-limited concurrent acquisition, cross-sectional percentile
normalization and judgment-gated selection.

Usage:
  go run ./cmd/aipick [command]

Examples:
  go run ./cmd/aipick pick --symbols AAPL,MSFT,GOOGL
  go run ./cmd/aipick fetch AAPL
  go run ./cmd/aipick api
  go run ./cmd/aipick scheduler`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
