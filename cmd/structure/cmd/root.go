package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "structure",
	Short: "Market-structure analysis and trade-signal detection",
	Long: `Structure detects market-structure events on candle data and turns them
into graded trade signals.

It provides tools for:
  - Swing-point detection and HH/HL/LH/LL structure labeling
  - BOS and CHoCH structural break detection
  - Liquidity sweep, order block and reclaim analysis
  - Confluence-graded entry signals with structure-based stops
  - Walk-forward scanning of CSV candle files with decision journaling`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
