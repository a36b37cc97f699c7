package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/blocklint/pkg/cli"
)

var (
	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "blocklint",
	Short: "Blocklint - rule checker for JSON block documents",
	Long: `Blocklint validates JSON documents that describe UI blocks (block, elem,
mods, content) against a fixed rule set and reports positioned diagnostics.

Rules cover:
  - Structure: every object names its block, property names are lowercase
  - Warning blocks: equal text sizes, button and placeholder sizes, button position
  - Headings: a single h1, h2 after h1, h3 after h2
  - Grids: marketing blocks take at most half of the columns

Configuration is read from blocklint.yaml when present.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the code cli.ExitCode
// assigns to the result.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrProblemsFound) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "blocklint.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format: json, text, console")
}
