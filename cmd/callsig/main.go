// Package main implements the callsig CLI: a thin driver around
// pkg/checker's call-site core, reading fixture-described callables and
// call sites and reporting the diagnostics C1-C5 produce.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "callsig",
	Short: "Call-site type checker driver",
	Long:  "callsig runs the call-site checker core against fixture files describing callables and call sites.",
}

func main() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
