// Package cli implements the cat-meal-advisor CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jipsa-lab/cat-meal-advisor/internal/config"
)

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "cat-meal-advisor",
	Short: "Cat food and treat recommendations",
	Long:  "Rule-based cat food and treat recommendations: caloric needs, allergy-aware filtering and scored catalog ranking. Serve over HTTP or run one-shot from files.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: $CONFIG_PATH or configs/config.yaml)")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		os.Setenv("CONFIG_PATH", configPath)
	}
	return config.Load()
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
