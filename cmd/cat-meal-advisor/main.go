package main

import (
	"os"

	"github.com/jipsa-lab/cat-meal-advisor/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
