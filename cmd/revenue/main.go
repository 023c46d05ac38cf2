// Package main is the entry point for the revenue CLI.
package main

import (
	"os"

	"github.com/punchamoorthee/revenueops/cmd/revenue/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
