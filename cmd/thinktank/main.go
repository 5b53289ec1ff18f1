// Package main is the entry point for the thinktank CLI.
package main

import (
	"os"

	"github.com/scalytics/thinktank/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
