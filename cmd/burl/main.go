// Command burl is the CLI entry point for the burl solid modeling engine.
package main

import (
	"os"

	"github.com/chazu/burl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
