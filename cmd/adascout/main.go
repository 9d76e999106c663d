// Package main is the entry point for the adascout CLI.
package main

import (
	"os"

	"github.com/nocturnelabs/adascout/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
