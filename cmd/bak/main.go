// Package main is the entry point for the bak CLI.
package main

import (
	"os"

	"github.com/thoreinstein/bak/cmd/bak/commands"
)

func main() {
	os.Exit(commands.Execute())
}
