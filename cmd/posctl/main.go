package main

import (
	"os"

	"github.com/codetroops/pos-lebanon/internal/client/commands"
)

var version = "1.0.0"

func main() {
	commands.Version = version
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
