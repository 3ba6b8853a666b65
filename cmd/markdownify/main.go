// Package main is the entry point for the markdownify CLI.
package main

import (
	"os"

	"github.com/jmylchreest/markdownify/cmd/markdownify/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
