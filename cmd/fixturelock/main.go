// Package main is the entry point for the fixturelock CLI.
package main

import (
	"os"

	"github.com/Serapieum-of-alex/github-actions/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
