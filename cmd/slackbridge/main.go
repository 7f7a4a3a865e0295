// Package main is the entry point for the slackbridge CLI.
package main

import (
	"os"

	"github.com/slackbridge/slackbridge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
