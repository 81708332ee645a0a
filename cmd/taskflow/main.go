// Package main provides the entry point for the taskflow kanban board.
package main

import (
	"os"

	"github.com/riordanpawley/taskflow/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
