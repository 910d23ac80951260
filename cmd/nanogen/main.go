// Package main provides the entry point for the nanogen CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/nanogen/internal/cli"
)

// Set via ldflags at build time.
//
//nolint:gochecknoglobals // Build information injected by the linker
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	err := cli.Execute(context.Background(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	cli.CloseLogFile()
	os.Exit(cli.ExitCodeForError(err))
}
