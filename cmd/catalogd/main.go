package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gridfold/catalogd/internal/cli"
	"github.com/gridfold/catalogd/pkg/catalogd"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(catalogd.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(catalogd.ExitCodeForError(err))
	}
}
