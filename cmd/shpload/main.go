package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/shpload/internal/cli"
	"github.com/vvka-141/shpload/pkg/shpload"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(shpload.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		// The no-arguments case already printed the usage text; the exit
		// status alone distinguishes it from explicit -h.
		if !errors.Is(err, shpload.ErrNoArguments) {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			if shpload.IsUsageError(err) {
				fmt.Fprintln(os.Stderr, "Run 'shpload -h' for usage.")
			}
		}
		os.Exit(shpload.ExitCodeForError(err))
	}
}
