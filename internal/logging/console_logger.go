package logging

import (
	"fmt"
	"os"
	"sync"
)

// ConsoleLogger writes progress and verbose output to stdout and errors to
// stderr. Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	} else {
		fmt.Fprint(os.Stdout, format+"\n")
	}
}

// Info logs progress messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	} else {
		fmt.Fprint(os.Stdout, format+"\n")
	}
}

// Error logs error messages with the ERROR: prefix.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	} else {
		fmt.Fprint(os.Stderr, "ERROR: "+format+"\n")
	}
}
