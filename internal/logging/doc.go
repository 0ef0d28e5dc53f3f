// Package logging provides concrete implementations of the shpload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: progress and verbose output on stdout, ERROR: lines on stderr
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
