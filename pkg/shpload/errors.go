package shpload

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
var (
	// ErrInvalidRequest indicates the provided load request is invalid.
	ErrInvalidRequest = errors.New("invalid load request")

	// ErrNoArguments indicates the tool was invoked with no arguments at all.
	// This produces a usage display and a non-zero exit, distinct from -h.
	ErrNoArguments = errors.New("no arguments supplied")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrConverterNotFound indicates the conversion utility could not be
	// located or started.
	ErrConverterNotFound = errors.New("conversion utility not found")

	// ErrConversionFailed indicates the conversion utility ran and rejected
	// its input (bad shapefile, bad projection code).
	ErrConversionFailed = errors.New("conversion failed")

	// ErrExecutionFailed indicates SQL execution failed.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method
	// is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
//
// When the conversion utility itself exited non-zero, that status is
// propagated unchanged so operators see the utility's own code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// The converter's own exit status wins over classification so operators
	// see the utility's code verbatim.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}

	switch {
	case errors.Is(err, ErrNoArguments):
		return ExitGeneralError
	case errors.Is(err, ErrInvalidRequest):
		return ExitRequestError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrConverterNotFound):
		return ExitConverterError
	case errors.Is(err, ErrConversionFailed):
		return ExitGeneralError
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitRequestError
	}

	// Cobra flag/argument errors do not carry a sentinel; classify by message.
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "invalid argument") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "accepts 1 arg(s)") ||
		strings.Contains(errStr, "flag needs an argument") {
		return ExitUsageError
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

// IsUsageError reports whether err should be accompanied by a pointer to -h.
func IsUsageError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrNoArguments) {
		return true
	}
	return ExitCodeForError(err) == ExitUsageError
}
