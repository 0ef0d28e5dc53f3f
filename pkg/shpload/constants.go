package shpload

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
//
// A failure of the external conversion utility is reported with the
// utility's own exit status so that pipeline callers see the original code.
const (
	ExitSuccess         = 0  // Load completed successfully (or help displayed)
	ExitGeneralError    = 1  // Unknown or unclassified error; also no-arguments usage display
	ExitUsageError      = 2  // CLI usage error (missing flags, invalid values)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitRequestError    = 10 // Invalid load request or configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitConverterError  = 12 // Conversion utility missing or could not be started
	ExitExecutionFailed = 13 // SQL execution failed
)

const (
	// DefaultConverterBinary is the external utility that turns a shapefile
	// into SQL. Overridable for tests via SHPLOAD_CONVERTER.
	DefaultConverterBinary = "shp2pgsql"

	// DefaultDatabase is the database to connect to when none is specified.
	DefaultDatabase = "postgres"

	// MaxErrorPreviewLength is the maximum number of characters shown
	// when previewing a failed SQL batch in error messages.
	MaxErrorPreviewLength = 200
)
