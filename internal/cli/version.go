package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersionInfo()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	// Setting Version makes cobra honor --version anywhere on the command
	// line, before argument validation, the same way it handles -h.
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionLine() + "\n")
}

// versionLine formats the machine-parseable version line.
func versionLine() string {
	return fmt.Sprintf("shpload %s (%s, %s) %s/%s", version, commit, date, runtime.GOOS, runtime.GOARCH)
}

// printVersionInfo prints the version line to stdout.
func printVersionInfo() {
	fmt.Println(versionLine())
}
