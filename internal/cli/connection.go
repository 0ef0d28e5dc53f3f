package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vvka-141/shpload/internal/config"
	"github.com/vvka-141/shpload/internal/db"
	"github.com/vvka-141/shpload/pkg/shpload"
)

// resolveConnection turns CLI flags, environment variables, and the optional
// project config into a ConnectionConfig, applying PostgreSQL-standard
// precedence (flag > env > shpload.yaml > default).
func resolveConnection(flags *loadFlagValues, projectConfig *config.ProjectConfig) (*shpload.ConnectionConfig, error) {
	granular := &db.GranularConnFlags{
		Host:     flags.host,
		Port:     flags.port,
		Username: flags.username,
		Database: flags.database,
		SSLMode:  flags.sslMode,
	}

	cloud := &db.CloudFlags{
		AWSIAM:         flags.awsIAM,
		AWSRegion:      flags.awsRegion,
		Azure:          flags.azure,
		AzureTenantID:  flags.azureTenantID,
		AzureClientID:  flags.azureClientID,
		GoogleInstance: flags.googleInstance,
	}

	connConfig, err := db.ResolveConnectionParams(
		flags.connection,
		granular,
		cloud,
		db.LoadFromEnvironment(),
		projectConfig,
	)
	if err != nil {
		return nil, err
	}

	connConfig.AppName = "shpload"
	return connConfig, nil
}

// promptPassword reads the database password from the terminal without echo.
// Fails when stdin is not a terminal rather than silently reading a pipe.
func promptPassword(username string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("-W requires an interactive terminal; use $PGPASSWORD or a connection string instead")
	}

	fmt.Fprintf(os.Stderr, "Password for user %s: ", username)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}
