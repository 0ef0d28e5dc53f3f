package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/vvka-141/shpload/pkg/shpload"
)

func TestResolveConnection_DefaultsToStandardAuth(t *testing.T) {
	for _, v := range []string{"PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGSSLMODE",
		"SHPLOAD_CONNECTION_STRING", "DATABASE_URL", "AWS_REGION",
		"AZURE_TENANT_ID", "AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET"} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	flags := &loadFlagValues{}
	cfg, err := resolveConnection(flags, nil)
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.Host)
	require.Equal(t, 5432, cfg.Port)
	require.Equal(t, shpload.AuthMethodStandard, cfg.AuthMethod)
	require.Equal(t, "shpload", cfg.AppName)
}

func TestResolveConnection_ConflictingFlags(t *testing.T) {
	flags := &loadFlagValues{
		connection: "postgresql://gis@host/db",
		host:       "otherhost",
	}

	_, err := resolveConnection(flags, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot specify both")
}

func TestResolveConnection_CloudFlagsCarryThrough(t *testing.T) {
	flags := &loadFlagValues{
		username:  "iamuser",
		host:      "mydb.rds.amazonaws.com",
		awsIAM:    true,
		awsRegion: "eu-central-1",
	}

	cfg, err := resolveConnection(flags, nil)
	require.NoError(t, err)
	require.Equal(t, shpload.AuthMethodAWSIAM, cfg.AuthMethod)
	require.Equal(t, "eu-central-1", cfg.AWSRegion)
}

func TestPromptPassword_RequiresTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal; non-interactive behavior not observable")
	}

	_, err := promptPassword("gis")
	require.Error(t, err)
	require.Contains(t, err.Error(), "interactive terminal")
}
