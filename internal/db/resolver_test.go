package db

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vvka-141/shpload/internal/config"
	"github.com/vvka-141/shpload/pkg/shpload"
)

func TestResolveConnectionParams_ConflictingSources(t *testing.T) {
	_, err := ResolveConnectionParams(
		"postgresql://user@host/db",
		&GranularConnFlags{Host: "otherhost"},
		nil,
		&EnvVars{},
		nil,
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot specify both")
}

func TestResolveConnectionParams_ConnectionStringWins(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"postgresql://gis@db1:5433/spatial",
		&GranularConnFlags{},
		nil,
		&EnvVars{PGHOST: "ignored", PGPASSWORD: "envpass"},
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, "db1", cfg.Host)
	require.Equal(t, 5433, cfg.Port)
	require.Equal(t, "spatial", cfg.Database)
	// PGPASSWORD fills a password the URI left out.
	require.Equal(t, "envpass", cfg.Password)
	// Unset sslmode falls back to prefer.
	require.Equal(t, "prefer", cfg.SSLMode)
}

func TestResolveConnectionParams_DatabaseFlagOverridesConnectionString(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"postgresql://gis@dbhost:5432/db1",
		&GranularConnFlags{Database: "db2"},
		nil,
		&EnvVars{},
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, "db2", cfg.Database)

	// Same override on top of an environment connection string.
	cfg, err = ResolveConnectionParams(
		"",
		&GranularConnFlags{Database: "db2"},
		nil,
		&EnvVars{DATABASE_URL: "postgresql://gis@dbhost:5432/db1"},
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, "db2", cfg.Database)
}

func TestResolveConnectionParams_EnvConnectionStringFallback(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{},
		nil,
		&EnvVars{SHPLOAD_CONNECTION_STRING: "postgresql://gis@envdb/spatial"},
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, "envdb", cfg.Host)
}

func TestResolveConnectionParams_GranularFlagsBeatEnvConnectionString(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Host: "flaghost"},
		nil,
		&EnvVars{DATABASE_URL: "postgresql://gis@envdb/spatial"},
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, "flaghost", cfg.Host)
}

func TestResolveConnectionParams_PerParameterPrecedence(t *testing.T) {
	projectConfig := &config.ProjectConfig{
		Connection: config.ConnectionConfig{
			Host:     "yamlhost",
			Port:     6000,
			Username: "yamluser",
			Database: "yamldb",
			SSLMode:  "verify-full",
		},
	}

	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Host: "flaghost"},
		nil,
		&EnvVars{PGPORT: "5544", PGPASSWORD: "pw"},
		projectConfig,
	)
	require.NoError(t, err)

	require.Equal(t, "flaghost", cfg.Host)     // flag
	require.Equal(t, 5544, cfg.Port)           // env
	require.Equal(t, "yamluser", cfg.Username) // project config
	require.Equal(t, "yamldb", cfg.Database)   // project config
	require.Equal(t, "verify-full", cfg.SSLMode)
	require.Equal(t, "pw", cfg.Password)
}

func TestResolveConnectionParams_Defaults(t *testing.T) {
	cfg, err := ResolveConnectionParams("", &GranularConnFlags{}, nil, &EnvVars{}, nil)
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.Host)
	require.Equal(t, 5432, cfg.Port)
	require.Equal(t, shpload.DefaultDatabase, cfg.Database)
	require.Equal(t, "prefer", cfg.SSLMode)
	require.Equal(t, shpload.AuthMethodStandard, cfg.AuthMethod)
}

func TestResolveConnectionParams_InvalidPGPORT(t *testing.T) {
	_, err := ResolveConnectionParams("", &GranularConnFlags{}, nil, &EnvVars{PGPORT: "fivethousand"}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "PGPORT")
}

func TestApplyCloudAuth_AWS(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Host: "mydb.cluster.rds.amazonaws.com", Username: "iamuser"},
		&CloudFlags{AWSIAM: true},
		&EnvVars{AWS_REGION: "us-west-2"},
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, shpload.AuthMethodAWSIAM, cfg.AuthMethod)
	require.Equal(t, "us-west-2", cfg.AWSRegion)
}

func TestApplyCloudAuth_AzureFlagsBeatEnv(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{},
		&CloudFlags{Azure: true, AzureTenantID: "flag-tenant"},
		&EnvVars{AZURE_TENANT_ID: "env-tenant", AZURE_CLIENT_ID: "env-client", AZURE_CLIENT_SECRET: "env-secret"},
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, shpload.AuthMethodAzureEntraID, cfg.AuthMethod)
	require.Equal(t, "flag-tenant", cfg.AzureTenantID)
	require.Equal(t, "env-client", cfg.AzureClientID)
	require.Equal(t, "env-secret", cfg.AzureClientSecret)
}

func TestApplyCloudAuth_GoogleInstance(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Username: "svc@project.iam"},
		&CloudFlags{GoogleInstance: "project:region:instance"},
		&EnvVars{},
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, shpload.AuthMethodGoogleIAM, cfg.AuthMethod)
	require.Equal(t, "project:region:instance", cfg.GoogleInstance)
}

func TestNewConnector_ByAuthMethod(t *testing.T) {
	standard, err := NewConnector(&shpload.ConnectionConfig{AuthMethod: shpload.AuthMethodStandard})
	require.NoError(t, err)
	require.IsType(t, &StandardConnector{}, standard)

	_, err = NewConnector(&shpload.ConnectionConfig{AuthMethod: shpload.AuthMethod(99)})
	require.Error(t, err)
	require.ErrorIs(t, err, shpload.ErrUnsupportedAuthMethod)

	// AWS IAM without a region must fail up front, not at connect time.
	_, err = NewConnector(&shpload.ConnectionConfig{
		AuthMethod: shpload.AuthMethodAWSIAM,
		Host:       "mydb.rds.amazonaws.com",
		Port:       5432,
		Username:   "iamuser",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "region")

	// Google IAM requires an instance connection name.
	_, err = NewConnector(&shpload.ConnectionConfig{
		AuthMethod: shpload.AuthMethodGoogleIAM,
		Username:   "svc@project.iam",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "google-instance")
}
