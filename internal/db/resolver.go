package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/shpload/internal/config"
	"github.com/vvka-141/shpload/pkg/shpload"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard naming, but are long-form only so that
// -h stays reserved for help and -s/-t/-p for the load parameters.
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use one of these methods instead:
//  1. $PGPASSWORD environment variable
//  2. -W/--password interactive prompt
//  3. Connection string with embedded password
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no connection-related granular flags were provided.
// Database is excluded because it may also override a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// CloudFlags represents cloud IAM authentication CLI flags.
// These override the corresponding environment variables.
// Note: the Azure client secret is NOT a CLI flag for security reasons;
// use $AZURE_CLIENT_SECRET instead.
type CloudFlags struct {
	AWSIAM         bool   // Enable AWS RDS IAM authentication
	AWSRegion      string // Overrides $AWS_REGION
	Azure          bool   // Enable Azure Entra ID authentication
	AzureTenantID  string // Overrides $AZURE_TENANT_ID
	AzureClientID  string // Overrides $AZURE_CLIENT_ID
	GoogleInstance string // Cloud SQL instance (project:region:instance)
}

// EnvVars represents PostgreSQL standard environment variables.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGHOST     string
	PGPORT     string
	PGUSER     string
	PGPASSWORD string
	PGDATABASE string
	PGSSLMODE  string

	// Full connection string fallbacks
	SHPLOAD_CONNECTION_STRING string
	DATABASE_URL              string

	// Cloud provider variables
	AWS_REGION          string
	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
}

// LoadFromEnvironment loads PostgreSQL and cloud provider environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:                    os.Getenv("PGHOST"),
		PGPORT:                    os.Getenv("PGPORT"),
		PGUSER:                    os.Getenv("PGUSER"),
		PGPASSWORD:                os.Getenv("PGPASSWORD"),
		PGDATABASE:                os.Getenv("PGDATABASE"),
		PGSSLMODE:                 os.Getenv("PGSSLMODE"),
		SHPLOAD_CONNECTION_STRING: os.Getenv("SHPLOAD_CONNECTION_STRING"),
		DATABASE_URL:              os.Getenv("DATABASE_URL"),
		AWS_REGION:                os.Getenv("AWS_REGION"),
		AZURE_TENANT_ID:           os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:           os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET:       os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// ConnectionString returns the first non-empty connection string fallback.
func (e *EnvVars) ConnectionString() string {
	if e.SHPLOAD_CONNECTION_STRING != "" {
		return e.SHPLOAD_CONNECTION_STRING
	}
	return e.DATABASE_URL
}

// ResolveConnectionParams resolves connection parameters using
// PostgreSQL-standard precedence:
//
//  1. Connection string flag (--connection) - parsed and used directly
//  2. Granular flags (--host, --port, --username, --database, --sslmode)
//  3. SHPLOAD_CONNECTION_STRING / DATABASE_URL environment variables
//  4. PG* environment variables
//  5. shpload.yaml project config
//  6. Defaults (localhost:5432, database "postgres", prefer SSL)
//
// Returns an error if BOTH --connection AND granular flags are provided;
// this prevents ambiguity and ensures clear user intent.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	cloudFlags *CloudFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*shpload.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if cloudFlags == nil {
		cloudFlags = &CloudFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (--host, --port, --username)\n" +
				"Choose one approach:\n" +
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/gis\"\n" +
				"  2. Granular flags: --host localhost --port 5432 --username myuser\n" +
				"  3. Environment variables: export PGHOST=localhost PGUSER=myuser",
		)
	}

	var cfg *shpload.ConnectionConfig
	var err error

	switch {
	case connStringFlag != "":
		cfg, err = resolveFromConnectionString(connStringFlag, envVars)
	case granularFlags.IsEmpty() && envVars.ConnectionString() != "":
		cfg, err = resolveFromConnectionString(envVars.ConnectionString(), envVars)
	default:
		cfg, err = resolveFromGranularParams(granularFlags, envVars, projectConfig)
	}
	if err != nil {
		return nil, err
	}

	// --database beats the database embedded in a connection string, so an
	// operator can point one saved connection at different target databases.
	if granularFlags.Database != "" {
		cfg.Database = granularFlags.Database
	}

	applyCloudAuth(cfg, cloudFlags, envVars, projectConfig)

	return cfg, nil
}

// applyCloudAuth switches the config to a cloud auth method when the
// corresponding flags, environment variables, or project config request it.
// CLI flags take precedence over environment variables, which take
// precedence over the project config.
func applyCloudAuth(cfg *shpload.ConnectionConfig, flags *CloudFlags, env *EnvVars, projectConfig *config.ProjectConfig) {
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	switch {
	case flags.GoogleInstance != "" || pc.GoogleInstance != "":
		cfg.AuthMethod = shpload.AuthMethodGoogleIAM
		cfg.GoogleInstance = flags.GoogleInstance
		if cfg.GoogleInstance == "" {
			cfg.GoogleInstance = pc.GoogleInstance
		}

	case flags.AWSIAM || pc.AuthMethod == "aws-iam":
		cfg.AuthMethod = shpload.AuthMethodAWSIAM
		cfg.AWSRegion = flags.AWSRegion
		if cfg.AWSRegion == "" {
			cfg.AWSRegion = env.AWS_REGION
		}
		if cfg.AWSRegion == "" {
			cfg.AWSRegion = pc.AWSRegion
		}

	case flags.Azure || flags.AzureTenantID != "" || flags.AzureClientID != "" || pc.AuthMethod == "azure":
		cfg.AuthMethod = shpload.AuthMethodAzureEntraID
		cfg.AzureTenantID = flags.AzureTenantID
		if cfg.AzureTenantID == "" {
			cfg.AzureTenantID = env.AZURE_TENANT_ID
		}
		if cfg.AzureTenantID == "" {
			cfg.AzureTenantID = pc.AzureTenantID
		}
		cfg.AzureClientID = flags.AzureClientID
		if cfg.AzureClientID == "" {
			cfg.AzureClientID = env.AZURE_CLIENT_ID
		}
		if cfg.AzureClientID == "" {
			cfg.AzureClientID = pc.AzureClientID
		}
		// Client secret only comes from the environment (no flag for security)
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	}
}

// resolveFromConnectionString parses a connection string, applying PG*
// environment variables as fallbacks for parameters it leaves unset
// (following PostgreSQL's libpq behavior).
func resolveFromConnectionString(connStr string, envVars *EnvVars) (*shpload.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	if cfg.SSLMode == "" && envVars.PGSSLMODE != "" {
		cfg.SSLMode = envVars.PGSSLMODE
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "prefer"
	}
	if cfg.Password == "" {
		cfg.Password = envVars.PGPASSWORD
	}

	return cfg, nil
}

// resolveFromGranularParams builds a ConnectionConfig from granular flags,
// environment variables, and the optional project config, with per-parameter
// precedence flag > env > shpload.yaml > default.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*shpload.ConnectionConfig, error) {
	cfg := &shpload.ConnectionConfig{
		AuthMethod: shpload.AuthMethodStandard,
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	cfg.Host = flags.Host
	if cfg.Host == "" {
		cfg.Host = envVars.PGHOST
	}
	if cfg.Host == "" {
		cfg.Host = pc.Host
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}

	if flags.Port != 0 {
		cfg.Port = flags.Port
	} else if envVars.PGPORT != "" {
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PGPORT value '%s': must be an integer", envVars.PGPORT)
		}
		cfg.Port = port
	} else if pc.Port != 0 {
		cfg.Port = pc.Port
	} else {
		cfg.Port = 5432
	}

	cfg.Username = flags.Username
	if cfg.Username == "" {
		cfg.Username = envVars.PGUSER
	}
	if cfg.Username == "" {
		cfg.Username = pc.Username
	}
	if cfg.Username == "" {
		if currentUser := os.Getenv("USER"); currentUser != "" {
			cfg.Username = currentUser
		} else if currentUser := os.Getenv("USERNAME"); currentUser != "" {
			cfg.Username = currentUser
		}
	}

	cfg.Password = envVars.PGPASSWORD

	cfg.Database = flags.Database
	if cfg.Database == "" {
		cfg.Database = envVars.PGDATABASE
	}
	if cfg.Database == "" {
		cfg.Database = pc.Database
	}
	if cfg.Database == "" {
		cfg.Database = shpload.DefaultDatabase
	}

	cfg.SSLMode = flags.SSLMode
	if cfg.SSLMode == "" {
		cfg.SSLMode = envVars.PGSSLMODE
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = pc.SSLMode
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "prefer"
	}

	return cfg, nil
}
