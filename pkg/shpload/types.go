package shpload

import (
	"errors"
	"fmt"
	"time"
)

// LoadRequest contains all parameters needed for one shapefile load.
// It is constructed once from command-line arguments, validated, and then
// treated as immutable for the rest of the invocation.
type LoadRequest struct {
	// Schema is the target schema name. Created if it does not exist.
	Schema string

	// Table is the target table name. Dropped and recreated by the load.
	Table string

	// SourceSRID is the EPSG code describing the shapefile's coordinates.
	SourceSRID int

	// TargetSRID is the EPSG code to reproject into. Zero means no
	// reprojection: the data is imported in SourceSRID as-is.
	TargetSRID int

	// ShapefilePath is the path handed to the conversion utility.
	// Not validated up front; a missing or malformed file surfaces as the
	// utility's own error.
	ShapefilePath string

	// Verbose enables detailed logging, including an echo of the resolved
	// configuration before any database interaction.
	Verbose bool
}

// Validate checks if the LoadRequest has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (r *LoadRequest) Validate() error {
	var errs []error

	if r.Schema == "" {
		errs = append(errs, fmt.Errorf("schema (-s) is required: %w", ErrInvalidRequest))
	}

	if r.Table == "" {
		errs = append(errs, fmt.Errorf("table (-t) is required: %w", ErrInvalidRequest))
	}

	if r.SourceSRID <= 0 {
		errs = append(errs, fmt.Errorf("source projection (-p) must be a positive EPSG code: %w", ErrInvalidRequest))
	}

	if r.TargetSRID < 0 {
		errs = append(errs, fmt.Errorf("target projection (-n) must be a positive EPSG code: %w", ErrInvalidRequest))
	}

	if r.ShapefilePath == "" {
		errs = append(errs, fmt.Errorf("shapefile path is required: %w", ErrInvalidRequest))
	}

	return errors.Join(errs...)
}

// Reprojects reports whether the import should use the two-projection form.
func (r *LoadRequest) Reprojects() bool {
	return r.TargetSRID > 0
}

// QualifiedTable returns the unquoted schema.table target name, the form the
// conversion utility expects on its command line.
func (r *LoadRequest) QualifiedTable() string {
	return r.Schema + "." + r.Table
}

// ConnectionConfig represents resolved connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName        string
	ConnectTimeout time.Duration

	// AWS IAM authentication parameters (AuthMethodAWSIAM)
	AWSRegion string

	// Azure Entra ID authentication parameters (AuthMethodAzureEntraID).
	// If all three are provided, Service Principal authentication is used.
	// Otherwise the DefaultAzureCredential chain applies.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance) for AuthMethodGoogleIAM.
	GoogleInstance string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard  AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                      // AWS IAM Database Authentication
	AuthMethodGoogleIAM                   // Google Cloud SQL IAM
	AuthMethodAzureEntraID                // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
