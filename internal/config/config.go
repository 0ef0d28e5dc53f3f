package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig holds connection defaults from shpload.yaml.
// Every field is optional; flags and environment variables take precedence.
type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	AuthMethod     string `yaml:"auth_method,omitempty"` // "aws-iam", "azure", or empty for standard
	AWSRegion      string `yaml:"aws_region,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// LoadConfig holds load defaults from shpload.yaml.
type LoadConfig struct {
	Schema     string `yaml:"schema,omitempty"`
	SourceSRID int    `yaml:"source_srid,omitempty"`
	TargetSRID int    `yaml:"target_srid,omitempty"`
}

// ProjectConfig is the parsed shpload.yaml.
type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Load       LoadConfig       `yaml:"load"`
}

const ConfigFileName = "shpload.yaml"

// Load reads and parses dir/shpload.yaml.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
