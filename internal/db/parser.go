package db

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/shpload/pkg/shpload"
)

// ParseConnectionString parses a PostgreSQL URI connection string and returns
// a ConnectionConfig.
//
// Format: postgresql://[user[:password]@][host][:port][/dbname][?param=value&...]
func ParseConnectionString(connStr string) (*shpload.ConnectionConfig, error) {
	if connStr == "" {
		return nil, fmt.Errorf("connection string is empty")
	}

	if !strings.HasPrefix(connStr, "postgresql://") && !strings.HasPrefix(connStr, "postgres://") {
		return nil, fmt.Errorf("unrecognized connection string format (expected postgresql:// URI)")
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL URI: %w", err)
	}

	config := &shpload.ConnectionConfig{
		Host:       "localhost",
		Port:       5432,
		Database:   shpload.DefaultDatabase,
		AuthMethod: shpload.AuthMethodStandard,
	}

	if u.Hostname() != "" {
		config.Host = u.Hostname()
	}
	if u.Port() != "" {
		port, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}
		config.Port = port
	}

	if u.User != nil {
		config.Username = u.User.Username()
		if pass, ok := u.User.Password(); ok {
			config.Password = pass
		}
	}

	if len(u.Path) > 1 {
		config.Database = strings.TrimPrefix(u.Path, "/")
	}

	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		switch strings.ToLower(key) {
		case "sslmode":
			config.SSLMode = value
		case "application_name":
			config.AppName = value
		case "connect_timeout":
			seconds, err := strconv.Atoi(value)
			if err != nil || seconds < 0 {
				return nil, fmt.Errorf("invalid connect_timeout '%s': must be a non-negative integer", value)
			}
			config.ConnectTimeout = time.Duration(seconds) * time.Second
		default:
			return nil, fmt.Errorf("unsupported connection parameter '%s'", key)
		}
	}

	return config, nil
}

// BuildConnectionString builds a PostgreSQL URI from a ConnectionConfig.
// The inverse of ParseConnectionString; used to hand a resolved config to pgx.
func BuildConnectionString(config *shpload.ConnectionConfig) string {
	u := &url.URL{
		Scheme: "postgresql",
		Host:   fmt.Sprintf("%s:%d", config.Host, config.Port),
		Path:   "/" + config.Database,
	}

	if config.Username != "" {
		if config.Password != "" {
			u.User = url.UserPassword(config.Username, config.Password)
		} else {
			u.User = url.User(config.Username)
		}
	}

	query := url.Values{}
	if config.SSLMode != "" {
		query.Set("sslmode", config.SSLMode)
	}
	if config.AppName != "" {
		query.Set("application_name", config.AppName)
	}
	if config.ConnectTimeout > 0 {
		query.Set("connect_timeout", strconv.Itoa(int(config.ConnectTimeout.Seconds())))
	}

	u.RawQuery = query.Encode()
	return u.String()
}
