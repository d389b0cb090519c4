// Package config builds the process configuration once at startup from
// an optional YAML file plus SUBMISSIONS_* environment overrides. The
// one exception to read-once is the remote routing toggle, which is an
// intentional dynamic switch re-read from the environment on each call.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "SUBMISSIONS"

// envUseRemote toggles routing of new creates to the remote table-store.
const envUseRemote = "SUBMISSIONS_USE_REMOTE"

// Config is the explicit configuration value passed into each
// component's constructor. No component reads environment state at call
// time except through RemoteCreates.
type Config struct {
	Listen            string
	DatabaseType      string
	DatabaseDSN       string
	RemoteURL         string
	RemoteServiceRole string
	CORSOrigins       []string
	LogRetain         int
}

// Load reads configuration. path may be empty, in which case only
// defaults and environment overrides apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen", ":8080")
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "./data/submissions.db")
	v.SetDefault("cors.origins", []string{"http://localhost:8080", "http://127.0.0.1:8080"})
	v.SetDefault("logs.retain", 1000)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return &Config{
		Listen:            v.GetString("listen"),
		DatabaseType:      v.GetString("database.type"),
		DatabaseDSN:       v.GetString("database.dsn"),
		RemoteURL:         v.GetString("remote.url"),
		RemoteServiceRole: v.GetString("remote.service_role"),
		CORSOrigins:       v.GetStringSlice("cors.origins"),
		LogRetain:         v.GetInt("logs.retain"),
	}, nil
}

// RemoteCreates reports whether new creates should be routed to the
// remote table-store. The toggle is re-read from the environment on
// every call so a deployment can flip it without restarting.
func (c *Config) RemoteCreates() bool {
	switch strings.ToLower(os.Getenv(envUseRemote)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
