// Package config loads server configuration from the environment and an
// optional config file.
//
// Precedence (viper's usual order): explicit flags bound by the CLI,
// then HULY_* environment variables, then $HOME/.huly-mcp-server.yaml.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variables (HULY_URL, ...).
const EnvPrefix = "HULY"

// Config holds everything needed to reach a Huly workspace.
type Config struct {
	// URL is the platform endpoint, e.g. "https://huly.example.com".
	URL string
	// Workspace is the workspace identifier.
	Workspace string
	// Token is the bearer token for the workspace.
	Token string
	// Timeout bounds a single API request.
	Timeout time.Duration
}

// Load reads configuration from viper's sources. Flag bindings must
// already be in place when this runs.
func Load() (*Config, error) {
	v := viper.GetViper()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("timeout", 30*time.Second)

	if cfgFile := v.GetString("config"); cfgFile != "" {
		// An explicitly named config file must exist.
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		// The default config file is optional; env and flags may carry
		// everything.
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".huly-mcp-server")
		_ = v.ReadInConfig()
	}

	cfg := &Config{
		URL:       v.GetString("url"),
		Workspace: v.GetString("workspace"),
		Token:     v.GetString("token"),
		Timeout:   v.GetDuration("timeout"),
	}
	return cfg, cfg.Validate()
}

// Validate checks that the client can be built from this configuration.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("missing Huly URL (set HULY_URL or url in the config file)")
	}
	if c.Workspace == "" {
		return fmt.Errorf("missing workspace (set HULY_WORKSPACE or workspace in the config file)")
	}
	if c.Token == "" {
		return fmt.Errorf("missing token (set HULY_TOKEN or token in the config file)")
	}
	return nil
}
