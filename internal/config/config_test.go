package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := Config{
		URL:       "https://huly.example.com",
		Workspace: "agency",
		Token:     "secret",
		Timeout:   30 * time.Second,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing url", func(c *Config) { c.URL = "" }, "HULY_URL"},
		{"missing workspace", func(c *Config) { c.Workspace = "" }, "HULY_WORKSPACE"},
		{"missing token", func(c *Config) { c.Token = "" }, "HULY_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HULY_URL", "https://huly.example.com")
	t.Setenv("HULY_WORKSPACE", "agency")
	t.Setenv("HULY_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://huly.example.com", cfg.URL)
	assert.Equal(t, "agency", cfg.Workspace)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}
