package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, FormatText, cfg.Format)
	assert.True(t, cfg.Openings)
	assert.True(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Chart.Enabled)
	assert.Equal(t, 100, cfg.Chart.Width)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chessrisk.yaml")
	data := []byte("workers: 2\nformat: yaml\nchart:\n  enabled: true\n  width: 60\n  height: 12\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, Chart{Enabled: true, Width: 60, Height: 12}, cfg.Chart)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.True(t, cfg.Cache.Enabled)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CHESSRISK_WORKERS", "8")
	t.Setenv("CHESSRISK_CHART_HEIGHT", "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 30, cfg.Chart.Height)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Workers: 1, Format: FormatCSV, Log: Log{Level: "warn"}}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, false},
		{"unknown format", func(c *Config) { c.Format = "xml" }, false},
		{"tiny chart", func(c *Config) { c.Chart = Chart{Enabled: true, Width: 4, Height: 4} }, false},
		{"tiny chart disabled", func(c *Config) { c.Chart = Chart{Width: 4, Height: 4} }, true},
		{"level case", func(c *Config) { c.Log.Level = "DEBUG" }, true},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}
