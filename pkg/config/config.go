package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded value is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Output formats understood by the report package
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// EnvPrefix prefixes every environment override, CHESSRISK_CHART_WIDTH sets chart.width
const EnvPrefix = "CHESSRISK"

type Chart struct {
	Enabled bool `mapstructure:"enabled"`
	Width   int  `mapstructure:"width"`
	Height  int  `mapstructure:"height"`
}

type Cache struct {
	Enabled bool `mapstructure:"enabled"`
}

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Config struct {
	Workers  int    `mapstructure:"workers"`
	Format   string `mapstructure:"format"`
	Openings bool   `mapstructure:"openings"`
	Chart    Chart  `mapstructure:"chart"`
	Cache    Cache  `mapstructure:"cache"`
	Log      Log    `mapstructure:"log"`
}

// New returns a viper instance carrying the defaults and the environment binding
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("workers", 4)
	v.SetDefault("format", FormatText)
	v.SetDefault("openings", true)
	v.SetDefault("chart.enabled", false)
	v.SetDefault("chart.width", 100)
	v.SetDefault("chart.height", 20)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Setup reads cfgPath when it is not empty and unmarshals the merged settings
func Setup(v *viper.Viper, cfgPath string) (*Config, error) {
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load is Setup on a fresh instance
func Load(cfgPath string) (*Config, error) {
	return Setup(New(), cfgPath)
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	if c.Chart.Enabled && (c.Chart.Width < 10 || c.Chart.Height < 5) {
		return fmt.Errorf("%w: chart must be at least 10x5, got %dx%d", ErrInvalidConfig, c.Chart.Width, c.Chart.Height)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}
