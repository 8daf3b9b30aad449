package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chessrisk/pkg/config"
)

var (
	cfgPath string
	v       = config.New()
	cfg     *config.Config
	logger  = zap.NewNop()

	rootCmd = &cobra.Command{
		Use:   "chessrisk",
		Short: "Support and threat relations between pieces and the risk of both sides",
		Long: `chessrisk builds the support and threat graphs of chess positions and
quantifies how much material each side has hanging, move by move through a game.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "chessrisk:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "config file (yaml, json or toml)")
	flags.String("format", config.FormatText, "output format: text, json, yaml or csv")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Bool("log-development", false, "human readable development logs")
	bindFlags(flags, map[string]string{
		"format":          "format",
		"log.level":       "log-level",
		"log.development": "log-development",
	})
}

// setup loads the configuration and builds the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Setup(v, cfgPath)
	if err != nil {
		return err
	}
	l, err := NewLogger(c.Log)
	if err != nil {
		return err
	}
	cfg = c
	logger = l
	logger.Debug("configuration loaded",
		zap.String("file", cfgPath),
		zap.Int("workers", cfg.Workers),
		zap.String("format", cfg.Format),
	)
	return nil
}

// NewLogger builds a production or development zap logger at the configured level.
// Logs go to stderr, stdout is kept for reports.
func NewLogger(c config.Log) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// bindFlags lets a flag override the config key it maps to, key -> flag name
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}
