// Package cli holds the docsynth command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/config"
	"github.com/garyjia/docsynth/internal/container"
	"github.com/garyjia/docsynth/pkg/utils"
)

// DefaultConfigPath is read when --config is not given and the file exists
const DefaultConfigPath = "configs/config.yaml"

// Build information, set with -ldflags at build time
var (
	Version   = "dev"
	BuildDate = "unknown"
)

// app carries the persistent flags shared by every command
type app struct {
	cfgFile  string
	logLevel string
}

// NewRootCommand builds the docsynth command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "docsynth",
		Short: "Synthetic document image generator",
		Long: `docsynth renders tax forms, pay statements and miscellaneous documents
filled with plausible fake data, degrades them to look scanned and writes
labeled image datasets for document classification.

Example Usage:
  docsynth generate --class all --count 50 --output ./dataset
  docsynth generate --interactive
  docsynth serve --config configs/config.yaml
  docsynth preview pay-statement --seed 7 --out stub.html`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "",
		fmt.Sprintf("path to the configuration file (default %s when present)", DefaultConfigPath))
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newGenerateCommand(a),
		newServeCommand(a),
		newTemplatesCommand(a),
		newPreviewCommand(a),
		newCorpusCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) loadConfig() (*config.Config, error) {
	path := a.cfgFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err == nil {
			path = DefaultConfigPath
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if a.logLevel != "" {
		cfg.Logger.Level = a.logLevel
	}
	return cfg, nil
}

// cliLogger logs to stderr so stdout carries only command output
func cliLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := utils.NewCLILogger(cfg.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func startContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*container.Container, error) {
	c, err := container.NewContainer(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// startEphemeral starts a container whose ledger lives in memory, for
// commands that only read templates
func startEphemeral(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*container.Container, error) {
	cfg.Database.Enabled = false
	return startContainer(ctx, cfg, logger)
}
