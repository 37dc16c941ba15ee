// Package cli implements the examgen commands, which build exam sheets and
// manage the vocabulary dataset without running the HTTP server.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/vocaexam/internal/config"
	"github.com/phrazzld/vocaexam/internal/platform/datasource"
	"github.com/phrazzld/vocaexam/internal/platform/logger"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	csvPath  string
	logLevel string
}

// NewRootCmd builds the examgen command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "examgen",
		Short:        "Build vocabulary review exam sheets",
		Long:         "Generate printable review exams from a vocabulary word list and manage the stored dataset.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.csvPath, "csv", "",
		"Read the dataset from this CSV file instead of the configured source")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"Override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newGenerateCmd(opts),
		newDaysCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
	)
	return root
}

// setup loads configuration, applies flag overrides and returns a logger
// writing to the command's stderr.
func (o *options) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.csvPath != "" {
		cfg.Dataset.Source = config.SourceCSV
		cfg.Dataset.CSVPath = o.csvPath
	}
	if o.logLevel != "" {
		cfg.Server.LogLevel = o.logLevel
	}

	log, err := logger.SetupWithWriter(cfg.Server, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return cfg, log, nil
}

// closeQuietly closes the dataset source, logging a failure.
func closeQuietly(opened *datasource.Opened, log *slog.Logger) {
	if err := opened.Close(); err != nil {
		log.Error("Error closing dataset source", "error", err)
	}
}
