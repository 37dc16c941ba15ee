package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/phrazzld/vocaexam/internal/config"
	"github.com/phrazzld/vocaexam/internal/platform/datasource"
	"github.com/phrazzld/vocaexam/internal/platform/logger"
	"github.com/phrazzld/vocaexam/internal/platform/sqlstore"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "vocaexam-server",
		Short:        "Serve vocabulary review exam sheets over HTTP",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(ctx, cfg, log, applicationOptions{migrate: !skipMigrate})
			if err != nil {
				log.Error("failed to initialize application", slog.String("error", err.Error()))
				return err
			}
			return app.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false,
		"Do not apply pending migrations for the sql source on startup")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|reset|status|version]",
		Short:     "Manage the schema of the sql dataset source",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: sqlstore.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			return runMigrations(cmd.Context(), cfg, args[0], log)
		},
	}
}

// loadConfigAndLogger loads configuration and sets up structured logging.
func loadConfigAndLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"dataset_source", cfg.Dataset.Source)

	return cfg, log, nil
}

// runMigrations executes one goose command against the configured database.
func runMigrations(ctx context.Context, cfg *config.Config, command string, log *slog.Logger) error {
	opened, err := datasource.OpenSQL(ctx, cfg.Dataset.SQL, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := opened.Close(); cerr != nil {
			log.Error("Error closing database connection", "error", cerr)
		}
	}()

	log.Info("Executing migrations", "command", command, "driver", opened.Dialect.Name)
	return opened.Migrate(ctx, command, log)
}
