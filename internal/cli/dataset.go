package cli

import (
	"fmt"
	"os"

	"github.com/phrazzld/vocaexam/internal/config"
	"github.com/phrazzld/vocaexam/internal/platform/csvsource"
	"github.com/phrazzld/vocaexam/internal/platform/datasource"
	"github.com/spf13/cobra"
)

func newImportCmd(opts *options) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "import [file.csv]",
		Short: "Replace the sql dataset with the rows of a CSV word list",
		Long: "Read a CSV word list (the file argument, or the configured dataset source " +
			"when omitted) and replace every row of the configured sql dataset with it.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			from := cfg.Dataset
			if len(args) == 1 {
				from.Source = config.SourceCSV
				from.CSVPath = args[0]
			}
			source, err := datasource.Open(ctx, from, log)
			if err != nil {
				return err
			}
			defer closeQuietly(source, log)

			ds, err := source.Source.LoadDataset(ctx)
			if err != nil {
				return err
			}

			target, err := datasource.OpenSQL(ctx, cfg.Dataset.SQL, log)
			if err != nil {
				return err
			}
			defer closeQuietly(target, log)

			if !skipMigrate {
				if err := target.Migrate(ctx, "up", log); err != nil {
					return err
				}
			}

			n, err := target.Writer.ReplaceDataset(ctx, ds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows from %s\n", n, source.Source.Name())
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not apply pending migrations before importing")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured dataset as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			opened, err := datasource.Open(cmd.Context(), cfg.Dataset, log)
			if err != nil {
				return err
			}
			defer closeQuietly(opened, log)

			ds, err := opened.Source.LoadDataset(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" {
				return csvsource.Write(cmd.OutOrStdout(), ds)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := csvsource.Write(f, ds); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
