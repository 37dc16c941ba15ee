package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/vocaexam/internal/domain/extract"
	"github.com/phrazzld/vocaexam/internal/platform/datasource"
	"github.com/spf13/cobra"
)

func newDaysCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List the study days found in the dataset",
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

			fmt.Fprintln(cmd.OutOrStdout(), joinInts(extract.AvailableDays(ds)))
			return nil
		},
	}
}

// joinInts formats values as "1 2 3".
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
