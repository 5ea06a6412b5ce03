// Package cli: stats.go implements the "bxa stats" command.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/bxa/internal/histogram"
)

// NewStatsCommand creates the "stats" cobra command.
func NewStatsCommand() *cobra.Command {
	var column int

	cmd := &cobra.Command{
		Use:   "stats <distribution-file>",
		Short: "Show mean and standard deviation of a distribution column",
		Long: `Show the mean and standard deviation of one column of a distribution table.

Negative columns count from the end: -1 is the energy flux, -2 the photon flux.

Examples:
  bxa stats dist.txt
  bxa stats dist.txt --column 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.OutOrStdout(), args[0], column)
		},
	}

	cmd.Flags().IntVar(&column, "column", histogram.EnergyFluxColumn, "Column index, negative counts from the end")

	return cmd
}

func runStats(w io.Writer, path string, column int) error {
	dist, err := readDistribution(path)
	if err != nil {
		return err
	}

	s, err := histogram.ColumnStats(dist, column)
	if err != nil {
		return fmt.Errorf("failed to summarise column %d: %w", column, err)
	}

	if IsJSONOutput() {
		return printJSON(w, struct {
			Column  int     `json:"column"`
			Samples int     `json:"samples"`
			Mean    float64 `json:"mean"`
			Std     float64 `json:"std"`
		}{column, len(dist), s.Mean, s.Std})
	}
	fmt.Fprintf(w, "column %d: mean %g, std %g (%d samples)\n", column, s.Mean, s.Std, len(dist))
	return nil
}
