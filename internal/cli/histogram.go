// Package cli: histogram.go implements the "bxa histogram" command.
//
// The histogram command bins one flux column of a distribution table, a
// whitespace-separated matrix with one row per posterior sample whose last
// two columns are the photon and energy flux.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/bxa/internal/histogram"
	"github.com/shinji-kodama/bxa/internal/model"
	"github.com/shinji-kodama/bxa/internal/multinest"
)

// histogramFlags holds the flag values for the histogram command.
type histogramFlags struct {
	// column is "photon" or "energy".
	column string

	// bins is the bin count; 0 falls back to the configuration, then to
	// the square-root rule.
	bins int
}

// NewHistogramCommand creates the "histogram" cobra command.
func NewHistogramCommand() *cobra.Command {
	flags := &histogramFlags{}

	cmd := &cobra.Command{
		Use:   "histogram <distribution-file>",
		Short: "Histogram a flux column of a distribution",
		Long: `Histogram the photon or energy flux column of a flux distribution table.

Each output row is "left right count". The last bin includes its right edge.

Examples:
  bxa histogram dist.txt
  bxa histogram dist.txt --column energy --bins 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistogram(cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.column, "column", "photon", "Flux column: photon or energy")
	cmd.Flags().IntVar(&flags.bins, "bins", 0, "Number of bins (default: configuration, then square root of the sample count)")

	return cmd
}

func runHistogram(w io.Writer, path string, flags *histogramFlags) error {
	var binFlux func([][]float64, int) ([]histogram.Bin, error)
	switch flags.column {
	case "photon":
		binFlux = histogram.PhotonFlux
	case "energy":
		binFlux = histogram.EnergyFlux
	default:
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid column %q: valid values are photon, energy", flags.column))
	}
	if flags.bins < 0 {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid bin count %d", flags.bins))
	}

	nbins := flags.bins
	if nbins == 0 {
		nbins = cfg.HistogramBins
	}

	dist, err := readDistribution(path)
	if err != nil {
		return err
	}
	VerboseLog("Read %d samples from %s", len(dist), path)

	bins, err := binFlux(dist, nbins)
	if err != nil {
		return fmt.Errorf("failed to histogram %s flux: %w", flags.column, err)
	}

	if IsJSONOutput() {
		return printJSON(w, struct {
			Column string          `json:"column"`
			Bins   []histogram.Bin `json:"bins"`
		}{flags.column, bins})
	}
	return multinest.WriteMatrix(w, histogram.Table(bins))
}

// readDistribution loads a whitespace-separated distribution table.
func readDistribution(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, outputError(path, err)
	}
	defer func() { _ = f.Close() }()

	dist, err := multinest.ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return dist, nil
}
