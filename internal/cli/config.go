// Package cli: config.go implements the "bxa config" command.
//
// The config command prints the effective run configuration: the defaults
// overlaid with the file given by --config. Its YAML output is a valid
// configuration file.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the "config" cobra command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective run configuration",
		Long: `Print the effective run configuration as YAML (or JSON with --json).

Examples:
  bxa config > bxa.yaml
  bxa config --config bxa.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd.OutOrStdout())
		},
	}
}

func runConfig(w io.Writer) error {
	if IsJSONOutput() {
		return printJSON(w, struct {
			ID                 string         `json:"id,omitempty"`
			OtherIDs           []string       `json:"otherids,omitempty"`
			OutputBasename     string         `json:"outputfiles_basename"`
			LivePoints         int            `json:"n_live_points"`
			SamplingEfficiency float64        `json:"sampling_efficiency"`
			PlotBest           bool           `json:"plot_best"`
			EnergyLo           *float64       `json:"energy_lo,omitempty"`
			EnergyHi           *float64       `json:"energy_hi,omitempty"`
			HistogramBins      int            `json:"histogram_bins,omitempty"`
			Sampler            map[string]any `json:"sampler,omitempty"`
		}{
			ID:                 cfg.ID,
			OtherIDs:           cfg.OtherIDs,
			OutputBasename:     cfg.OutputBasename,
			LivePoints:         cfg.LivePoints,
			SamplingEfficiency: cfg.SamplingEfficiency,
			PlotBest:           cfg.PlotBest,
			EnergyLo:           cfg.FluxOptions().Lo,
			EnergyHi:           cfg.FluxOptions().Hi,
			HistogramBins:      cfg.HistogramBins,
			Sampler:            cfg.Sampler,
		})
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
