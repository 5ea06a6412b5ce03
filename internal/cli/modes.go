// Package cli: modes.go implements the "bxa modes" command.
//
// The modes command summarises <basename>stats.dat: the global evidence
// and, for every posterior mode, its local evidence and per-parameter
// mean, sigma and MAP value. The mode a best fit would be taken from is
// marked.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/bxa/internal/model"
	"github.com/shinji-kodama/bxa/internal/multinest"
	"github.com/shinji-kodama/bxa/internal/nested"
)

// NewModesCommand creates the "modes" cobra command.
func NewModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes [basename]",
		Short: "Show the evidence and posterior modes of a run",
		Long: `Show the global log-evidence and the posterior modes found by the sampler.

The mode marked with "*" has the lowest local log-evidence; its MAP point
is the one applied as best fit.

Examples:
  bxa modes chains/src1_
  bxa modes --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModes(cmd.OutOrStdout(), basenameArg(args))
		},
	}
}

func runModes(w io.Writer, basename string) error {
	names, err := loadParamNames(basename)
	if err != nil {
		return err
	}

	stats, err := multinest.NewAnalyzer(len(names), basename).ModeStats()
	if err != nil {
		return outputError(basename, err)
	}
	VerboseLog("Found %d modes", len(stats.Modes))

	selected := -1
	if mode, ok := nested.SelectMode(stats.Modes); ok {
		selected = mode.Index
	}

	if IsJSONOutput() {
		return printJSON(w, struct {
			Parameters   []string `json:"parameters"`
			SelectedMode int      `json:"selectedMode"`
			*model.ModeStats
		}{names, selected, stats})
	}
	printModesText(w, names, stats, selected)
	return nil
}

// printModesText prints the evidence header and one table per mode:
//
//	Global log-evidence: -28.2350 +/- 0.1241
//
//	* Mode 1  local log-evidence -29.1000 +/- 0.1600
//	  PARAMETER     MEAN          SIGMA         MAP
//	  src.x         4.9978        0.28947       5.1
func printModesText(w io.Writer, names []string, stats *model.ModeStats, selected int) {
	fmt.Fprintf(w, "Global log-evidence: %s\n", stats.GlobalEvidence)
	if stats.ImportanceEvidence != nil {
		fmt.Fprintf(w, "Importance log-evidence: %s\n", *stats.ImportanceEvidence)
	}

	for _, m := range stats.Modes {
		marker := " "
		if m.Index == selected {
			marker = "*"
		}
		fmt.Fprintf(w, "\n%s Mode %d  local log-evidence %s\n", marker, m.Index, m.LocalEvidence)
		fmt.Fprintf(w, "  %-20s %-14s %-14s %s\n", "PARAMETER", "MEAN", "SIGMA", "MAP")
		for i, name := range names {
			fmt.Fprintf(w, "  %-20s %-14s %-14s %s\n", name,
				formatAt(m.Mean, i), formatAt(m.Sigma, i), formatAt(m.MaximumAPosteriori, i))
		}
	}
}

// formatAt formats values[i] compactly, or "-" when the sampler did not
// report it.
func formatAt(values []float64, i int) string {
	if i >= len(values) {
		return "-"
	}
	return fmt.Sprintf("%.5g", values[i])
}
