// Package cli: bestfit.go implements the "bxa bestfit" command.
//
// The bestfit command prints the parameter vector that a run would apply
// to the session: the MAP point of the selected mode, or the
// highest-likelihood sample when no mode summary is usable.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/bxa/internal/multinest"
	"github.com/shinji-kodama/bxa/internal/nested"
)

// NewBestFitCommand creates the "bestfit" cobra command.
func NewBestFitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bestfit [basename]",
		Short: "Show the best-fit parameters of a run",
		Long: `Show the best-fit parameter values of a finished run.

Examples:
  bxa bestfit chains/src1_
  bxa bestfit --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBestFit(cmd.OutOrStdout(), basenameArg(args))
		},
	}
}

// bestFitJSON is the JSON output structure of the bestfit command.
type bestFitJSON struct {
	Source     string             `json:"source"`
	Mode       int                `json:"mode,omitempty"`
	Parameters []bestFitParamJSON `json:"parameters"`
}

type bestFitParamJSON struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func runBestFit(w io.Writer, basename string) error {
	names, err := loadParamNames(basename)
	if err != nil {
		return err
	}

	best, err := nested.SelectBestFit(multinest.NewAnalyzer(len(names), basename), len(names), logger)
	if err != nil {
		return outputError(basename, err)
	}

	result := bestFitJSON{
		Source:     string(best.Source),
		Parameters: make([]bestFitParamJSON, 0, len(names)),
	}
	if best.Mode != nil {
		result.Mode = best.Mode.Index
	}
	for i, name := range names {
		if i < len(best.Values) {
			result.Parameters = append(result.Parameters, bestFitParamJSON{Name: name, Value: best.Values[i]})
		}
	}

	if IsJSONOutput() {
		return printJSON(w, result)
	}

	if best.Mode != nil {
		fmt.Fprintf(w, "Best fit from MAP point of mode %d\n", best.Mode.Index)
	} else {
		fmt.Fprintln(w, "Best fit from highest-likelihood sample")
	}
	fmt.Fprintf(w, "%-20s %s\n", "PARAMETER", "VALUE")
	for _, p := range result.Parameters {
		fmt.Fprintf(w, "%-20s %g\n", p.Name, p.Value)
	}
	return nil
}
