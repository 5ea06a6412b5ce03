// Package cli: posterior.go implements the "bxa posterior" command.
//
// The posterior command prints the equally weighted posterior samples of a
// run, one row per sample and one column per parameter. Redirected to a
// file, the output can be read back by the histogram and stats commands.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/bxa/internal/multinest"
)

// NewPosteriorCommand creates the "posterior" cobra command.
func NewPosteriorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "posterior [basename]",
		Short: "Print the equally weighted posterior samples of a run",
		Long: `Print the equally weighted posterior samples of a finished run.

Text output starts with a "#" header naming the columns.

Examples:
  bxa posterior chains/src1_ > posterior.txt
  bxa posterior --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPosterior(cmd.OutOrStdout(), basenameArg(args))
		},
	}
}

func runPosterior(w io.Writer, basename string) error {
	names, err := loadParamNames(basename)
	if err != nil {
		return err
	}

	rows, err := multinest.NewAnalyzer(len(names), basename).EqualWeightedPosterior()
	if err != nil {
		return outputError(basename, err)
	}
	VerboseLog("Read %d posterior samples", len(rows))

	if IsJSONOutput() {
		if rows == nil {
			rows = [][]float64{}
		}
		return printJSON(w, struct {
			Parameters []string    `json:"parameters"`
			Samples    [][]float64 `json:"samples"`
		}{names, rows})
	}

	fmt.Fprintf(w, "# %s\n", strings.Join(names, " "))
	return multinest.WriteMatrix(w, rows)
}
