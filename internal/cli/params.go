// Package cli: params.go implements the "bxa params" command.
//
// The params command lists the free parameters of a finished run, in the
// column order of the sampler's output files, as recorded in
// <basename>params.json.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/bxa/internal/multinest"
)

// NewParamsCommand creates the "params" cobra command.
func NewParamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "params [basename]",
		Short: "List the parameters of a run",
		Long: `List the parameter names of a finished run in output column order.

Examples:
  bxa params chains/src1_
  bxa params --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParams(cmd.OutOrStdout(), basenameArg(args))
		},
	}
}

func runParams(w io.Writer, basename string) error {
	names, err := loadParamNames(basename)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(w, struct {
			Basename   string   `json:"basename"`
			Parameters []string `json:"parameters"`
		}{basename, names})
	}

	if len(names) == 0 {
		fmt.Fprintln(w, "No parameters recorded.")
		return nil
	}
	fmt.Fprintf(w, "%-6s %s\n", "INDEX", "PARAMETER")
	for i, name := range names {
		fmt.Fprintf(w, "%-6d %s\n", i, name)
	}
	return nil
}

// loadParamNames reads the parameter names of the run under basename.
// Every inspection command needs them to size the analyzer.
func loadParamNames(basename string) ([]string, error) {
	VerboseLog("Reading parameter names from %s%s", basename, multinest.ParamsSuffix)
	names, err := multinest.ReadParamNames(basename)
	if err != nil {
		return nil, outputError(basename, err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
