// Package cli: cli_test.go runs the commands against recorded sampler
// output and checks their text and JSON formatting.
package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/bxa/internal/model"
)

// twoModeRun is the basename of the two-mode fixture run.
const twoModeRun = "../multinest/testdata/twomode-"

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// copyFixture copies a testdata file of the multinest package into dir.
func copyFixture(t *testing.T, src, dir, name string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("../multinest/testdata", src))
	require.NoError(t, err)
	writeFile(t, dir, name, string(data))
}

func TestParamsCommand(t *testing.T) {
	out, err := executeCommand(t, "params", twoModeRun)
	require.NoError(t, err)
	assert.Contains(t, out, "0      src.x")
	assert.Contains(t, out, "1      src.y")

	out, err = executeCommand(t, "params", twoModeRun, "--json")
	require.NoError(t, err)
	var got struct {
		Parameters []string `json:"parameters"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"src.x", "src.y"}, got.Parameters)
}

func TestModesCommand(t *testing.T) {
	out, err := executeCommand(t, "modes", twoModeRun)
	require.NoError(t, err)
	assert.Contains(t, out, "Global log-evidence: -28.2350 +/- 0.1241")
	assert.Contains(t, out, "* Mode 1")
	assert.Contains(t, out, "  Mode 2")

	out, err = executeCommand(t, "modes", twoModeRun, "--json")
	require.NoError(t, err)
	var got struct {
		SelectedMode int          `json:"selectedMode"`
		Modes        []model.Mode `json:"modes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.SelectedMode)
	require.Len(t, got.Modes, 2)
	assert.Equal(t, []float64{8.02, 20.2}, got.Modes[1].MaximumAPosteriori)
}

func TestBestFitCommand_FromMode(t *testing.T) {
	out, err := executeCommand(t, "bestfit", twoModeRun, "--json")
	require.NoError(t, err)

	var got bestFitJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "mode", got.Source)
	assert.Equal(t, 1, got.Mode)
	assert.Equal(t, []bestFitParamJSON{{"src.x", 5.1}, {"src.y", 49}}, got.Parameters)
}

func TestBestFitCommand_FallsBackToBestSample(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, "nomodes-stats.dat", dir, "run-stats.dat")
	copyFixture(t, "nomodes-.txt", dir, "run-.txt")
	writeFile(t, dir, "run-params.json", `["a", "b"]`)

	out, err := executeCommand(t, "bestfit", filepath.Join(dir, "run-"))
	require.NoError(t, err)
	assert.Contains(t, out, "highest-likelihood sample")
	assert.Contains(t, out, "a                    5")
	assert.Contains(t, out, "b                    50")
}

func TestCommands_MissingOutput(t *testing.T) {
	basename := filepath.Join(t.TempDir(), "absent-")
	for _, name := range []string{"params", "modes", "bestfit", "posterior"} {
		t.Run(name, func(t *testing.T) {
			_, err := executeCommand(t, name, basename)
			require.Error(t, err)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitOutputNotFound, cliErr.Code)
		})
	}
}

func TestCommands_BasenameFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "bxa.yaml", "outputfiles_basename: "+twoModeRun+"\n")

	out, err := executeCommand(t, "params", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "src.y")
}

func TestPosteriorCommand(t *testing.T) {
	out, err := executeCommand(t, "posterior", twoModeRun)
	require.NoError(t, err)
	assert.Equal(t, "# src.x src.y\n5 50\n8 20\n5.1 49\n", out)
}

// distribution rows are [param, photon flux, energy flux].
const distribution = `0 1 10
0 2 20
0 3 30
0 4 40
`

func TestHistogramCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dist.txt", distribution)

	out, err := executeCommand(t, "histogram", path, "--bins", "2")
	require.NoError(t, err)
	assert.Equal(t, "1 2.5 2\n2.5 4 2\n", out)

	out, err = executeCommand(t, "histogram", path, "--column", "energy", "--json")
	require.NoError(t, err)
	var got struct {
		Column string `json:"column"`
		Bins   []struct {
			Left  float64 `json:"left"`
			Right float64 `json:"right"`
			Count int     `json:"count"`
		} `json:"bins"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "energy", got.Column)
	require.Len(t, got.Bins, 2, "sqrt(4) bins by default")
	assert.Equal(t, 10.0, got.Bins[0].Left)
	assert.Equal(t, 40.0, got.Bins[1].Right)
}

func TestHistogramCommand_BinsFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dist.txt", distribution)
	cfgPath := writeFile(t, dir, "bxa.yaml", "histogram_bins: 3\n")

	out, err := executeCommand(t, "histogram", path, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count([]byte(out), []byte("\n")))
}

func TestHistogramCommand_Errors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dist.txt", distribution)

	_, err := executeCommand(t, "histogram", path, "--column", "counts")
	assert.ErrorContains(t, err, "invalid column")

	_, err = executeCommand(t, "histogram", path, "--bins=-2")
	assert.ErrorContains(t, err, "invalid bin count")

	_, err = executeCommand(t, "histogram", filepath.Join(t.TempDir(), "missing.txt"))
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitOutputNotFound, cliErr.Code)
}

func TestStatsCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dist.txt", distribution)

	out, err := executeCommand(t, "stats", path, "--json")
	require.NoError(t, err)
	var got struct {
		Column  int     `json:"column"`
		Samples int     `json:"samples"`
		Mean    float64 `json:"mean"`
		Std     float64 `json:"std"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, -1, got.Column)
	assert.Equal(t, 4, got.Samples)
	assert.InDelta(t, 25, got.Mean, 1e-12)
	assert.InDelta(t, 11.180339887, got.Std, 1e-9)

	out, err = executeCommand(t, "stats", path, "--column=1")
	require.NoError(t, err)
	assert.Contains(t, out, "column 1: mean 2.5, std 1.118")
	assert.Contains(t, out, "(4 samples)")
}

func TestConfigCommand(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "bxa.yaml", "n_live_points: 50\nplot_best: true\n")

	out, err := executeCommand(t, "config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "n_live_points: 50")
	assert.Contains(t, out, "plot_best: true")
	assert.Contains(t, out, "outputfiles_basename: chains/")

	_, err = executeCommand(t, "config", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitInvalidConfig, cliErr.Code)
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name       string
		json       bool
		underlying error
		want       string
	}{
		{"text", false, nil, "Error: boom\n"},
		{"text with detail", false, errors.New("disk"), "Error: boom: disk\n"},
		{"json", true, errors.New("disk"), "{\n  \"error\": {\n    \"detail\": \"disk\",\n    \"message\": \"boom\"\n  }\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonOutput = tt.json
			t.Cleanup(func() { jsonOutput = false })

			var buf bytes.Buffer
			printError(&buf, "boom", tt.underlying)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatAt(t *testing.T) {
	assert.Equal(t, "4.9978", formatAt([]float64{4.99776283}, 0))
	assert.Equal(t, "-", formatAt([]float64{1}, 1))
	assert.Equal(t, "-", formatAt(nil, 0))
}
