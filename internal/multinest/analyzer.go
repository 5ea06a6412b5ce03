package multinest

import (
	"errors"
	"fmt"
	"os"

	"github.com/shinji-kodama/bxa/internal/model"
)

// Output file suffixes appended to the basename.
const (
	StatsSuffix        = "stats.dat"
	SamplesSuffix      = ".txt"
	EqualWeightsSuffix = "post_equal_weights.dat"
	ParamsSuffix       = "params.json"
)

// ErrNoModes is returned by ModeStats when the stats file lists no modes.
var ErrNoModes = errors.New("multinest: no modes in stats file")

// Analyzer gives access to the results of a finished run.
type Analyzer interface {
	// ModeStats returns the evidence and per-mode summaries.
	ModeStats() (*model.ModeStats, error)

	// BestFit returns the highest-likelihood sample of the run.
	BestFit() (*model.BestPoint, error)

	// EqualWeightedPosterior returns the equally weighted posterior
	// samples, one row of parameter values per sample.
	EqualWeightedPosterior() ([][]float64, error)
}

// FileAnalyzer reads a run's results from the sampler's output files.
type FileAnalyzer struct {
	// NParams is the number of parameters per sample.
	NParams int

	// Basename is the output path prefix the sampler wrote to.
	Basename string
}

// NewAnalyzer returns a FileAnalyzer for a run over nParams parameters.
func NewAnalyzer(nParams int, basename string) *FileAnalyzer {
	return &FileAnalyzer{NParams: nParams, Basename: basename}
}

// Path returns the path of the output file with the given suffix.
func (a *FileAnalyzer) Path(suffix string) string {
	return a.Basename + suffix
}

// ModeStats parses <basename>stats.dat.
func (a *FileAnalyzer) ModeStats() (*model.ModeStats, error) {
	f, err := os.Open(a.Path(StatsSuffix))
	if err != nil {
		return nil, fmt.Errorf("failed to open mode statistics: %w", err)
	}
	defer func() { _ = f.Close() }()

	stats, err := ParseStats(f, a.NParams)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", a.Path(StatsSuffix), err)
	}
	return stats, nil
}

// BestFit scans <basename>.txt for the sample with the lowest -2 lnL.
func (a *FileAnalyzer) BestFit() (*model.BestPoint, error) {
	rows, err := a.readTable(SamplesSuffix)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no samples in %s", a.Path(SamplesSuffix))
	}
	if len(rows[0]) < 2+a.NParams {
		return nil, fmt.Errorf("%s has %d columns, expected at least %d",
			a.Path(SamplesSuffix), len(rows[0]), 2+a.NParams)
	}

	best := rows[0]
	for _, row := range rows[1:] {
		if row[1] < best[1] {
			best = row
		}
	}

	params := make([]float64, a.NParams)
	copy(params, best[2:2+a.NParams])
	return &model.BestPoint{
		LogLikelihood: -0.5 * best[1],
		Parameters:    params,
	}, nil
}

// EqualWeightedPosterior reads <basename>post_equal_weights.dat. The file
// carries the log-likelihood as its last column; rows are cut to NParams
// values so they line up with the parameter list.
func (a *FileAnalyzer) EqualWeightedPosterior() ([][]float64, error) {
	rows, err := a.readTable(EqualWeightsSuffix)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) < a.NParams {
			return nil, fmt.Errorf("%s row %d has %d columns, expected at least %d",
				a.Path(EqualWeightsSuffix), i+1, len(row), a.NParams)
		}
		rows[i] = row[:a.NParams:a.NParams]
	}
	return rows, nil
}

func (a *FileAnalyzer) readTable(suffix string) ([][]float64, error) {
	path := a.Path(suffix)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sampler output: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}
