package nested

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shinji-kodama/bxa/internal/model"
	"github.com/shinji-kodama/bxa/internal/multinest"
)

// BestFitOptions selects the run whose best fit is applied.
type BestFitOptions struct {
	ID             string
	Parameters     []model.Parameter
	OutputBasename string
}

// BestFitSource tells which summary a best-fit vector came from.
type BestFitSource string

const (
	// SourceMode means the MAP point of a posterior mode was used.
	SourceMode BestFitSource = "mode"

	// SourceBestSample means the highest-likelihood sample was used
	// because no usable mode summary was available.
	SourceBestSample BestFitSource = "best-sample"
)

// BestFit is a best-fit vector together with where it came from.
type BestFit struct {
	Values []float64
	Source BestFitSource

	// Mode is the selected mode when Source is SourceMode.
	Mode *model.Mode
}

// SetBestFit assigns the best-fit values of a finished run to the session's
// parameters and returns them.
func (d *Driver) SetBestFit(opts BestFitOptions) (*BestFit, error) {
	params, err := d.parameters(opts.ID, opts.Parameters)
	if err != nil {
		return nil, err
	}

	a := d.OpenAnalyzer(len(params), basenameOrDefault(opts.OutputBasename))
	best, err := SelectBestFit(a, len(params), d.logger)
	if err != nil {
		return nil, err
	}

	model.ApplyValues(params, best.Values)
	d.logger.Debug("applied best fit",
		zap.String("source", string(best.Source)),
		zap.Strings("parameters", model.FullNames(params)),
		zap.Float64s("values", best.Values))
	return best, nil
}

// SelectBestFit picks the best-fit vector of a run.
//
// The MAP point of the mode with the lowest local log-evidence is used.
// If the mode summary cannot be read, has no modes, or its MAP vector is
// shorter than nParams, a warning is logged and the highest-likelihood
// sample is used instead.
func SelectBestFit(a multinest.Analyzer, nParams int, logger *zap.Logger) (*BestFit, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	stats, err := a.ModeStats()
	if err == nil {
		mode, ok := SelectMode(stats.Modes)
		switch {
		case !ok:
			err = multinest.ErrNoModes
		case len(mode.MaximumAPosteriori) < nParams:
			err = fmt.Errorf("mode %d has %d MAP values for %d parameters",
				mode.Index, len(mode.MaximumAPosteriori), nParams)
		default:
			return &BestFit{
				Values: mode.MaximumAPosteriori[:nParams],
				Source: SourceMode,
				Mode:   &mode,
			}, nil
		}
	}

	logger.Warn("modes were not described by the sampler, using best sample instead", zap.Error(err))
	point, bestErr := a.BestFit()
	if bestErr != nil {
		return nil, fmt.Errorf("no best fit available: %w", bestErr)
	}
	return &BestFit{Values: point.Parameters, Source: SourceBestSample}, nil
}

// SelectMode returns the mode with the numerically lowest local
// log-evidence. Ties keep the earlier mode. ok is false for no modes.
func SelectMode(modes []model.Mode) (mode model.Mode, ok bool) {
	if len(modes) == 0 {
		return model.Mode{}, false
	}
	best := 0
	for i := 1; i < len(modes); i++ {
		if modes[i].LocalEvidence.Value < modes[best].LocalEvidence.Value {
			best = i
		}
	}
	return modes[best], true
}
