package multinest

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/bxa/internal/prior"
)

// Default sampler settings.
const (
	DefaultSamplingEfficiency = 0.8
	DefaultLivePoints         = 1000
	DefaultOutputBasename     = "chains/"
)

// LogLikelihood evaluates the log-likelihood of a point that has already
// been passed through the prior transform.
type LogLikelihood func(cube []float64) float64

// Options are the settings handed to the sampler for one run.
type Options struct {
	// Dimensions is the number of free parameters.
	Dimensions int

	// SamplingEfficiency is the target acceptance rate (0.8 for parameter
	// estimation, 0.3 for evidence evaluation).
	SamplingEfficiency float64

	// LivePoints is the number of live points.
	LivePoints int

	// OutputBasename is the path prefix of all output files.
	OutputBasename string

	// Extra carries sampler-specific settings through unchanged
	// (e.g. "resume", "verbose", "multimodal").
	Extra map[string]any
}

// DefaultOptions returns Options with the sampler defaults and the given
// dimensionality.
func DefaultOptions(dims int) Options {
	return Options{
		Dimensions:         dims,
		SamplingEfficiency: DefaultSamplingEfficiency,
		LivePoints:         DefaultLivePoints,
		OutputBasename:     DefaultOutputBasename,
	}
}

// Validate checks the option values before a run is started.
func (o Options) Validate() error {
	if o.Dimensions < 1 {
		return fmt.Errorf("multinest: need at least one dimension, got %d", o.Dimensions)
	}
	if o.SamplingEfficiency <= 0 || o.SamplingEfficiency > 1 {
		return fmt.Errorf("multinest: sampling efficiency %g out of range (0, 1]", o.SamplingEfficiency)
	}
	if o.LivePoints < 1 {
		return fmt.Errorf("multinest: live points must be positive, got %d", o.LivePoints)
	}
	if o.OutputBasename == "" {
		return fmt.Errorf("multinest: output basename must not be empty")
	}
	return nil
}

// Sampler runs nested sampling over the unit hypercube. Run blocks until
// the sampler has finished and written its output files under
// opts.OutputBasename.
type Sampler interface {
	Run(ctx context.Context, loglike LogLikelihood, transform prior.Transform, opts Options) error
}

// SamplerFunc adapts a plain function to the Sampler interface.
type SamplerFunc func(ctx context.Context, loglike LogLikelihood, transform prior.Transform, opts Options) error

// Run calls f.
func (f SamplerFunc) Run(ctx context.Context, loglike LogLikelihood, transform prior.Transform, opts Options) error {
	return f(ctx, loglike, transform, opts)
}
