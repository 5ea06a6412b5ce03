package nested

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shinji-kodama/bxa/internal/model"
	"github.com/shinji-kodama/bxa/internal/multinest"
	"github.com/shinji-kodama/bxa/internal/prior"
)

// RunOptions configures a sampling run.
type RunOptions struct {
	// ID selects the dataset; OtherIDs adds further datasets to a
	// simultaneous fit.
	ID       string
	OtherIDs []string

	// Priors holds one prior per parameter. When empty, uniform priors
	// over each parameter's bounds are used.
	Priors []prior.Func

	// Parameters are the parameters to sample. When nil, the thawed
	// parameters of the model for ID are used.
	Parameters []model.Parameter

	SamplingEfficiency float64
	LivePoints         int
	OutputBasename     string

	// Extra is passed to the sampler unchanged.
	Extra map[string]any

	// ApplyBestFit sets the session to the best fit once sampling has
	// finished.
	ApplyBestFit bool
}

// DefaultRunOptions returns RunOptions with the sampler defaults.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		SamplingEfficiency: multinest.DefaultSamplingEfficiency,
		LivePoints:         multinest.DefaultLivePoints,
		OutputBasename:     multinest.DefaultOutputBasename,
	}
}

// Run samples the posterior of the fit for opts.ID.
//
// The fit statistic must be cash or cstat; anything else fails before the
// sampler is started. After the sampler returns, the parameter names are
// written to <basename>params.json so that the output columns can be
// labelled later.
func (d *Driver) Run(ctx context.Context, opts RunOptions) error {
	if d.sampler == nil {
		return errors.New("no sampler configured")
	}

	fit, err := d.session.Fit(opts.ID, opts.OtherIDs)
	if err != nil {
		return fmt.Errorf("failed to look up fit %q: %w", opts.ID, err)
	}
	if _, err := model.ParseStatistic(fit.StatName()); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedStatistic, err)
	}

	params, err := d.parameters(opts.ID, opts.Parameters)
	if err != nil {
		return err
	}

	transform, err := prior.NewTransform(opts.Priors, params)
	if err != nil {
		return err
	}

	mnOpts := multinest.Options{
		Dimensions:         len(params),
		SamplingEfficiency: opts.SamplingEfficiency,
		LivePoints:         opts.LivePoints,
		OutputBasename:     basenameOrDefault(opts.OutputBasename),
		Extra:              opts.Extra,
	}
	if err := mnOpts.Validate(); err != nil {
		return err
	}

	d.logger.Info("starting nested sampling",
		zap.String("id", opts.ID),
		zap.String("statistic", fit.StatName()),
		zap.Strings("parameters", model.FullNames(params)),
		zap.Int("live_points", mnOpts.LivePoints),
		zap.Float64("sampling_efficiency", mnOpts.SamplingEfficiency),
		zap.String("basename", mnOpts.OutputBasename))

	if err := d.sampler.Run(ctx, d.Likelihood(fit, params), transform, mnOpts); err != nil {
		return fmt.Errorf("sampler failed: %w", err)
	}

	if err := multinest.WriteParamNames(mnOpts.OutputBasename, model.FullNames(params)); err != nil {
		return err
	}
	d.logger.Info("nested sampling finished", zap.String("basename", mnOpts.OutputBasename))

	if opts.ApplyBestFit {
		if _, err := d.SetBestFit(BestFitOptions{
			ID:             opts.ID,
			Parameters:     params,
			OutputBasename: mnOpts.OutputBasename,
		}); err != nil {
			return err
		}
	}
	return nil
}
