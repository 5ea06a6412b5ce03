package nested

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/shinji-kodama/bxa/internal/model"
	"github.com/shinji-kodama/bxa/internal/multinest"
)

// Likelihood returns the sampler callback for fit over params.
//
// Each call assigns cube[i] to params[i] and returns -0.5 times the fit
// statistic, which for cash and cstat is the Poisson log-likelihood up to
// a constant. A NaN coordinate, a statistic error or a panic inside the
// fit is fatal: every parameter is logged and the process halts. The
// callback never returns a substitute value.
func (d *Driver) Likelihood(fit model.Fit, params []model.Parameter) multinest.LogLikelihood {
	return func(cube []float64) float64 {
		logL, err := evaluate(fit, params, cube)
		if err != nil {
			d.fatal(params, cube, err)
		}
		return logL
	}
}

func evaluate(fit model.Fit, params []model.Parameter, cube []float64) (logL float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during statistic evaluation: %v", r)
		}
	}()

	if len(cube) < len(params) {
		return 0, fmt.Errorf("cube has %d values for %d parameters", len(cube), len(params))
	}
	for i, p := range params {
		if math.IsNaN(cube[i]) {
			return 0, fmt.Errorf("parameter %d (%s) to be set to %f", i, p.FullName(), cube[i])
		}
		p.SetValue(cube[i])
	}

	stat, err := fit.CalcStat()
	if err != nil {
		return 0, fmt.Errorf("statistic evaluation failed: %w", err)
	}
	return -0.5 * stat, nil
}

// fatal logs the failure with the state of every parameter and halts.
func (d *Driver) fatal(params []model.Parameter, cube []float64, err error) {
	d.logger.Error("exception in log-likelihood function", zap.Error(err))
	for i, p := range params {
		requested := math.NaN()
		if i < len(cube) {
			requested = cube[i]
		}
		d.logger.Error("parameter state",
			zap.String("parameter", p.FullName()),
			zap.Float64("value", p.Value()),
			zap.Float64("requested", requested),
			zap.Float64("min", p.Min()),
			zap.Float64("max", p.Max()))
	}
	_ = d.logger.Sync()

	d.Exit(int(model.ExitLikelihoodFailure))

	// Reached only when Exit returns.
	panic(fmt.Sprintf("log-likelihood halted: %v", err))
}
