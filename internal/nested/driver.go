package nested

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/shinji-kodama/bxa/internal/model"
	"github.com/shinji-kodama/bxa/internal/multinest"
)

// ErrUnsupportedStatistic is returned by Run when the fit statistic is not
// a Poisson log-likelihood.
var ErrUnsupportedStatistic = errors.New("unsupported fit statistic")

// ErrNoFreeParameters is returned when the model has no thawed parameters
// and none were given explicitly.
var ErrNoFreeParameters = errors.New("no free parameters")

// AnalyzerFactory opens the results of a run over nParams parameters.
type AnalyzerFactory func(nParams int, basename string) multinest.Analyzer

// Driver binds a fitting session to a nested sampler.
type Driver struct {
	session model.Session
	sampler multinest.Sampler
	logger  *zap.Logger

	// OpenAnalyzer reads a finished run. Defaults to the sampler's output
	// files under the run's basename.
	OpenAnalyzer AnalyzerFactory

	// Exit terminates the process after a fatal likelihood failure.
	// Defaults to os.Exit.
	Exit func(code int)
}

// NewDriver creates a Driver. sampler may be nil when only post-processing
// operations are used; logger may be nil to discard log output.
func NewDriver(session model.Session, sampler multinest.Sampler, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		session: session,
		sampler: sampler,
		logger:  logger,
		OpenAnalyzer: func(nParams int, basename string) multinest.Analyzer {
			return multinest.NewAnalyzer(nParams, basename)
		},
		Exit: os.Exit,
	}
}

// parameters returns explicit when it is non-nil, and the thawed
// parameters of the model for id otherwise.
func (d *Driver) parameters(id string, explicit []model.Parameter) ([]model.Parameter, error) {
	if explicit != nil {
		return explicit, nil
	}

	m, err := d.session.Model(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up model %q: %w", id, err)
	}
	params := m.ThawedParameters()
	if len(params) == 0 {
		return nil, fmt.Errorf("model %q: %w", id, ErrNoFreeParameters)
	}
	return params, nil
}

func basenameOrDefault(basename string) string {
	if basename == "" {
		return multinest.DefaultOutputBasename
	}
	return basename
}
