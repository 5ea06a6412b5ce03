package nested

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/shinji-kodama/bxa/internal/model"
	"github.com/shinji-kodama/bxa/internal/multinest"
	"github.com/shinji-kodama/bxa/internal/prior"
)

// gridSampler evaluates the likelihood at a few fixed cube points and
// writes minimal output files, standing in for the external sampler.
type gridSampler struct {
	points   [][]float64
	gotOpts  multinest.Options
	loglikes []float64
	err      error
}

func (g *gridSampler) Run(ctx context.Context, loglike multinest.LogLikelihood, transform prior.Transform, opts multinest.Options) error {
	g.gotOpts = opts
	if g.err != nil {
		return g.err
	}

	var samples [][]float64
	for _, p := range g.points {
		cube := append([]float64(nil), p...)
		transform(cube)
		l := loglike(cube)
		g.loglikes = append(g.loglikes, l)
		samples = append(samples, append([]float64{1.0 / float64(len(g.points)), -2 * l}, cube...))
	}

	f, err := os.Create(opts.OutputBasename + multinest.SamplesSuffix)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return multinest.WriteMatrix(f, samples)
}

func tempBasename(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "run_")
}

// TestRun_EndToEnd drives a full run: priors map the cube onto the
// parameter bounds, the likelihood sees transformed values, the names
// side file is written and the best fit is applied afterwards.
func TestRun_EndToEnd(t *testing.T) {
	s := newTwoParamSession()
	sampler := &gridSampler{points: [][]float64{{0.5, 0.5}, {0.5, 49.0 / 99.0}, {0.1, 0.9}}}
	d := NewDriver(s, sampler, zaptest.NewLogger(t))

	opts := DefaultRunOptions()
	opts.OutputBasename = tempBasename(t)
	opts.LivePoints = 400
	opts.Extra = map[string]any{"resume": false}
	opts.ApplyBestFit = true

	require.NoError(t, d.Run(context.Background(), opts))

	assert.Equal(t, 2, sampler.gotOpts.Dimensions)
	assert.Equal(t, 400, sampler.gotOpts.LivePoints)
	assert.Equal(t, 0.8, sampler.gotOpts.SamplingEfficiency)
	assert.Equal(t, map[string]any{"resume": false}, sampler.gotOpts.Extra)

	// Cube (0.5, 49/99) maps to (5, 50): the exact optimum.
	require.Len(t, sampler.loglikes, 3)
	assert.InDelta(t, 0, sampler.loglikes[1], 1e-9)

	names, err := multinest.ReadParamNames(opts.OutputBasename)
	require.NoError(t, err)
	assert.Equal(t, []string{"src.a", "src.b"}, names)

	// No stats.dat was written, so the best sample is applied.
	assert.InDelta(t, 5, s.params[0].Value(), 1e-9)
	assert.InDelta(t, 50, s.params[1].Value(), 1e-9)
}

// TestRun_RejectsNonLikelihoodStatistic verifies the precondition is
// checked before the sampler is started.
func TestRun_RejectsNonLikelihoodStatistic(t *testing.T) {
	s := newTwoParamSession()
	s.fit.stat = "chi2gehrels"
	sampler := &gridSampler{}
	d := NewDriver(s, sampler, nil)

	opts := DefaultRunOptions()
	opts.OutputBasename = tempBasename(t)
	err := d.Run(context.Background(), opts)

	require.ErrorIs(t, err, ErrUnsupportedStatistic)
	assert.Contains(t, err.Error(), "chi2gehrels")
	assert.Zero(t, sampler.gotOpts.Dimensions, "sampler must not run")
}

// TestRun_ExplicitParametersAndPriors verifies explicit parameters replace
// the model's thawed list and explicit priors are used as given.
func TestRun_ExplicitParametersAndPriors(t *testing.T) {
	s := newTwoParamSession()
	only := []model.Parameter{s.params[1]}
	jeffreys, err := prior.Jeffreys(only[0])
	require.NoError(t, err)

	sampler := &gridSampler{points: [][]float64{{0.5}}}
	d := NewDriver(s, sampler, nil)

	opts := DefaultRunOptions()
	opts.OutputBasename = tempBasename(t)
	opts.Parameters = only
	opts.Priors = []prior.Func{jeffreys}
	require.NoError(t, d.Run(context.Background(), opts))

	assert.Equal(t, 1, sampler.gotOpts.Dimensions)
	assert.InDelta(t, 10, s.params[1].Value(), 1e-9, "log midpoint of [1, 100]")

	names, err := multinest.ReadParamNames(opts.OutputBasename)
	require.NoError(t, err)
	assert.Equal(t, []string{"src.b"}, names)
}

// TestRun_Errors covers the remaining failure paths.
func TestRun_Errors(t *testing.T) {
	t.Run("no sampler", func(t *testing.T) {
		d := NewDriver(newTwoParamSession(), nil, nil)
		assert.Error(t, d.Run(context.Background(), DefaultRunOptions()))
	})

	t.Run("fit lookup fails", func(t *testing.T) {
		s := newTwoParamSession()
		s.fitErr = errors.New("no data set 2")
		d := NewDriver(s, &gridSampler{}, nil)
		opts := DefaultRunOptions()
		opts.ID = "2"
		err := d.Run(context.Background(), opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no data set 2")
	})

	t.Run("no free parameters", func(t *testing.T) {
		s := newTwoParamSession()
		s.params = nil
		d := NewDriver(s, &gridSampler{}, nil)
		err := d.Run(context.Background(), DefaultRunOptions())
		assert.ErrorIs(t, err, ErrNoFreeParameters)
	})

	t.Run("prior count mismatch", func(t *testing.T) {
		s := newTwoParamSession()
		d := NewDriver(s, &gridSampler{}, nil)
		opts := DefaultRunOptions()
		opts.Priors = []prior.Func{prior.Uniform(s.params[0])}
		assert.Error(t, d.Run(context.Background(), opts))
	})

	t.Run("invalid options", func(t *testing.T) {
		d := NewDriver(newTwoParamSession(), &gridSampler{}, nil)
		opts := DefaultRunOptions()
		opts.LivePoints = 0
		assert.Error(t, d.Run(context.Background(), opts))
	})

	t.Run("sampler error", func(t *testing.T) {
		sentinel := errors.New("sampler crashed")
		d := NewDriver(newTwoParamSession(), &gridSampler{err: sentinel}, nil)
		opts := DefaultRunOptions()
		opts.OutputBasename = tempBasename(t)
		err := d.Run(context.Background(), opts)
		assert.ErrorIs(t, err, sentinel)

		_, statErr := os.Stat(opts.OutputBasename + multinest.ParamsSuffix)
		assert.True(t, os.IsNotExist(statErr), "names are only written after a successful run")
	})
}
