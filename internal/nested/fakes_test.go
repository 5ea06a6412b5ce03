package nested

import (
	"errors"
	"fmt"

	"github.com/shinji-kodama/bxa/internal/model"
)

// fakeFit is a fit whose statistic is computed by a plain function.
type fakeFit struct {
	stat  string
	calc  func() (float64, error)
	calls int
}

func (f *fakeFit) StatName() string { return f.stat }

func (f *fakeFit) CalcStat() (float64, error) {
	f.calls++
	return f.calc()
}

// fakeSession serves one fit and one model for every id, and returns
// constant fluxes unless a flux function is set.
type fakeSession struct {
	fit    *fakeFit
	params []model.Parameter

	fitErr   error
	modelErr error

	photon func() (float64, error)
	energy func() (float64, error)

	fluxCalls []fluxCall
}

type fluxCall struct {
	kind   string
	lo, hi *float64
	id     string
	values []float64
}

func (s *fakeSession) Fit(id string, otherIDs []string) (model.Fit, error) {
	if s.fitErr != nil {
		return nil, s.fitErr
	}
	return s.fit, nil
}

func (s *fakeSession) Model(id string) (model.Model, error) {
	if s.modelErr != nil {
		return nil, s.modelErr
	}
	return model.StaticModel(s.params), nil
}

func (s *fakeSession) PhotonFlux(lo, hi *float64, id string) (float64, error) {
	s.record("photon", lo, hi, id)
	if s.photon == nil {
		return 1.0, nil
	}
	return s.photon()
}

func (s *fakeSession) EnergyFlux(lo, hi *float64, id string) (float64, error) {
	s.record("energy", lo, hi, id)
	if s.energy == nil {
		return 2.0, nil
	}
	return s.energy()
}

func (s *fakeSession) record(kind string, lo, hi *float64, id string) {
	values := make([]float64, 0, len(s.params))
	for _, p := range s.params {
		values = append(values, p.Value())
	}
	s.fluxCalls = append(s.fluxCalls, fluxCall{kind: kind, lo: lo, hi: hi, id: id, values: values})
}

// newTwoParamSession returns a cstat session over two parameters bounded
// [0, 10] and [1, 100] whose statistic is the squared distance to (5, 50).
func newTwoParamSession() *fakeSession {
	a := model.NewBoundedParameter("src.a", 0, 10)
	b := model.NewBoundedParameter("src.b", 1, 100)
	fit := &fakeFit{stat: "cstat"}
	fit.calc = func() (float64, error) {
		da, db := a.Value()-5, b.Value()-50
		return da*da + db*db, nil
	}
	return &fakeSession{fit: fit, params: []model.Parameter{a, b}}
}

// fakeAnalyzer serves fixed results.
type fakeAnalyzer struct {
	stats     *model.ModeStats
	statsErr  error
	best      *model.BestPoint
	bestErr   error
	posterior [][]float64
	postErr   error
}

func (a *fakeAnalyzer) ModeStats() (*model.ModeStats, error) {
	if a.statsErr != nil {
		return nil, a.statsErr
	}
	if a.stats == nil {
		return nil, errors.New("no stats")
	}
	return a.stats, nil
}

func (a *fakeAnalyzer) BestFit() (*model.BestPoint, error) {
	if a.bestErr != nil {
		return nil, a.bestErr
	}
	if a.best == nil {
		return nil, fmt.Errorf("no samples")
	}
	return a.best, nil
}

func (a *fakeAnalyzer) EqualWeightedPosterior() ([][]float64, error) {
	return a.posterior, a.postErr
}

// exitRecorder is a Driver.Exit hook that records the code and returns,
// which makes the driver panic instead of terminating the test binary.
type exitRecorder struct {
	codes []int
}

func (r *exitRecorder) exit(code int) {
	r.codes = append(r.codes, code)
}
