// Package prior builds prior transforms: functions that map a point of the
// unit hypercube onto the parameter space of a fit.
//
// Each free parameter gets one Func. A uniform prior rescales the unit
// interval linearly onto [min, max]; a Jeffreys prior rescales it linearly
// in log10, i.e. it is uniform in the order of magnitude. The combined
// Transform applies the per-parameter functions to a cube in place, which
// is the calling convention the nested sampler expects.
package prior

import (
	"errors"
	"fmt"
	"math"

	"github.com/shinji-kodama/bxa/internal/model"
)

// ErrNoParameters is returned when a transform is requested with neither
// explicit priors nor parameters to derive uniform priors from.
var ErrNoParameters = errors.New("prior: parameters are required for automatic uniform priors")

// Func maps a unit-cube coordinate in [0, 1] to a parameter value.
type Func func(x float64) float64

// Transform rewrites cube in place, one slot per parameter.
type Transform func(cube []float64)

// Uniform returns a prior that is flat between the parameter's bounds.
// The bounds are captured when Uniform is called.
func Uniform(p model.Parameter) Func {
	return uniformBetween(p.Min(), p.Max())
}

func uniformBetween(low, high float64) Func {
	spread := high - low
	return func(x float64) float64 {
		return x*spread + low
	}
}

// Jeffreys returns a prior that is flat in log10 between the parameter's
// bounds. Both bounds must be strictly positive.
func Jeffreys(p model.Parameter) (Func, error) {
	if p.Min() <= 0 || p.Max() <= 0 {
		return nil, fmt.Errorf("prior: jeffreys prior for %s needs positive bounds, got [%g, %g]",
			p.FullName(), p.Min(), p.Max())
	}
	low := math.Log10(p.Min())
	spread := math.Log10(p.Max()) - low
	return func(x float64) float64 {
		return math.Pow(10, x*spread+low)
	}, nil
}

// NewTransform combines per-parameter priors into a Transform.
//
// When priors is empty, a uniform prior is built for every entry of params,
// so the transform covers exactly len(params) dimensions. Otherwise the
// given priors are used as-is and params only serves to check that the
// counts agree (a nil params skips the check).
func NewTransform(priors []Func, params []model.Parameter) (Transform, error) {
	funcs := priors
	if len(funcs) == 0 {
		if len(params) == 0 {
			return nil, ErrNoParameters
		}
		funcs = make([]Func, 0, len(params))
		for _, p := range params {
			funcs = append(funcs, Uniform(p))
		}
	} else if params != nil && len(params) != len(funcs) {
		return nil, fmt.Errorf("prior: %d prior functions for %d free parameters", len(funcs), len(params))
	}

	return func(cube []float64) {
		for i, f := range funcs {
			cube[i] = f(cube[i])
		}
	}, nil
}
