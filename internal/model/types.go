package model

import (
	"fmt"
	"strings"
)

// Parameter is a single model parameter owned by the fitting session.
//
// The driver reads its bounds and writes its current value in place. No
// locking is performed: a session is assumed to be used by one caller at a
// time.
type Parameter interface {
	// FullName is the fully qualified name, e.g. "powlaw1d.gamma".
	FullName() string

	// Min is the lower bound of the parameter's allowed range.
	Min() float64

	// Max is the upper bound of the parameter's allowed range.
	Max() float64

	// Value returns the parameter's current value.
	Value() float64

	// SetValue replaces the parameter's current value.
	SetValue(v float64)
}

// Model exposes the thawed (free) parameters of a source model.
type Model interface {
	ThawedParameters() []Parameter
}

// Fit is a configured fit of a model to one or more datasets.
type Fit interface {
	// StatName is the name of the fit statistic (e.g. "cstat").
	StatName() string

	// CalcStat evaluates the statistic at the parameters' current values.
	CalcStat() (float64, error)
}

// Session is the fitting session the driver operates on. It exposes
// exactly the lookups and flux integrals the driver uses.
//
// An empty id selects the session's default dataset. lo and hi are the
// energy range of a flux integral; nil means the full range of the data.
type Session interface {
	Fit(id string, otherIDs []string) (Fit, error)
	Model(id string) (Model, error)
	PhotonFlux(lo, hi *float64, id string) (float64, error)
	EnergyFlux(lo, hi *float64, id string) (float64, error)
}

// Statistic identifies a fit statistic understood by the driver.
type Statistic string

const (
	// StatCash is the Cash (1979) Poisson log-likelihood statistic.
	StatCash Statistic = "cash"

	// StatCStat is the XSPEC variant of the Cash statistic.
	StatCStat Statistic = "cstat"
)

// String returns the string representation of Statistic.
func (s Statistic) String() string {
	return string(s)
}

// IsLikelihood reports whether the statistic is a Poisson log-likelihood,
// i.e. whether -0.5*stat can be used as a log-likelihood.
func (s Statistic) IsLikelihood() bool {
	switch s {
	case StatCash, StatCStat:
		return true
	default:
		return false
	}
}

// ParseStatistic converts a statistic name reported by a fit into a
// Statistic. Returns an error if the name is not a likelihood statistic.
func ParseStatistic(name string) (Statistic, error) {
	stat := Statistic(strings.ToLower(strings.TrimSpace(name)))
	if !stat.IsLikelihood() {
		return "", fmt.Errorf("fit statistic must be cash or cstat, not %q", name)
	}
	return stat, nil
}

// FullNames returns the fully qualified names of params, in order.
func FullNames(params []Parameter) []string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.FullName())
	}
	return names
}

// ApplyValues assigns values[i] to params[i] for every index present in
// both slices. Extra entries on either side are ignored.
func ApplyValues(params []Parameter, values []float64) {
	for i, p := range params {
		if i >= len(values) {
			return
		}
		p.SetValue(values[i])
	}
}

// Mode is one posterior mode reported by the sampler.
type Mode struct {
	// Index is the 1-based mode number as written by the sampler.
	Index int `json:"index"`

	// StrictlyLocalEvidence is the strictly local log-evidence and its error.
	StrictlyLocalEvidence Evidence `json:"strictlyLocalEvidence"`

	// LocalEvidence is the local log-evidence and its error. Best-fit
	// selection ranks modes by this value.
	LocalEvidence Evidence `json:"localEvidence"`

	// Mean and Sigma are the marginal posterior mean and standard deviation.
	Mean  []float64 `json:"mean"`
	Sigma []float64 `json:"sigma"`

	// MaximumLikelihood is the highest-likelihood point of the mode.
	MaximumLikelihood []float64 `json:"maximumLikelihood"`

	// MaximumAPosteriori is the MAP point of the mode.
	MaximumAPosteriori []float64 `json:"maximumAPosteriori"`
}

// Evidence is a log-evidence value with its uncertainty.
type Evidence struct {
	Value float64 `json:"value"`
	Error float64 `json:"error"`
}

// String formats the evidence as "value +/- error".
func (e Evidence) String() string {
	return fmt.Sprintf("%.4f +/- %.4f", e.Value, e.Error)
}

// ModeStats is the summary the sampler writes after a run.
type ModeStats struct {
	// GlobalEvidence is the nested sampling global log-evidence.
	GlobalEvidence Evidence `json:"globalEvidence"`

	// ImportanceEvidence is the importance-nested-sampling global
	// log-evidence. Nil when the sampler did not report it.
	ImportanceEvidence *Evidence `json:"importanceEvidence,omitempty"`

	// Modes lists every mode found, in file order.
	Modes []Mode `json:"modes"`
}

// BestPoint is the single best sample recorded by the sampler.
type BestPoint struct {
	LogLikelihood float64   `json:"logLikelihood"`
	Parameters    []float64 `json:"parameters"`
}

// ExitCode defines standard CLI exit codes. These codes allow scripts to
// programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitOutputNotFound indicates the sampler output files were not found
	// under the given basename.
	ExitOutputNotFound ExitCode = 2

	// ExitInvalidConfig indicates the run configuration failed validation.
	ExitInvalidConfig ExitCode = 3

	// ExitUnsupportedStatistic indicates the fit statistic is not a
	// Poisson likelihood.
	ExitUnsupportedStatistic ExitCode = 4

	// ExitLikelihoodFailure is used when the likelihood callback cannot
	// evaluate a point. The sampler cannot recover from this, so the
	// process halts (-127 as an 8-bit status).
	ExitLikelihoodFailure ExitCode = 129
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
