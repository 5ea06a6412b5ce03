// Package nested drives a nested-sampling run over a spectral fit and
// replays the results onto the fitting session.
//
// The Driver adapts the session's thawed parameters and fit statistic to
// the sampler's callback convention (a prior transform over the unit cube
// and a log-likelihood), starts the sampler, and records the parameter
// names next to the sampler's output. After a run it can set the session
// to the best fit, or build the posterior distribution of photon and
// energy fluxes.
//
// Every operation mutates the session's parameter values in place. The
// Driver is not safe for concurrent use.
//
// Failure handling differs by phase:
//   - preconditions (statistic type, option values) are returned as errors
//     before any sampling starts
//   - a likelihood evaluation that fails halts the process after logging
//     every parameter, because the sampler has no way to recover
//   - a missing or malformed mode summary during best-fit extraction is
//     logged as a warning and the single best sample is used instead
package nested
