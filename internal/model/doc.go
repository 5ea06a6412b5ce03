// Package model defines the domain interfaces and value objects for the
// bxa nested-sampling driver.
//
// The fitting session, its fits, models and parameters are owned by an
// external spectral-fitting toolkit. This package only describes the
// narrow surface the driver needs from them (Session, Fit, Model,
// Parameter), so that any session implementation can be injected.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
