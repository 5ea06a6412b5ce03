package config

import (
	"fmt"
	"math"
)

// ValidationError represents a specific validation failure in a
// configuration file.
type ValidationError struct {
	// Field is the YAML key that failed validation (e.g. "energy_range.lo").
	Field string

	// Message describes what's wrong with the field value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration and returns every problem found
// (empty list = valid configuration).
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.OutputBasename == "" {
		errs = append(errs, ValidationError{
			Field:   "outputfiles_basename",
			Message: "must not be empty",
		})
	}

	if c.LivePoints < 1 {
		errs = append(errs, ValidationError{
			Field:   "n_live_points",
			Message: fmt.Sprintf("must be positive, got %d", c.LivePoints),
		})
	}

	if c.SamplingEfficiency <= 0 || c.SamplingEfficiency > 1 || math.IsNaN(c.SamplingEfficiency) {
		errs = append(errs, ValidationError{
			Field:   "sampling_efficiency",
			Message: fmt.Sprintf("must be in (0, 1], got %g", c.SamplingEfficiency),
		})
	}

	if c.HistogramBins < 0 {
		errs = append(errs, ValidationError{
			Field:   "histogram_bins",
			Message: fmt.Sprintf("must not be negative, got %d", c.HistogramBins),
		})
	}

	if r := c.EnergyRange; r != nil {
		if r.Lo != nil && *r.Lo <= 0 {
			errs = append(errs, ValidationError{
				Field:   "energy_range.lo",
				Message: fmt.Sprintf("must be positive, got %g", *r.Lo),
			})
		}
		if r.Lo != nil && r.Hi != nil && *r.Hi <= *r.Lo {
			errs = append(errs, ValidationError{
				Field:   "energy_range.hi",
				Message: fmt.Sprintf("must exceed lo (%g), got %g", *r.Lo, *r.Hi),
			})
		}
	}

	return errs
}

func validationErrors(errs []ValidationError) []error {
	out := make([]error, 0, len(errs))
	for i := range errs {
		out = append(out, &errs[i])
	}
	return out
}
