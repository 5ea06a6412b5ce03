// Package config loads the YAML run configuration for bxa.
//
// A configuration file collects the settings that are otherwise passed as
// keyword arguments on every call: the sampler's output basename and
// tuning, the energy band for flux distributions, and whether the best
// fit is applied after a run. Keys follow the sampler's own naming so a
// file can be shared with other front ends.
//
//	outputfiles_basename: chains/src1_
//	n_live_points: 400
//	sampling_efficiency: 0.3
//	plot_best: true
//	energy_range:
//	  lo: 0.5
//	  hi: 2.0
//	histogram_bins: 20
//	sampler:
//	  resume: true
//	  verbose: false
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/bxa/internal/model"
	"github.com/shinji-kodama/bxa/internal/multinest"
	"github.com/shinji-kodama/bxa/internal/nested"
)

// Config is the run configuration.
type Config struct {
	// ID selects the dataset of the session.
	ID string `yaml:"id,omitempty"`

	// OtherIDs lists further datasets of a simultaneous fit.
	OtherIDs []string `yaml:"otherids,omitempty"`

	OutputBasename     string  `yaml:"outputfiles_basename"`
	LivePoints         int     `yaml:"n_live_points"`
	SamplingEfficiency float64 `yaml:"sampling_efficiency"`

	// PlotBest applies the best fit to the session after a run.
	PlotBest bool `yaml:"plot_best"`

	// EnergyRange bounds the flux integrals. Nil means the full range.
	EnergyRange *EnergyRange `yaml:"energy_range,omitempty"`

	// HistogramBins is the bin count for flux histograms; 0 selects the
	// square-root rule.
	HistogramBins int `yaml:"histogram_bins,omitempty"`

	// Sampler holds sampler-specific settings passed through unchanged.
	Sampler map[string]any `yaml:"sampler,omitempty"`
}

// EnergyRange is an energy band in keV. Either bound may be omitted.
type EnergyRange struct {
	Lo *float64 `yaml:"lo,omitempty"`
	Hi *float64 `yaml:"hi,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		OutputBasename:     multinest.DefaultOutputBasename,
		LivePoints:         multinest.DefaultLivePoints,
		SamplingEfficiency: multinest.DefaultSamplingEfficiency,
	}
}

// Load reads a configuration file. Keys missing from the file keep their
// defaults; unknown keys are rejected so that typos do not go unnoticed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, model.WrapCLIError(model.ExitInvalidConfig,
				fmt.Sprintf("configuration file not found: %s", path), err)
		}
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes configuration YAML on top of the defaults. source names
// the input in error messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes to io.EOF and leaves the defaults.
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, model.WrapCLIError(model.ExitInvalidConfig,
			fmt.Sprintf("failed to parse configuration %s", source), err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, model.WrapCLIError(model.ExitInvalidConfig,
			fmt.Sprintf("invalid configuration %s", source), errors.Join(validationErrors(errs)...))
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}

// RunOptions converts the configuration into sampling run options.
func (c *Config) RunOptions() nested.RunOptions {
	opts := nested.DefaultRunOptions()
	opts.ID = c.ID
	opts.OtherIDs = c.OtherIDs
	opts.OutputBasename = c.OutputBasename
	opts.LivePoints = c.LivePoints
	opts.SamplingEfficiency = c.SamplingEfficiency
	opts.Extra = c.Sampler
	opts.ApplyBestFit = c.PlotBest
	return opts
}

// FluxOptions converts the configuration into flux distribution options.
func (c *Config) FluxOptions() nested.FluxOptions {
	opts := nested.FluxOptions{
		ID:             c.ID,
		OutputBasename: c.OutputBasename,
	}
	if c.EnergyRange != nil {
		opts.Lo = c.EnergyRange.Lo
		opts.Hi = c.EnergyRange.Hi
	}
	return opts
}
