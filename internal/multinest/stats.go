package multinest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shinji-kodama/bxa/internal/model"
)

// statsSection tracks which vector block of a mode is being read.
type statsSection int

const (
	sectionNone statsSection = iota
	sectionMeanSigma
	sectionMaxLike
	sectionMAP
)

// ParseStats parses the sampler's stats.dat summary. The layout is:
//
//	Nested Sampling Global Log-Evidence           :  -0.28E+02  +/-  0.12E+00
//	Nested Importance Sampling Global Log-Evidence:  -0.28E+02  +/-  0.29E-01
//	Total Modes Found:            1
//	Mode  1
//	Strictly Local Log-Evidence   -0.28E+02 +/-   0.12E+00
//	Local Log-Evidence            -0.28E+02 +/-   0.12E+00
//	Dim No.       Mean        Sigma
//	   1    0.50E+00    0.29E+00
//	Maximum Likelihood Parameters
//	Dim No.       Parameter
//	   1    0.50E+00
//	MAP Parameters
//	Dim No.       Parameter
//	   1    0.50E+00
//
// Rows beyond nParams (derived parameters) are ignored. Each vector of a
// mode holds the leading dimensions its block actually listed, so a
// missing or truncated block yields a vector shorter than nParams.
func ParseStats(r io.Reader, nParams int) (*model.ModeStats, error) {
	stats := &model.ModeStats{}
	var (
		current   *model.Mode
		filled    map[statsSection][]bool
		section   statsSection
		sawGlobal bool
	)

	flush := func() {
		if current != nil {
			trimUnfilled(current, filled)
			stats.Modes = append(stats.Modes, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Nested Importance Sampling Global Log-Evidence"):
			ev, err := parseEvidence(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			stats.ImportanceEvidence = &ev

		case strings.HasPrefix(line, "Nested Sampling Global Log-Evidence"),
			strings.HasPrefix(line, "Global Evidence"):
			ev, err := parseEvidence(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			stats.GlobalEvidence = ev
			sawGlobal = true

		case strings.HasPrefix(line, "Total Modes Found"):
			section = sectionNone

		case strings.HasPrefix(line, "Mode"):
			flush()
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: mode header without number", lineNo)
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid mode number %q", lineNo, fields[1])
			}
			current = &model.Mode{
				Index:              idx,
				Mean:               make([]float64, nParams),
				Sigma:              make([]float64, nParams),
				MaximumLikelihood:  make([]float64, nParams),
				MaximumAPosteriori: make([]float64, nParams),
			}
			filled = map[statsSection][]bool{
				sectionMeanSigma: make([]bool, nParams),
				sectionMaxLike:   make([]bool, nParams),
				sectionMAP:       make([]bool, nParams),
			}
			section = sectionNone

		case strings.HasPrefix(line, "Strictly Local Log-Evidence"):
			if current == nil {
				return nil, fmt.Errorf("line %d: evidence outside of a mode", lineNo)
			}
			ev, err := parseEvidence(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.StrictlyLocalEvidence = ev

		case strings.HasPrefix(line, "Local Log-Evidence"):
			if current == nil {
				return nil, fmt.Errorf("line %d: evidence outside of a mode", lineNo)
			}
			ev, err := parseEvidence(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.LocalEvidence = ev

		case strings.HasPrefix(line, "Dim No."):
			if strings.Contains(line, "Mean") {
				section = sectionMeanSigma
			}
			// "Dim No. Parameter" headers keep the section set by the
			// title line before them.

		case strings.HasPrefix(line, "Maximum Likelihood Parameters"):
			section = sectionMaxLike

		case strings.HasPrefix(line, "MAP Parameters"):
			section = sectionMAP

		default:
			if current == nil || section == sectionNone {
				continue
			}
			i, err := readVectorRow(current, section, line, nParams)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if i >= 0 {
				filled[section][i] = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}
	flush()

	if !sawGlobal {
		return nil, fmt.Errorf("global evidence line missing")
	}
	if len(stats.Modes) == 0 {
		return nil, ErrNoModes
	}
	return stats, nil
}

// readVectorRow stores one "dim value [value]" row into the section's
// vector(s) and returns the zero-based index it filled, or -1 for an
// ignored dimension.
func readVectorRow(m *model.Mode, section statsSection, line string, nParams int) (int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return -1, fmt.Errorf("malformed row %q", line)
	}
	dim, err := strconv.Atoi(fields[0])
	if err != nil {
		return -1, fmt.Errorf("malformed dimension in row %q", line)
	}
	if dim < 1 {
		return -1, fmt.Errorf("dimension %d out of range", dim)
	}
	if dim > nParams {
		return -1, nil
	}
	i := dim - 1

	first, err := ParseFloat(fields[1])
	if err != nil {
		return -1, err
	}

	switch section {
	case sectionMeanSigma:
		if len(fields) < 3 {
			return -1, fmt.Errorf("row %q lacks sigma", line)
		}
		sigma, err := ParseFloat(fields[2])
		if err != nil {
			return -1, err
		}
		m.Mean[i] = first
		m.Sigma[i] = sigma
	case sectionMaxLike:
		m.MaximumLikelihood[i] = first
	case sectionMAP:
		m.MaximumAPosteriori[i] = first
	}
	return i, nil
}

// trimUnfilled cuts every vector of m to the dimensions its block listed
// without a gap from the first one.
func trimUnfilled(m *model.Mode, filled map[statsSection][]bool) {
	n := filledPrefix(filled[sectionMeanSigma])
	m.Mean = m.Mean[:n:n]
	m.Sigma = m.Sigma[:n:n]

	n = filledPrefix(filled[sectionMaxLike])
	m.MaximumLikelihood = m.MaximumLikelihood[:n:n]

	n = filledPrefix(filled[sectionMAP])
	m.MaximumAPosteriori = m.MaximumAPosteriori[:n:n]
}

func filledPrefix(filled []bool) int {
	for i, ok := range filled {
		if !ok {
			return i
		}
	}
	return len(filled)
}

// parseEvidence extracts "value +/- error" from the end of an evidence
// line. Everything up to the last ':' (if any) is the label.
func parseEvidence(line string) (model.Evidence, error) {
	rest := line
	if i := strings.LastIndex(rest, ":"); i >= 0 {
		rest = rest[i+1:]
	}
	fields := strings.Fields(rest)

	// Without a colon the label words come first; the numbers are the
	// last three fields: value "+/-" error.
	if len(fields) < 3 || fields[len(fields)-2] != "+/-" {
		return model.Evidence{}, fmt.Errorf("malformed evidence line %q", line)
	}
	value, err := ParseFloat(fields[len(fields)-3])
	if err != nil {
		return model.Evidence{}, err
	}
	errVal, err := ParseFloat(fields[len(fields)-1])
	if err != nil {
		return model.Evidence{}, err
	}
	return model.Evidence{Value: value, Error: errVal}, nil
}
