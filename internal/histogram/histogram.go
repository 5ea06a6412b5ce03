// Package histogram summarises flux distributions: equal-width histograms
// of a single column and per-column mean and spread.
//
// A distribution is a matrix as returned by the posterior flux builder:
// one row per equally weighted posterior sample, with the photon flux in
// the second-to-last column and the energy flux in the last column.
package histogram

import (
	"errors"
	"fmt"
	"math"
)

// Column positions of the derived fluxes, counted from the end of a row.
const (
	PhotonFluxColumn = -2
	EnergyFluxColumn = -1
)

// ErrEmpty is returned for distributions without rows.
var ErrEmpty = errors.New("histogram: empty distribution")

// Bin is one histogram bin. Every bin is half-open [Left, Right) except
// the last, which also contains its right edge.
type Bin struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
	Count int     `json:"count"`
}

// Row returns the bin as a [left, right, count] triple.
func (b Bin) Row() []float64 {
	return []float64{b.Left, b.Right, float64(b.Count)}
}

// Table converts bins into [left, right, count] rows.
func Table(bins []Bin) [][]float64 {
	rows := make([][]float64, 0, len(bins))
	for _, b := range bins {
		rows = append(rows, b.Row())
	}
	return rows
}

// DefaultBins is the square-root rule: the rounded square root of the
// sample count, at least 1.
func DefaultBins(samples int) int {
	n := int(math.Round(math.Sqrt(float64(samples))))
	if n < 1 {
		return 1
	}
	return n
}

// PhotonFlux histograms the photon flux column of dist. nbins <= 0 selects
// DefaultBins.
func PhotonFlux(dist [][]float64, nbins int) ([]Bin, error) {
	return ofColumn(dist, PhotonFluxColumn, nbins)
}

// EnergyFlux histograms the energy flux column of dist. nbins <= 0 selects
// DefaultBins.
func EnergyFlux(dist [][]float64, nbins int) ([]Bin, error) {
	return ofColumn(dist, EnergyFluxColumn, nbins)
}

func ofColumn(dist [][]float64, col, nbins int) ([]Bin, error) {
	values, err := Column(dist, col)
	if err != nil {
		return nil, err
	}
	if nbins <= 0 {
		nbins = DefaultBins(len(values))
	}
	return Histogram(values, nbins)
}

// Column extracts one column of dist. Negative indexes count from the end
// of each row, so -1 is the last column.
func Column(dist [][]float64, col int) ([]float64, error) {
	if len(dist) == 0 {
		return nil, ErrEmpty
	}
	values := make([]float64, 0, len(dist))
	for i, row := range dist {
		j := col
		if j < 0 {
			j += len(row)
		}
		if j < 0 || j >= len(row) {
			return nil, fmt.Errorf("histogram: row %d has %d columns, column %d out of range", i, len(row), col)
		}
		values = append(values, row[j])
	}
	return values, nil
}

// Histogram counts values into nbins equal-width bins spanning the value
// range. A range of zero width is widened to [v-0.5, v+0.5].
func Histogram(values []float64, nbins int) ([]Bin, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	if nbins < 1 {
		return nil, fmt.Errorf("histogram: need at least one bin, got %d", nbins)
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("histogram: non-finite value %v", v)
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(nbins)
	edge := func(i int) float64 { return lo + float64(i)*width }
	pos := func(v float64) float64 { return (v - lo) / width }
	if math.IsInf(hi-lo, 0) {
		// The range itself overflows float64; step in half-widths.
		half := (hi/2 - lo/2) / float64(nbins)
		edge = func(i int) float64 {
			d := float64(i) * half
			return lo + d + d
		}
		pos = func(v float64) float64 { return (v/2 - lo/2) / half }
	}

	edges := make([]float64, nbins+1)
	for i := range edges {
		edges[i] = edge(i)
	}
	edges[nbins] = hi

	bins := make([]Bin, nbins)
	for i := range bins {
		bins[i] = Bin{Left: edges[i], Right: edges[i+1]}
	}

	for _, v := range values {
		idx := nbins - 1
		if p := pos(v); p < float64(nbins-1) {
			idx = 0
			if p > 0 {
				idx = int(p)
			}
		}
		// Rounding in the division can land one bin off near an edge.
		for idx > 0 && v < edges[idx] {
			idx--
		}
		for idx < nbins-1 && v >= edges[idx+1] {
			idx++
		}
		bins[idx].Count++
	}
	return bins, nil
}

// Stats is the mean and population standard deviation of a column.
type Stats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// ColumnStats returns the mean and standard deviation of column col of
// dist. Negative indexes count from the end of each row.
func ColumnStats(dist [][]float64, col int) (Stats, error) {
	values, err := Column(dist, col)
	if err != nil {
		return Stats{}, err
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return Stats{Mean: mean, Std: math.Sqrt(ss / float64(len(values)))}, nil
}
