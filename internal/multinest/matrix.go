package multinest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadMatrix parses a whitespace-separated numeric table, one row per line.
// Blank lines and lines starting with '#' are skipped. All rows must have
// the same number of columns.
func ReadMatrix(r io.Reader) ([][]float64, error) {
	var rows [][]float64
	scanner := bufio.NewScanner(r)
	// Rows of high-dimensional fits easily exceed the default 64 KiB token.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		row := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := ParseFloat(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			row = append(row, v)
		}

		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", lineNo, len(rows[0]), len(row))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	return rows, nil
}

// WriteMatrix writes rows as a whitespace-separated table that ReadMatrix
// can read back without loss.
func WriteMatrix(w io.Writer, rows [][]float64) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for j, v := range row {
			if j > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseFloat parses a number as written by Fortran list-directed or
// E-format output. Besides the usual forms it accepts exponents without
// the 'E' marker, which Fortran emits for three-digit exponents
// ("0.123456-100" means 0.123456E-100).
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v, nil
	}

	// Look for a sign that is not at the start and not preceded by an
	// exponent marker; that sign starts a bare exponent.
	for i := 1; i < len(s); i++ {
		if s[i] != '-' && s[i] != '+' {
			continue
		}
		prev := s[i-1]
		if prev == 'e' || prev == 'E' || prev == 'd' || prev == 'D' {
			continue
		}
		fixed := s[:i] + "E" + s[i:]
		if v, err2 := strconv.ParseFloat(fixed, 64); err2 == nil {
			return v, nil
		}
		break
	}

	// Fortran double precision exponent marker.
	if strings.ContainsAny(s, "dD") {
		fixed := strings.NewReplacer("d", "E", "D", "E").Replace(s)
		if v, err2 := strconv.ParseFloat(fixed, 64); err2 == nil {
			return v, nil
		}
	}

	return 0, fmt.Errorf("invalid number %q", s)
}
