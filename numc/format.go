// SPDX-License-Identifier: MIT

package numc

import (
	"math"
	"strconv"
	"strings"
)

// Exponent range rendered in positional notation; outside it values use
// scientific notation ("1e-05", "1e+16").
const (
	minPositionalExp = -4
	maxPositionalExp = 16
)

// formatList renders rows as "[[a, b], [c, d]]".
func formatList(rows [][]float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('[')
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatItem(v))
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')

	return b.String()
}

// formatItem renders v with the shortest round-trip digits, always marking
// it as a float: 1 → "1.0", 0.5 → "0.5", 1e20 → "1e+20", NaN → "nan".
func formatItem(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	if v != 0 {
		exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if err == nil && (exp < minPositionalExp || exp >= maxPositionalExp) {
			return sci
		}
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}
