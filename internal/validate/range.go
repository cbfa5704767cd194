package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// rangeKind classifies an allowed-range expression by its leading operator
type rangeKind int

const (
	rangeNone     rangeKind = iota // empty or unrecognized
	rangeMin                       // ≥X
	rangeMax                       // ≤X
	rangeInterval                  // A-B or A–B, inclusive both ends
)

// splitRange parses the shape of an allowed-range cell without
// interpreting the bounds. Interval splitting considers every occurrence
// of the delimiter: a cell whose bounds themselves contain the delimiter
// (e.g. hyphenated dates split on "-") does not form a valid interval.
func splitRange(s string) (kind rangeKind, lo, hi string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return rangeNone, "", ""
	}

	for _, prefix := range []string{"≥", ">="} {
		if strings.HasPrefix(s, prefix) {
			return rangeMin, strings.TrimSpace(strings.TrimPrefix(s, prefix)), ""
		}
	}
	for _, prefix := range []string{"≤", "<="} {
		if strings.HasPrefix(s, prefix) {
			return rangeMax, strings.TrimSpace(strings.TrimPrefix(s, prefix)), ""
		}
	}

	delimiter := ""
	if strings.Contains(s, "–") {
		delimiter = "–"
	} else if strings.Contains(s, "-") {
		delimiter = "-"
	}
	if delimiter != "" {
		parts := strings.Split(s, delimiter)
		if len(parts) == 2 {
			return rangeInterval, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}
	}

	return rangeNone, "", ""
}

// nonNumeric matches every character dropped before numeric parsing:
// currency symbols, percent signs, thousands separators, units.
var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// parseNumber parses a numeric value after stripping all non-digit,
// non-decimal-point characters.
func parseNumber(s string) (float64, error) {
	cleaned := nonNumeric.ReplaceAllString(strings.ReplaceAll(s, ",", ""), "")
	if cleaned == "" {
		return 0, fmt.Errorf("no digits in %q", s)
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", s, err)
	}
	return n, nil
}

// formatNumber renders a float the shortest way that round-trips
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
