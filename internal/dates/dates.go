package dates

import (
	"fmt"
	"strings"
	"time"
)

// layouts is tried in order; earlier entries are more specific so that an
// ISO date never falls through to a looser form.
var layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
	"2006-01",
	"January 2006",
	"Jan 2006",
}

// Parse attempts a best-effort parse of a free-text date.
// It trims ordinal suffixes ("1st March 2030") and surrounding noise
// before trying the layout table.
func Parse(s string) (time.Time, error) {
	cleaned := clean(s)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("parse date %q: empty after cleaning", s)
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: no known format", s)
}

// Looks reports whether s parses as a date. Used by the validator's
// domain-inference cascade.
func Looks(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// clean strips trailing punctuation and ordinal suffixes from day numbers
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, ".,;")
	s = strings.TrimSpace(s)

	// "1st", "2nd", "3rd", "4th" ... -> bare day number
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		s = stripOrdinal(s, suffix)
	}
	return s
}

// stripOrdinal removes suffix when it directly follows a digit and is
// followed by a word boundary
func stripOrdinal(s, suffix string) string {
	lower := strings.ToLower(s)
	for i := 1; i+len(suffix) <= len(lower); i++ {
		if lower[i:i+len(suffix)] != suffix {
			continue
		}
		if s[i-1] < '0' || s[i-1] > '9' {
			continue
		}
		end := i + len(suffix)
		if end < len(s) && s[end] != ' ' && s[end] != ',' {
			continue
		}
		return s[:i] + s[end:]
	}
	return s
}
