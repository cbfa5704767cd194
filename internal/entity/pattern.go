package entity

import (
	"context"
	"regexp"
)

// PatternRecognizer recognizes entities with a fixed regex library.
// It is deterministic, offline, and stateless, so a single instance can
// serve any number of concurrent runs.
type PatternRecognizer struct {
	patterns []labeledPattern
}

type labeledPattern struct {
	label Label
	re    *regexp.Regexp
}

const monthNames = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

// NewPatternRecognizer creates the built-in regex recognizer
func NewPatternRecognizer() *PatternRecognizer {
	return &PatternRecognizer{
		patterns: []labeledPattern{
			{LabelDate, regexp.MustCompile(`(?i)\b(?:\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[-/]\d{1,2}[-/]\d{4}|` + monthNames + `\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}|\d{1,2}(?:st|nd|rd|th)?\s+` + monthNames + `,?\s+\d{4}|` + monthNames + `\s+\d{4})\b`)},
			{LabelPercent, regexp.MustCompile(`\d+(?:\.\d+)?\s?%`)},
			{LabelMoney, regexp.MustCompile(`(?i)[$£€]\s?\d[\d,]*(?:\.\d+)?(?:\s?(?:million|billion|mm|m|bn|b))?|\d[\d,]*(?:\.\d+)?\s?(?:million|billion)\b`)},
			{LabelOrg, regexp.MustCompile(`\b(?:[A-Z][A-Za-z&.\-']*\s)*[A-Z][A-Za-z&.\-']*\s(?:Inc|Incorporated|Ltd|Limited|LLC|LLP|PLC|Corp|Corporation|Company|Co|Bank|Partners|Capital|Holdings|Group|Trust|N\.A)\.?\b`)},
		},
	}
}

// Name returns the recognizer name
func (r *PatternRecognizer) Name() string {
	return "pattern"
}

// Recognize runs every pattern over the text and returns all matches
// ordered by start offset. A span claimed by an earlier pattern is not
// reported again under a later label.
func (r *PatternRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ents []Entity
	claimed := make([][2]int, 0)

	for _, lp := range r.patterns {
		locs := lp.re.FindAllStringIndex(text, -1)
		for _, loc := range locs {
			if overlaps(claimed, loc[0], loc[1]) {
				continue
			}
			claimed = append(claimed, [2]int{loc[0], loc[1]})
			ents = append(ents, Entity{
				Label: lp.label,
				Text:  text[loc[0]:loc[1]],
				Start: loc[0],
			})
		}
	}

	sortByStart(ents)
	return ents, nil
}

func overlaps(claimed [][2]int, start, end int) bool {
	for _, c := range claimed {
		if start < c[1] && end > c[0] {
			return true
		}
	}
	return false
}
