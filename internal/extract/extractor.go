package extract

import (
	"context"
	"strings"

	"github.com/Dedsec0098/Termsheet-Validation/internal/dates"
	"github.com/Dedsec0098/Termsheet-Validation/internal/entity"
	"github.com/Dedsec0098/Termsheet-Validation/internal/fuzzy"
	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
)

// Keyword groups used by the entity fallback stage to disambiguate
// entities by their preceding context.
var (
	maturityKeywords = []string{"maturity", "matures", "due"}
	rateKeywords     = []string{"interest", "rate", "coupon"}
	amountKeywords   = []string{"principal", "amount"}
)

// Extractor harvests key/value terms from raw term-sheet text with three
// layered stages: labeled regex patterns, entity-recognition fallback, and
// a line-by-line "key SEP value" heuristic.
//
// Stage precedence is deliberate and must not be reordered: the pattern
// stage writes first-match-wins, the entity stage fills only absent
// labels, and the line stage overwrites unconditionally.
type Extractor struct {
	recognizer entity.Recognizer
	scorer     fuzzy.Scorer

	// lineThreshold is the minimum similarity for the line heuristic to
	// accept a key as a vocabulary term.
	lineThreshold int

	// contextWindow is how far back (in bytes) the entity stage looks for
	// disambiguating keywords.
	contextWindow int

	// maxEntityText caps the text handed to the recognizer
	maxEntityText int

	// warnf receives non-fatal extraction problems (nil = silent)
	warnf func(format string, args ...interface{})
}

// Option configures an Extractor
type Option func(*Extractor)

// WithWarnFunc routes non-fatal extraction warnings to fn
func WithWarnFunc(fn func(format string, args ...interface{})) Option {
	return func(e *Extractor) { e.warnf = fn }
}

// NewExtractor creates an extractor around the injected recognition and
// similarity capabilities.
func NewExtractor(recognizer entity.Recognizer, scorer fuzzy.Scorer, cfg model.ExtractionConfig, opts ...Option) *Extractor {
	e := &Extractor{
		recognizer:    recognizer,
		scorer:        scorer,
		lineThreshold: cfg.LineMatchThreshold,
		contextWindow: cfg.ContextWindow,
		maxEntityText: cfg.MaxEntityText,
	}
	if e.lineThreshold <= 0 {
		e.lineThreshold = 65
	}
	if e.contextWindow <= 0 {
		e.contextWindow = 40
	}
	if e.maxEntityText <= 0 {
		e.maxEntityText = 100_000
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs all three stages over rawText and returns the merged
// key/value mapping in first-insertion order. A recognizer failure skips
// the entity fallback stage (reported through the warn func) rather than
// aborting extraction.
func (e *Extractor) Extract(ctx context.Context, rawText string) (*model.TermMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	terms := model.NewTermMap()

	e.patternStage(rawText, terms)
	e.entityStage(ctx, rawText, terms)
	e.lineStage(rawText, terms)

	return terms, nil
}

// patternStage applies the labeled pattern library. Only the first match
// per label is recorded.
func (e *Extractor) patternStage(text string, terms *model.TermMap) {
	for _, lp := range patternLibrary {
		if terms.Has(lp.label) {
			continue
		}
		m := lp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if value != "" {
			terms.Set(lp.label, value)
		}
	}
}

// entityStage fills labels the pattern stage missed using recognized
// entities and nearby-context keywords. It never overwrites.
func (e *Extractor) entityStage(ctx context.Context, text string, terms *model.TermMap) {
	if e.recognizer == nil {
		return
	}

	scanText := text
	if len(scanText) > e.maxEntityText {
		scanText = scanText[:e.maxEntityText]
	}

	ents, err := e.recognizer.Recognize(ctx, scanText)
	if err != nil {
		e.warn("entity recognition failed: %v", err)
		return
	}

	if !terms.Has(LabelMaturityDate) {
		for _, ent := range ents {
			if ent.Label != entity.LabelDate {
				continue
			}
			if !e.contextHasKeyword(scanText, ent.Start, maturityKeywords) {
				continue
			}
			if parsed, err := dates.Parse(ent.Text); err == nil {
				terms.Set(LabelMaturityDate, parsed.Format("2006-01-02"))
			} else {
				terms.Set(LabelMaturityDate, ent.Text)
			}
			break
		}
	}

	if !terms.Has(LabelInterestRate) {
		for _, ent := range ents {
			if ent.Label != entity.LabelPercent {
				continue
			}
			if e.contextHasKeyword(scanText, ent.Start, rateKeywords) {
				terms.Set(LabelInterestRate, ent.Text)
				break
			}
		}
	}

	if !terms.Has(LabelCounterparty) {
		for _, ent := range ents {
			if ent.Label == entity.LabelOrg {
				terms.Set(LabelCounterparty, ent.Text)
				break
			}
		}
	}

	// Only the first money entity is considered, and only when neither
	// amount label is already present.
	if !terms.Has(LabelPrincipal) && !terms.Has(LabelLoanAmount) {
		for _, ent := range ents {
			if ent.Label != entity.LabelMoney {
				continue
			}
			if e.contextHasKeyword(scanText, ent.Start, amountKeywords) {
				terms.Set(LabelPrincipal, ent.Text)
			}
			break
		}
	}
}

// lineStage scans line by line for "key SEP value" shapes, splitting once
// at the earliest of ':', '-', '='. Keys are matched against the financial
// vocabulary directly or fuzzily. This stage writes unconditionally,
// overwriting earlier stages.
func (e *Extractor) lineStage(text string, terms *model.TermMap) {
	for _, line := range strings.Split(text, "\n") {
		sep := strings.IndexAny(line, ":-=")
		if sep < 0 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(line[:sep]))
		value := strings.TrimSpace(line[sep+1:])
		if key == "" || value == "" {
			continue
		}

		if match, ok := e.matchVocabulary(key); ok {
			terms.Set(strings.ReplaceAll(match, " ", "_"), value)
		}
	}
}

// matchVocabulary resolves a candidate key against the financial
// vocabulary: direct case-insensitive match first, then the best-scoring
// fuzzy match at or above the line threshold.
func (e *Extractor) matchVocabulary(key string) (string, bool) {
	for _, term := range financialTerms {
		if key == term {
			return term, true
		}
	}

	best := ""
	bestScore := 0
	for _, term := range financialTerms {
		score := e.scorer.Score(key, term)
		if score > bestScore {
			bestScore = score
			best = term
		}
	}
	if bestScore >= e.lineThreshold {
		return best, true
	}
	return "", false
}

// contextHasKeyword reports whether any keyword appears in the window of
// text immediately before offset.
func (e *Extractor) contextHasKeyword(text string, offset int, keywords []string) bool {
	start := offset - e.contextWindow
	if start < 0 {
		start = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	window := strings.ToLower(text[start:offset])
	for _, kw := range keywords {
		if strings.Contains(window, kw) {
			return true
		}
	}
	return false
}

func (e *Extractor) warn(format string, args ...interface{}) {
	if e.warnf != nil {
		e.warnf(format, args...)
	}
}
