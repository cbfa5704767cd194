package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Dedsec0098/Termsheet-Validation/internal/fuzzy"
	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
)

// Normalizer maps extracted keys to canonical names from the master
// sheet's vocabulary: exact case-insensitive match first, then the
// best-scoring fuzzy match strictly above the threshold, else a
// title-cased fallback of the original key.
type Normalizer struct {
	scorer    fuzzy.Scorer
	threshold int
	titler    cases.Caser
}

// NewNormalizer creates a normalizer around the injected similarity scorer
func NewNormalizer(scorer fuzzy.Scorer, cfg model.NormalizeConfig) *Normalizer {
	threshold := cfg.FuzzyThreshold
	if threshold <= 0 {
		threshold = 60
	}
	return &Normalizer{
		scorer:    scorer,
		threshold: threshold,
		titler:    cases.Title(language.English),
	}
}

// Normalize remaps every extracted term to its canonical name, preserving
// the extraction-stage insertion order. Keys that resolve to the same
// canonical name collapse last-writer-wins.
func (n *Normalizer) Normalize(terms *model.TermMap, vocab model.Vocabulary) *model.TermMap {
	out := model.NewTermMap()

	terms.Each(func(key, value string) {
		out.Set(n.canonicalName(key, vocab), value)
	})

	return out
}

// canonicalName resolves one extracted key
func (n *Normalizer) canonicalName(key string, vocab model.Vocabulary) string {
	display := strings.ReplaceAll(key, "_", " ")

	// Exact match keeps the vocabulary's original casing. Duplicate
	// vocabulary entries resolve to the first occurrence.
	for _, term := range vocab {
		if strings.EqualFold(display, term) {
			return term
		}
	}

	// Fuzzy match: highest score wins; on a tie the first vocabulary
	// entry in table order is kept. Acceptance is strictly above the
	// threshold.
	best := ""
	bestScore := 0
	for _, term := range vocab {
		score := n.scorer.Score(strings.ToLower(display), strings.ToLower(term))
		if score > bestScore {
			bestScore = score
			best = term
		}
	}
	if bestScore > n.threshold {
		return best
	}

	// No canonical match: synthesize a name. The validator will report
	// this term as unknown.
	return n.titler.String(display)
}
