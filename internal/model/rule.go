package model

import "strings"

// MasterRule is one row of the master sheet: a canonical term plus the
// rules its extracted value must satisfy. Empty strings mean "no rule".
type MasterRule struct {
	Term          string `json:"term" yaml:"term"`
	ExpectedValue string `json:"expected_value,omitempty" yaml:"expected_value,omitempty"`
	AllowedRange  string `json:"allowed_range,omitempty" yaml:"allowed_range,omitempty"`
}

// Vocabulary is the ordered list of canonical term names drawn from the
// master sheet's term column. Table order matters: fuzzy-match ties
// resolve to the first entry.
type Vocabulary []string

// VocabularyFromRules builds the canonical vocabulary from a rule table.
// Duplicate terms (case-insensitive) resolve to their first occurrence.
func VocabularyFromRules(rules []MasterRule) Vocabulary {
	seen := make(map[string]bool, len(rules))
	vocab := make(Vocabulary, 0, len(rules))
	for _, r := range rules {
		key := strings.ToLower(strings.TrimSpace(r.Term))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		vocab = append(vocab, strings.TrimSpace(r.Term))
	}
	return vocab
}
