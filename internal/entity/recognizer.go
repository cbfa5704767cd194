package entity

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Dedsec0098/Termsheet-Validation/internal/cache"
	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
)

// Label classifies a recognized entity span
type Label string

const (
	LabelDate    Label = "DATE"
	LabelPercent Label = "PERCENT"
	LabelMoney   Label = "MONEY"
	LabelOrg     Label = "ORG"
)

// Entity is one recognized span with its byte offset in the source text
type Entity struct {
	Label Label  `json:"label"`
	Text  string `json:"text"`
	Start int    `json:"start"`
}

// Recognizer is the injected entity-recognition capability. Implementations
// must be safe for reuse across sequential runs: construct once, no
// per-call mutation. Concurrent use requires a stateless implementation or
// one instance per worker.
type Recognizer interface {
	// Name returns the recognizer name
	Name() string

	// Recognize returns entities found in text, ordered by start offset
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// NewRecognizer creates a recognizer based on configuration.
// The cache may be nil; it is only consulted by providers with per-call
// cost (the pattern recognizer ignores it).
func NewRecognizer(cfg model.EntityConfig, c cache.Cache) (Recognizer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "pattern":
		return NewPatternRecognizer(), nil

	case "openai":
		return NewOpenAIRecognizer(cfg, c)

	default:
		return nil, fmt.Errorf("unknown entity provider: %s (supported: pattern, openai)", cfg.Provider)
	}
}

// sortByStart orders entities by offset, then by label for stable output
func sortByStart(ents []Entity) {
	sort.SliceStable(ents, func(i, j int) bool {
		if ents[i].Start != ents[j].Start {
			return ents[i].Start < ents[j].Start
		}
		return ents[i].Label < ents[j].Label
	})
}
