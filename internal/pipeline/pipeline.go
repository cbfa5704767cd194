package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Dedsec0098/Termsheet-Validation/internal/cache"
	"github.com/Dedsec0098/Termsheet-Validation/internal/entity"
	"github.com/Dedsec0098/Termsheet-Validation/internal/extract"
	"github.com/Dedsec0098/Termsheet-Validation/internal/fuzzy"
	"github.com/Dedsec0098/Termsheet-Validation/internal/ingest"
	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
	"github.com/Dedsec0098/Termsheet-Validation/internal/normalize"
	"github.com/Dedsec0098/Termsheet-Validation/internal/validate"
)

// Checker orchestrates the complete check: extraction, normalization,
// and validation. Construct once and reuse; a Checker holds no per-run
// state, so separate goroutines may run checks concurrently as long as
// the configured recognizer allows it (both built-in providers do).
type Checker struct {
	extractor  *extract.Extractor
	normalizer *normalize.Normalizer
	validator  *validate.Validator
	renderer   *Renderer
	config     *model.Config
}

// NewChecker creates a checker from configuration
func NewChecker(cfg *model.Config) (*Checker, error) {
	scorer := fuzzy.NewFoldRatio()

	var recognizerCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(home, ".termsheet", "cache")
			}
		}
		if dir != "" {
			recognizerCache = cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
		}
	}

	recognizer, err := entity.NewRecognizer(cfg.Entity, recognizerCache)
	if err != nil {
		return nil, fmt.Errorf("create entity recognizer: %w", err)
	}

	var opts []extract.Option
	if cfg.Output.Verbose {
		opts = append(opts, extract.WithWarnFunc(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		}))
	}

	return &Checker{
		extractor:  extract.NewExtractor(recognizer, scorer, cfg.Extraction, opts...),
		normalizer: normalize.NewNormalizer(scorer, cfg.Normalize),
		validator:  validate.NewValidator(scorer, cfg.Validate),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}, nil
}

// CheckText validates raw term-sheet text against a master rule table.
// This is the core entry point; everything else is file plumbing around
// it.
func (c *Checker) CheckText(ctx context.Context, rawText string, rules []model.MasterRule) (*model.Report, error) {
	// 1. Extract candidate terms
	extracted, err := c.extractor.Extract(ctx, rawText)
	if err != nil {
		return nil, fmt.Errorf("extract terms: %w", err)
	}

	// 2. Normalize keys to the master sheet's vocabulary
	vocab := model.VocabularyFromRules(rules)
	normalized := c.normalizer.Normalize(extracted, vocab)

	// 3. Validate against the rules
	records := c.validator.Validate(normalized, rules)

	return &model.Report{
		CheckedAt:       time.Now().UTC(),
		ExtractedTerms:  extracted,
		NormalizedTerms: normalized,
		Records:         records,
		Summary:         model.Summarize(records),
	}, nil
}

// CheckFiles reads a term sheet and master sheet from disk and validates
// them.
func (c *Checker) CheckFiles(ctx context.Context, termPath, masterPath string) (*model.Report, error) {
	rawText, err := ingest.ReadTermSheet(termPath, c.config.Ingest.MaxBytes)
	if err != nil {
		return nil, err
	}

	rules, err := ingest.ReadMasterSheet(masterPath)
	if err != nil {
		return nil, err
	}

	report, err := c.CheckText(ctx, rawText, rules)
	if err != nil {
		return nil, err
	}

	report.TermSheet = termPath
	report.MasterSheet = masterPath
	return report, nil
}

// RenderReport writes the report to the requested outputs and prints a
// summary to stdout.
func (c *Checker) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := c.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := c.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	c.renderer.RenderSummary(report)
	return nil
}
