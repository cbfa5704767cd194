package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
	"github.com/Dedsec0098/Termsheet-Validation/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	checkTimeout   time.Duration
	maxBytes       int64
	noCache        bool
	noFooter       bool
	entityProvider string
	entityModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <termsheet> <mastersheet>",
	Short: "Validate a term sheet against a master rule sheet",
	Long: `Check extracts key/value terms from a term-sheet document, normalizes
them to the master sheet's vocabulary, and validates every value against
the sheet's rules. Each canonical term ends up in the report exactly once:
valid, invalid, unknown, or missing.

Term sheets: .txt, .md, .html
Master sheets: .csv, .tsv, .yaml

Example:
  termsheet check deal.txt master.csv
  termsheet check deal.html master.yaml --json report.json --md report.md
  termsheet check deal.txt master.csv --entity-provider openai`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max term-sheet bytes to read")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the recognizer cache")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Entity recognition flags
	checkCmd.Flags().StringVar(&entityProvider, "entity-provider", "pattern", "entity recognizer (pattern, openai)")
	checkCmd.Flags().StringVar(&entityModel, "entity-model", "gpt-4o-mini", "model name for the openai recognizer")
}

func runCheck(cmd *cobra.Command, args []string) error {
	termPath, masterPath := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Term sheet:   %s\n", termPath)
		fmt.Fprintf(os.Stderr, "Master sheet: %s\n", masterPath)
		fmt.Fprintf(os.Stderr, "Recognizer:   %s\n", cfg.Entity.Provider)
		fmt.Fprintln(os.Stderr)
	}

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return err
	}

	report, err := checker.CheckFiles(ctx, termPath, masterPath)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d terms\n", report.ExtractedTerms.Len())
		fmt.Fprintf(os.Stderr, "✓ Validated %d records\n", len(report.Records))
		fmt.Fprintln(os.Stderr)
	}

	if err := checker.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if report.Summary.Invalid > 0 || report.Summary.Missing > 0 {
		// Non-zero exit communicates failed validation to scripts while
		// the reports above carry the detail.
		return fmt.Errorf("%d invalid and %d missing terms", report.Summary.Invalid, report.Summary.Missing)
	}
	return nil
}

// buildConfig merges defaults, config file, env vars, and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := loadConfigFromViper(cfg); err != nil {
		return nil, err
	}

	cfg.Ingest.MaxBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if entityProvider != "" {
		cfg.Entity.Provider = entityProvider
	}
	if entityModel != "" {
		cfg.Entity.Model = entityModel
	}

	if cfg.Entity.Provider == "openai" && cfg.Entity.APIKey == "" {
		cfg.Entity.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Entity.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}
