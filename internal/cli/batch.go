package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dedsec0098/Termsheet-Validation/internal/ingest"
	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
	"github.com/Dedsec0098/Termsheet-Validation/internal/pipeline"
	"github.com/Dedsec0098/Termsheet-Validation/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir> <mastersheet>",
	Short: "Validate every term sheet in a directory against one master sheet",
	Long: `Batch validates multiple term sheets concurrently:
- Every .txt, .md, and .html file in the directory is checked
- Documents are processed in parallel with a configurable worker count
- Each document gets its own JSON report in the output directory

Example:
  termsheet batch ./deals master.csv
  termsheet batch ./deals master.csv --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./termsheet-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

// checkJob validates one term sheet; jobs share the checker and the
// already-loaded rule table, neither of which is mutated per run.
type checkJob struct {
	checker    *pipeline.Checker
	termPath   string
	masterPath string
	rules      []model.MasterRule
	maxBytes   int64
	reportPath string
}

// checkResult carries the outcome of one job
type checkResult struct {
	termPath string
	summary  model.Summary
	err      error
}

// GetError returns the job error, if any
func (r checkResult) GetError() error {
	return r.err
}

// Execute runs the check and writes its JSON report
func (j checkJob) Execute(ctx context.Context) worker.Result {
	rawText, err := ingest.ReadTermSheet(j.termPath, j.maxBytes)
	if err != nil {
		return checkResult{termPath: j.termPath, err: err}
	}

	report, err := j.checker.CheckText(ctx, rawText, j.rules)
	if err != nil {
		return checkResult{termPath: j.termPath, err: err}
	}
	report.TermSheet = j.termPath
	report.MasterSheet = j.masterPath

	if err := pipeline.NewRenderer(false).RenderJSON(report, j.reportPath); err != nil {
		return checkResult{termPath: j.termPath, err: err}
	}

	return checkResult{termPath: j.termPath, summary: report.Summary}
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir, masterPath := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	termPaths, err := collectTermSheets(dir)
	if err != nil {
		return err
	}
	if len(termPaths) == 0 {
		return fmt.Errorf("no term sheets found in %s", dir)
	}

	rules, err := ingest.ReadMasterSheet(masterPath)
	if err != nil {
		return err
	}

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Checking %d term sheets against %s with %d workers\n\n", len(termPaths), masterPath, concurrency)

	pool := worker.NewPool(ctx, concurrency)
	pool.Start()
	for _, termPath := range termPaths {
		name := strings.TrimSuffix(filepath.Base(termPath), filepath.Ext(termPath))
		pool.Submit(checkJob{
			checker:    checker,
			termPath:   termPath,
			masterPath: masterPath,
			rules:      rules,
			maxBytes:   cfg.Ingest.MaxBytes,
			reportPath: filepath.Join(outputDir, name+".json"),
		})
	}

	results := pool.Wait()

	failed := 0
	for _, res := range results {
		r := res.(checkResult)
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.termPath, r.err)
			continue
		}
		s := r.summary
		fmt.Fprintf(os.Stderr, "✓ %s: %d valid, %d invalid, %d unknown, %d missing\n",
			r.termPath, s.Valid, s.Invalid, s.Unknown, s.Missing)
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d documents (%d failed), reports in %s\n", len(results), failed, outputDir)

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

// collectTermSheets lists supported documents in dir, sorted for
// deterministic submission order.
func collectTermSheets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".md", ".html", ".htm":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
