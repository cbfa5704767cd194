package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
)

// ReadMasterSheet loads the master rule table from a CSV, TSV, or YAML
// file. CSV/TSV files need a header row; the term column is resolved
// best-effort when no column is literally named "Term".
func ReadMasterSheet(path string) ([]model.MasterRule, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return readMasterCSV(path)
	case ".yaml", ".yml":
		return readMasterYAML(path)
	default:
		return nil, fmt.Errorf("unsupported master sheet format: %s (supported: .csv, .tsv, .yaml, .yml)", filepath.Ext(path))
	}
}

func readMasterCSV(path string) ([]model.MasterRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open master sheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	if strings.ToLower(filepath.Ext(path)) == ".tsv" {
		reader.Comma = '\t'
	}
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse master sheet %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("master sheet %s needs a header row and at least one rule", path)
	}

	headers := records[0]
	termCol := resolveTermColumn(headers)
	expectedCol := findColumn(headers, "expected")
	rangeCol := findColumn(headers, "range")
	if rangeCol < 0 {
		rangeCol = findColumn(headers, "allowed")
	}

	var rules []model.MasterRule
	for _, row := range records[1:] {
		rule := model.MasterRule{
			Term:          cell(row, termCol),
			ExpectedValue: cell(row, expectedCol),
			AllowedRange:  cell(row, rangeCol),
		}
		if rule.Term == "" {
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func readMasterYAML(path string) ([]model.MasterRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read master sheet: %w", err)
	}

	var rules []model.MasterRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse master sheet %s: %w", path, err)
	}

	out := rules[:0]
	for _, r := range rules {
		if strings.TrimSpace(r.Term) != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// resolveTermColumn picks the column holding canonical term names:
// an exact "Term" header, else the first header mentioning "term", else
// the first column.
func resolveTermColumn(headers []string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), "term") {
			return i
		}
	}
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), "term") {
			return i
		}
	}
	return 0
}

// findColumn returns the first header containing the fragment, or -1
func findColumn(headers []string, fragment string) int {
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), fragment) {
			return i
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
