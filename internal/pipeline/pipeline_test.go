package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
)

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	checker, err := NewChecker(cfg)
	if err != nil {
		t.Fatalf("NewChecker failed: %v", err)
	}
	return checker
}

func TestCheckText_EndToEnd(t *testing.T) {
	checker := newTestChecker(t)

	rawText := "Interest Rate: 5.5%\nMaturity Date: 2030-01-01"
	rules := []model.MasterRule{
		{Term: "Interest Rate", ExpectedValue: "5.5", AllowedRange: "4.0-6.0"},
		{Term: "Maturity Date", AllowedRange: "≥2025-01-01"},
	}

	report, err := checker.CheckText(context.Background(), rawText, rules)
	if err != nil {
		t.Fatalf("CheckText failed: %v", err)
	}

	if len(report.Records) != 2 {
		t.Fatalf("Expected 2 records, got %+v", report.Records)
	}
	for _, rec := range report.Records {
		if rec.Status != model.StatusValid {
			t.Errorf("Term %q: expected valid, got %s (%s)", rec.Term, rec.Status, rec.Notes)
		}
	}
	if report.Summary.Valid != 2 || report.Summary.Total != 2 {
		t.Errorf("Unexpected summary: %+v", report.Summary)
	}
}

func TestCheckText_MissingTerms(t *testing.T) {
	checker := newTestChecker(t)

	rules := []model.MasterRule{
		{Term: "Maturity Date"},
		{Term: "Principal"},
	}

	report, err := checker.CheckText(context.Background(), "Principal: $500,000", rules)
	if err != nil {
		t.Fatalf("CheckText failed: %v", err)
	}

	if len(report.Records) != 2 {
		t.Fatalf("Expected 2 records, got %+v", report.Records)
	}
	byTerm := make(map[string]model.ValidationRecord)
	for _, rec := range report.Records {
		byTerm[rec.Term] = rec
	}
	if byTerm["Principal"].Status != model.StatusValid {
		t.Errorf("Expected Principal valid, got %+v", byTerm["Principal"])
	}
	if byTerm["Maturity Date"].Status != model.StatusMissing {
		t.Errorf("Expected Maturity Date missing, got %+v", byTerm["Maturity Date"])
	}
	if byTerm["Maturity Date"].ExtractedValue != model.MissingValue {
		t.Errorf("Expected extracted value %q, got %q",
			model.MissingValue, byTerm["Maturity Date"].ExtractedValue)
	}
}

func TestCheckText_UnknownTermSurfaces(t *testing.T) {
	checker := newTestChecker(t)

	report, err := checker.CheckText(
		context.Background(),
		"Collateral: First lien on all assets",
		[]model.MasterRule{{Term: "Interest Rate", ExpectedValue: "5.5"}},
	)
	if err != nil {
		t.Fatalf("CheckText failed: %v", err)
	}

	var unknown int
	for _, rec := range report.Records {
		if rec.Status == model.StatusUnknown {
			unknown++
		}
	}
	if unknown != 1 {
		t.Errorf("Expected 1 unknown record, got %+v", report.Records)
	}
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	termPath := filepath.Join(dir, "sheet.txt")
	masterPath := filepath.Join(dir, "master.csv")

	if err := os.WriteFile(termPath, []byte("Interest Rate: 5.5%"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(masterPath, []byte("Term,Expected Value\nInterest Rate,5.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	checker := newTestChecker(t)
	report, err := checker.CheckFiles(context.Background(), termPath, masterPath)
	if err != nil {
		t.Fatalf("CheckFiles failed: %v", err)
	}

	if report.TermSheet != termPath || report.MasterSheet != masterPath {
		t.Errorf("Expected source paths recorded, got %+v", report)
	}
	if report.Summary.Valid != 1 {
		t.Errorf("Expected 1 valid record, got %+v", report.Summary)
	}
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	checker := newTestChecker(t)
	report, err := checker.CheckText(
		context.Background(),
		"Interest Rate: 5.5%",
		[]model.MasterRule{{Term: "Interest Rate", ExpectedValue: "5.5"}},
	)
	if err != nil {
		t.Fatalf("CheckText failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := NewRenderer(false).RenderJSON(report, path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if _, ok := decoded["records"]; !ok {
		t.Errorf("Expected a records field, got keys %v", decoded)
	}
}

func TestRenderMarkdown(t *testing.T) {
	checker := newTestChecker(t)
	report, err := checker.CheckText(
		context.Background(),
		"Interest Rate: 5.5%",
		[]model.MasterRule{{Term: "Interest Rate", ExpectedValue: "9.9"}},
	)
	if err != nil {
		t.Fatalf("CheckText failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.md")
	if err := NewRenderer(true).RenderMarkdown(report, path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	if !strings.Contains(out, "| Interest Rate |") {
		t.Errorf("Expected a results row for Interest Rate, got:\n%s", out)
	}
	if !strings.Contains(out, "❌") {
		t.Errorf("Expected an invalid glyph, got:\n%s", out)
	}
	if !strings.Contains(out, "Generated by termsheet") {
		t.Errorf("Expected the footer, got:\n%s", out)
	}
}
