package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestReadTermSheet_PlainText(t *testing.T) {
	path := writeFile(t, "sheet.txt", "Interest Rate: 5.5%\nMaturity Date: 2030-01-01")

	text, err := ReadTermSheet(path, 0)
	if err != nil {
		t.Fatalf("ReadTermSheet failed: %v", err)
	}
	if !strings.Contains(text, "Interest Rate: 5.5%") {
		t.Errorf("Expected verbatim text, got %q", text)
	}
}

func TestReadTermSheet_HTML(t *testing.T) {
	doc := `<html><head><script>var x = 1;</script><style>body{}</style></head>
<body><h1>Term Sheet</h1><p>Interest Rate: 5.5%</p><p>Maturity Date: 2030-01-01</p></body></html>`
	path := writeFile(t, "sheet.html", doc)

	text, err := ReadTermSheet(path, 0)
	if err != nil {
		t.Fatalf("ReadTermSheet failed: %v", err)
	}

	if strings.Contains(text, "var x") || strings.Contains(text, "body{}") {
		t.Errorf("Expected script and style content dropped, got %q", text)
	}

	// Block elements become line boundaries so the key/value lines survive.
	var found bool
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "Interest Rate: 5.5%" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'Interest Rate: 5.5%%' on its own line, got %q", text)
	}
}

func TestReadTermSheet_RespectsMaxBytes(t *testing.T) {
	path := writeFile(t, "sheet.txt", strings.Repeat("x", 100))

	text, err := ReadTermSheet(path, 10)
	if err != nil {
		t.Fatalf("ReadTermSheet failed: %v", err)
	}
	if len(text) != 10 {
		t.Errorf("Expected 10 bytes, got %d", len(text))
	}
}

func TestReadMasterSheet_CSV(t *testing.T) {
	path := writeFile(t, "master.csv",
		"Term,Expected Value,Allowed Range\n"+
			"Interest Rate,5.5,4.5-6.0\n"+
			"Maturity Date,,≥2025-01-01\n"+
			",ignored,\n")

	rules, err := ReadMasterSheet(path)
	if err != nil {
		t.Fatalf("ReadMasterSheet failed: %v", err)
	}

	if len(rules) != 2 {
		t.Fatalf("Expected 2 rules (blank term skipped), got %d", len(rules))
	}
	if rules[0].Term != "Interest Rate" || rules[0].ExpectedValue != "5.5" || rules[0].AllowedRange != "4.5-6.0" {
		t.Errorf("Unexpected first rule: %+v", rules[0])
	}
	if rules[1].Term != "Maturity Date" || rules[1].AllowedRange != "≥2025-01-01" {
		t.Errorf("Unexpected second rule: %+v", rules[1])
	}
}

func TestReadMasterSheet_TSV(t *testing.T) {
	path := writeFile(t, "master.tsv", "Term\tExpected Value\nCurrency\tUSD\n")

	rules, err := ReadMasterSheet(path)
	if err != nil {
		t.Fatalf("ReadMasterSheet failed: %v", err)
	}
	if len(rules) != 1 || rules[0].Term != "Currency" || rules[0].ExpectedValue != "USD" {
		t.Errorf("Unexpected rules: %+v", rules)
	}
}

func TestReadMasterSheet_YAML(t *testing.T) {
	path := writeFile(t, "master.yaml",
		"- term: Interest Rate\n  expected_value: \"5.5\"\n  allowed_range: 4.5-6.0\n"+
			"- term: \"\"\n  expected_value: dropped\n")

	rules, err := ReadMasterSheet(path)
	if err != nil {
		t.Fatalf("ReadMasterSheet failed: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(rules))
	}
	if rules[0].Term != "Interest Rate" || rules[0].AllowedRange != "4.5-6.0" {
		t.Errorf("Unexpected rule: %+v", rules[0])
	}
}

func TestReadMasterSheet_UnsupportedExtension(t *testing.T) {
	if _, err := ReadMasterSheet("master.xlsx"); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}

func TestReadMasterSheet_HeaderOnly(t *testing.T) {
	path := writeFile(t, "master.csv", "Term,Expected Value\n")
	if _, err := ReadMasterSheet(path); err == nil {
		t.Error("Expected an error for a header-only sheet")
	}
}

func TestResolveTermColumn(t *testing.T) {
	tests := []struct {
		headers []string
		want    int
	}{
		{[]string{"Term", "Expected Value"}, 0},
		{[]string{"Expected Value", "Term"}, 1},
		{[]string{"Key Terms", "Expected"}, 0},  // substring fallback
		{[]string{"Name", "Value"}, 0},          // first column fallback
		{[]string{"Expected", "term ", "Allowed"}, 1},
	}

	for _, tt := range tests {
		if got := resolveTermColumn(tt.headers); got != tt.want {
			t.Errorf("resolveTermColumn(%v) = %d, expected %d", tt.headers, got, tt.want)
		}
	}
}

func TestVisibleText_TableRows(t *testing.T) {
	doc := `<table><tr><td>Principal</td><td>$1,000,000</td></tr></table>`

	text, err := VisibleText(doc)
	if err != nil {
		t.Fatalf("VisibleText failed: %v", err)
	}
	if !strings.Contains(text, "Principal") || !strings.Contains(text, "$1,000,000") {
		t.Errorf("Expected table cell text preserved, got %q", text)
	}
}
