package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
)

// Renderer writes reports as JSON and Markdown and prints terminal
// summaries. Rendering never alters the records it is handed.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Term Sheet Validation Report\n\n")
	if report.TermSheet != "" {
		fmt.Fprintf(&b, "- **Term sheet:** %s\n", report.TermSheet)
	}
	if report.MasterSheet != "" {
		fmt.Fprintf(&b, "- **Master sheet:** %s\n", report.MasterSheet)
	}
	fmt.Fprintf(&b, "- **Checked:** %s\n\n", report.CheckedAt.Format("2006-01-02 15:04:05 UTC"))

	s := report.Summary
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Total | Valid | Invalid | Unknown | Missing |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n", s.Total, s.Valid, s.Invalid, s.Unknown, s.Missing)

	b.WriteString("## Results\n\n")
	b.WriteString("| Term | Extracted Value | Status | Expected Value | Allowed Range | Notes |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, rec := range report.Records {
		fmt.Fprintf(&b, "| %s | %s | %s %s | %s | %s | %s |\n",
			mdCell(rec.Term), mdCell(rec.ExtractedValue), statusGlyph(rec.Status), rec.Status,
			mdCell(rec.ExpectedValue), mdCell(rec.AllowedRange), mdCell(rec.Notes))
	}

	if r.includeFooter {
		b.WriteString("\n---\n*Generated by termsheet*\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderSummary prints per-status counts to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	s := report.Summary
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  Validation Summary")
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Total terms:   %d\n", s.Total)
	fmt.Printf("  ✅ Valid:      %d\n", s.Valid)
	fmt.Printf("  ❌ Invalid:    %d\n", s.Invalid)
	fmt.Printf("  ❓ Unknown:    %d\n", s.Unknown)
	fmt.Printf("  ⚠️  Missing:    %d\n", s.Missing)
	fmt.Println()
}

func statusGlyph(s model.Status) string {
	switch s {
	case model.StatusValid:
		return "✅"
	case model.StatusInvalid:
		return "❌"
	case model.StatusMissing:
		return "⚠️"
	default:
		return "❓"
	}
}

// mdCell escapes pipes so free text cannot break the table
func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
