package entity

import (
	"testing"

	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
)

func TestParseEntityJSON_AnchorsSpans(t *testing.T) {
	source := "Rate of 5.5% due 2030-01-01 paid to Acme Ltd"
	content := `[
		{"label": "PERCENT", "text": "5.5%"},
		{"label": "DATE", "text": "2030-01-01"},
		{"label": "ORG", "text": "Acme Ltd"}
	]`

	ents, err := parseEntityJSON(content, source)
	if err != nil {
		t.Fatalf("parseEntityJSON failed: %v", err)
	}
	if len(ents) != 3 {
		t.Fatalf("Expected 3 entities, got %+v", ents)
	}
	if ents[0].Text != "5.5%" || ents[0].Start != 8 {
		t.Errorf("Unexpected first entity: %+v", ents[0])
	}
	for i := 1; i < len(ents); i++ {
		if ents[i].Start < ents[i-1].Start {
			t.Errorf("Entities not ordered by start: %+v", ents)
		}
	}
}

func TestParseEntityJSON_StripsCodeFence(t *testing.T) {
	source := "Rate of 5.5%"
	content := "```json\n[{\"label\": \"PERCENT\", \"text\": \"5.5%\"}]\n```"

	ents, err := parseEntityJSON(content, source)
	if err != nil {
		t.Fatalf("parseEntityJSON failed: %v", err)
	}
	if len(ents) != 1 || ents[0].Text != "5.5%" {
		t.Errorf("Expected the fenced array decoded, got %+v", ents)
	}
}

func TestParseEntityJSON_DiscardsFabricatedSpans(t *testing.T) {
	ents, err := parseEntityJSON(
		`[{"label": "DATE", "text": "2099-12-31"}, {"label": "BOGUS", "text": "x"}]`,
		"nothing relevant here",
	)
	if err != nil {
		t.Fatalf("parseEntityJSON failed: %v", err)
	}
	if len(ents) != 0 {
		t.Errorf("Expected fabricated and unknown-label spans dropped, got %+v", ents)
	}
}

func TestParseEntityJSON_RepeatedSpansAdvance(t *testing.T) {
	source := "fee 5% then 5% again"
	content := `[{"label": "PERCENT", "text": "5%"}, {"label": "PERCENT", "text": "5%"}]`

	ents, err := parseEntityJSON(content, source)
	if err != nil {
		t.Fatalf("parseEntityJSON failed: %v", err)
	}
	if len(ents) != 2 {
		t.Fatalf("Expected 2 entities, got %+v", ents)
	}
	if ents[0].Start == ents[1].Start {
		t.Errorf("Expected distinct offsets for repeated spans, got %+v", ents)
	}
}

func TestParseEntityJSON_MalformedResponse(t *testing.T) {
	if _, err := parseEntityJSON("the document mentions several dates", "x"); err == nil {
		t.Error("Expected an error for a non-JSON response")
	}
}

func TestNewRecognizer_Providers(t *testing.T) {
	if r, err := NewRecognizer(model.EntityConfig{}, nil); err != nil || r.Name() != "pattern" {
		t.Errorf("Expected the pattern recognizer by default, got %v, %v", r, err)
	}

	if _, err := NewRecognizer(model.EntityConfig{Provider: "openai"}, nil); err == nil {
		t.Error("Expected an error for the openai provider without an API key")
	}

	if _, err := NewRecognizer(model.EntityConfig{Provider: "unheard-of"}, nil); err == nil {
		t.Error("Expected an error for an unknown provider")
	}
}
