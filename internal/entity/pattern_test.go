package entity

import (
	"context"
	"testing"
)

func recognize(t *testing.T, text string) []Entity {
	t.Helper()
	ents, err := NewPatternRecognizer().Recognize(context.Background(), text)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	return ents
}

func findByLabel(ents []Entity, label Label) (Entity, bool) {
	for _, e := range ents {
		if e.Label == label {
			return e, true
		}
	}
	return Entity{}, false
}

func TestPatternRecognizer_Dates(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"due on 2030-01-01 at par", "2030-01-01"},
		{"due on 15/06/2030 at par", "15/06/2030"},
		{"due on June 15, 2030 at par", "June 15, 2030"},
		{"due on 15th June 2030 at par", "15th June 2030"},
		{"due in March 2030 at par", "March 2030"},
	}

	for _, tt := range tests {
		ent, ok := findByLabel(recognize(t, tt.text), LabelDate)
		if !ok {
			t.Errorf("Text %q: expected a date entity", tt.text)
			continue
		}
		if ent.Text != tt.want {
			t.Errorf("Text %q: expected %q, got %q", tt.text, tt.want, ent.Text)
		}
	}
}

func TestPatternRecognizer_PercentAndMoney(t *testing.T) {
	ents := recognize(t, "rate of 5.5% on a principal of $1,000,000 plus 2 million in fees")

	pct, ok := findByLabel(ents, LabelPercent)
	if !ok || pct.Text != "5.5%" {
		t.Errorf("Expected percent entity '5.5%%', got %+v", pct)
	}

	var money []Entity
	for _, e := range ents {
		if e.Label == LabelMoney {
			money = append(money, e)
		}
	}
	if len(money) != 2 {
		t.Fatalf("Expected 2 money entities, got %+v", money)
	}
	if money[0].Text != "$1,000,000" || money[1].Text != "2 million" {
		t.Errorf("Unexpected money entities: %q, %q", money[0].Text, money[1].Text)
	}
}

func TestPatternRecognizer_Organizations(t *testing.T) {
	ent, ok := findByLabel(recognize(t, "payable to Acme Capital Ltd under this agreement"), LabelOrg)
	if !ok {
		t.Fatal("Expected an organization entity")
	}
	if ent.Text != "Acme Capital Ltd" {
		t.Errorf("Expected 'Acme Capital Ltd', got %q", ent.Text)
	}
}

func TestPatternRecognizer_OrderedByStart(t *testing.T) {
	ents := recognize(t, "First Bank lends $500,000 at 4.0% until 2030-01-01")
	for i := 1; i < len(ents); i++ {
		if ents[i].Start < ents[i-1].Start {
			t.Fatalf("Entities not ordered by start offset: %+v", ents)
		}
	}
	if len(ents) < 3 {
		t.Errorf("Expected at least 3 entities, got %+v", ents)
	}
}

func TestPatternRecognizer_NoOverlappingSpans(t *testing.T) {
	// "5.5%" must surface once as a percent, not again as part of a
	// money or date match.
	ents := recognize(t, "coupon 5.5% per annum")
	if len(ents) != 1 {
		t.Fatalf("Expected exactly 1 entity, got %+v", ents)
	}
	if ents[0].Label != LabelPercent {
		t.Errorf("Expected percent label, got %s", ents[0].Label)
	}
}

func TestPatternRecognizer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewPatternRecognizer().Recognize(ctx, "anything"); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}
