package local_test

import (
	"context"
	"strings"
	"testing"

	"doclens/internal/analysis/local"
	"doclens/internal/models"
)

func TestSummarizeShortTextKeptWhole(t *testing.T) {
	p := local.New()

	text := "The first clause applies. The second clause does not."

	got, err := p.Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got, "first clause") || !strings.Contains(got, "second clause") {
		t.Errorf("expected short input to be kept whole, got %q", got)
	}
}

func TestSummarizeEmptyText(t *testing.T) {
	p := local.New()

	if _, err := p.Summarize(context.Background(), "   \n  "); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestSummarizeSelectsAndPreservesOrder(t *testing.T) {
	p := local.New()

	var b strings.Builder
	b.WriteString("Alpha payment payment payment terms first. ")
	b.WriteString("One ordinary unremarkable line. ")
	b.WriteString("Two mundane plain words. ")
	b.WriteString("Three dull simple items. ")
	b.WriteString("Four bland boring pieces. ")
	b.WriteString("Five common trivial parts. ")
	b.WriteString("Six basic generic bits. ")
	b.WriteString("Zulu payment payment payment terms last. ")

	got, err := p.Summarize(context.Background(), b.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alpha := strings.Index(got, "Alpha")
	zulu := strings.Index(got, "Zulu")
	if alpha == -1 || zulu == -1 {
		t.Fatalf("expected high-frequency sentences to be selected, got %q", got)
	}

	if alpha > zulu {
		t.Errorf("expected original sentence order to be preserved, got %q", got)
	}
}

func findEntity(entities []models.Entity, label string, substr string) bool {
	for _, e := range entities {
		if e.Label == label && strings.Contains(e.Text, substr) {
			return true
		}
	}

	return false
}

func TestExtractEntitiesPatterns(t *testing.T) {
	p := local.New()

	text := "On January 5, 2024 Acme Holdings LLC paid $1,250,000 to John Smith. " +
		"Contact legal@acme.example or see https://acme.example/contract for details."

	entities, err := p.ExtractEntities(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		label  string
		substr string
	}{
		{"DATE", "January 5, 2024"},
		{"MONEY", "$1,250,000"},
		{"EMAIL", "legal@acme.example"},
		{"URL", "https://acme.example/contract"},
		{"ORG", "Acme Holdings LLC"},
		{"PER", "John Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if !findEntity(entities, tt.label, tt.substr) {
				t.Errorf("Expected %s entity containing %q, got %v", tt.label, tt.substr, entities)
			}
		})
	}
}

func TestExtractEntitiesDeduplicates(t *testing.T) {
	p := local.New()

	text := "Payment of $100 now and $100 later."

	entities, err := p.ExtractEntities(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for _, e := range entities {
		if e.Label == "MONEY" {
			count++
		}
	}

	if count != 1 {
		t.Errorf("Expected 1 deduplicated MONEY entity, got %d", count)
	}
}

func TestExtractEntitiesEmptyText(t *testing.T) {
	p := local.New()

	entities, err := p.ExtractEntities(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entities) != 0 {
		t.Errorf("Expected no entities, got %v", entities)
	}
}
