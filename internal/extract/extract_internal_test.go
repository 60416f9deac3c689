package extract

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{"two pages", []string{"first", "second"}, "first\nsecond"},
		{"empty middle page keeps order", []string{"first", "", "third"}, "first\n\nthird"},
		{"all empty", []string{"", "", ""}, ""},
		{"surrounding whitespace trimmed", []string{"  first  "}, "first"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinPages(tt.pages); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractEmptyInputDoesNotPanic(t *testing.T) {
	e := New("eng", slog.Default())

	_, err := e.Extract(context.Background(), nil, false)
	if err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestExtractGarbageInput(t *testing.T) {
	e := New("eng", slog.Default())

	_, err := e.Extract(context.Background(), []byte("not a pdf at all"), true)
	if err == nil {
		t.Fatalf("expected error for garbage input")
	}

	if errors.Is(err, ErrNoExtractableText) {
		t.Fatalf("expected a parse failure, got %v", err)
	}
}

func TestNewDefaultsLanguage(t *testing.T) {
	e := New("  ", slog.Default())

	if e.ocrLanguage != "eng" {
		t.Errorf("Expected eng, got %q", e.ocrLanguage)
	}
}
