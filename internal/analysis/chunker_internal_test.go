package analysis

import (
	"strings"
	"testing"
)

func TestSplitChunksBoundaries(t *testing.T) {
	text := strings.Repeat("a", 2500)

	chunks := splitChunks(text, 1000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	wantLens := []int{1000, 1000, 500}
	for i, chunk := range chunks {
		if len(chunk) != wantLens[i] {
			t.Errorf("Expected chunk %d length %d, got %d", i, wantLens[i], len(chunk))
		}
	}

	if strings.Join(chunks, "") != text {
		t.Fatalf("expected chunks to rejoin into the original text")
	}
}

func TestSplitChunksExactMultiple(t *testing.T) {
	chunks := splitChunks(strings.Repeat("b", 2000), 1000)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
}

func TestSplitChunksShortText(t *testing.T) {
	chunks := splitChunks("short", 1000)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Fatalf("expected single chunk with full text, got %v", chunks)
	}
}

func TestSplitChunksEmpty(t *testing.T) {
	if chunks := splitChunks("", 1000); chunks != nil {
		t.Fatalf("expected nil for empty text, got %v", chunks)
	}
}

func TestSplitChunksCountsRunes(t *testing.T) {
	text := strings.Repeat("é", 1500)

	chunks := splitChunks(text, 1000)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	if got := len([]rune(chunks[0])); got != 1000 {
		t.Errorf("Expected 1000 runes in first chunk, got %d", got)
	}

	if strings.Join(chunks, "") != text {
		t.Fatalf("expected multi-byte runes to survive chunking intact")
	}
}
