package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"doclens/internal/models"
)

type countingProvider struct {
	mu            sync.Mutex
	summarizeIn   []string
	entitiesCalls int
	summarizeErr  error
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Summarize(_ context.Context, text string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.summarizeErr != nil {
		return "", p.summarizeErr
	}

	p.summarizeIn = append(p.summarizeIn, text)

	return fmt.Sprintf("summary-%d", len(p.summarizeIn)), nil
}

func (p *countingProvider) ExtractEntities(_ context.Context, text string) ([]models.Entity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entitiesCalls++

	return []models.Entity{{Text: text[:1], Label: "MISC", Score: 1}}, nil
}

func inferenceBindings(p Provider) Bindings {
	return Bindings{
		models.CapabilitySummarize: {Kind: BindingInference, Provider: p},
		models.CapabilityEntities:  {Kind: BindingInference, Provider: p},
	}
}

func TestRunEmptyText(t *testing.T) {
	o := NewOrchestrator(inferenceBindings(&countingProvider{}), slog.Default())

	if _, err := o.Run(context.Background(), models.CapabilitySummarize, "   "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestRunUnavailable(t *testing.T) {
	o := NewOrchestrator(Bindings{
		models.CapabilitySummarize: {Kind: BindingUnavailable},
		models.CapabilityEntities:  {Kind: BindingUnavailable},
	}, slog.Default())

	_, err := o.Run(context.Background(), models.CapabilitySummarize, "text")

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}

	if unavailable.Capability != models.CapabilitySummarize {
		t.Errorf("Expected summarize capability in error, got %s", unavailable.Capability)
	}

	if !strings.Contains(err.Error(), "OPENAI_API_KEY") || !strings.Contains(err.Error(), "LOCAL_ANALYSIS") {
		t.Errorf("expected error to name both remediation paths, got %q", err.Error())
	}
}

func TestRunSummarizeChunksInOrder(t *testing.T) {
	provider := &countingProvider{}
	o := NewOrchestrator(inferenceBindings(provider), slog.Default())

	text := strings.Repeat("a", 2500)

	result, err := o.Run(context.Background(), models.CapabilitySummarize, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.summarizeIn) != 3 {
		t.Fatalf("expected 3 chunk calls, got %d", len(provider.summarizeIn))
	}

	wantLens := []int{1000, 1000, 500}
	for i, in := range provider.summarizeIn {
		if len(in) != wantLens[i] {
			t.Errorf("Expected chunk %d of length %d, got %d", i, wantLens[i], len(in))
		}
	}

	want := "summary-1\n\nsummary-2\n\nsummary-3"
	if result.Summary != want {
		t.Errorf("Expected %q, got %q", want, result.Summary)
	}
}

func TestRunSummarizeLocalGetsFullText(t *testing.T) {
	provider := &countingProvider{}
	o := NewOrchestrator(Bindings{
		models.CapabilitySummarize: {Kind: BindingLocal, Provider: provider},
	}, slog.Default())

	text := strings.Repeat("b", 2500)

	if _, err := o.Run(context.Background(), models.CapabilitySummarize, text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.summarizeIn) != 1 {
		t.Fatalf("expected a single call for local backend, got %d", len(provider.summarizeIn))
	}

	if len(provider.summarizeIn[0]) != len(text) {
		t.Errorf("Expected full text, got %d chars", len(provider.summarizeIn[0]))
	}
}

func TestRunEntitiesSingleCall(t *testing.T) {
	provider := &countingProvider{}
	o := NewOrchestrator(inferenceBindings(provider), slog.Default())

	text := strings.Repeat("c", 2500)

	result, err := o.Run(context.Background(), models.CapabilityEntities, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.entitiesCalls != 1 {
		t.Fatalf("expected entities to run once on the full text, got %d calls", provider.entitiesCalls)
	}

	if len(result.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(result.Entities))
	}
}

func TestRunSummarizeChunkFaultPropagates(t *testing.T) {
	provider := &countingProvider{summarizeErr: errors.New("model exploded")}
	o := NewOrchestrator(inferenceBindings(provider), slog.Default())

	_, err := o.Run(context.Background(), models.CapabilitySummarize, "some text")
	if err == nil {
		t.Fatalf("expected error")
	}

	if !strings.Contains(err.Error(), "model exploded") {
		t.Errorf("expected wrapped backend fault, got %v", err)
	}
}
