package analysis

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"doclens/internal/models"
)

type stubProvider struct {
	name     string
	probeErr error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Summarize(_ context.Context, _ string) (string, error) {
	return "summary", nil
}

func (s *stubProvider) ExtractEntities(_ context.Context, _ string) ([]models.Entity, error) {
	return nil, nil
}

func (s *stubProvider) Probe(_ context.Context) error { return s.probeErr }

func TestResolveLocalWinsOverInference(t *testing.T) {
	local := &stubProvider{name: "local"}
	inference := &stubProvider{name: "openai"}

	bindings := Resolve(context.Background(), []Candidate{
		{Kind: BindingLocal, Provider: local},
		{Kind: BindingInference, Provider: inference},
	}, slog.Default())

	for _, capability := range []models.Capability{models.CapabilitySummarize, models.CapabilityEntities} {
		binding := bindings[capability]
		if binding.Kind != BindingLocal {
			t.Errorf("Expected local binding for %s, got %s", capability, binding.Kind)
		}
		if binding.Provider != Provider(local) {
			t.Errorf("Expected local provider for %s", capability)
		}
	}
}

func TestResolveFallsBackToInference(t *testing.T) {
	inference := &stubProvider{name: "openai"}

	bindings := Resolve(context.Background(), []Candidate{
		{Kind: BindingLocal, Provider: nil},
		{Kind: BindingInference, Provider: inference},
	}, slog.Default())

	if bindings[models.CapabilitySummarize].Kind != BindingInference {
		t.Errorf("Expected inference binding, got %s", bindings[models.CapabilitySummarize].Kind)
	}
}

func TestResolveAllAbsent(t *testing.T) {
	bindings := Resolve(context.Background(), []Candidate{
		{Kind: BindingLocal, Provider: nil},
		{Kind: BindingInference, Provider: nil},
	}, slog.Default())

	for capability, binding := range bindings {
		if binding.Kind != BindingUnavailable {
			t.Errorf("Expected unavailable binding for %s, got %s", capability, binding.Kind)
		}
		if binding.Provider != nil {
			t.Errorf("Expected nil provider for %s", capability)
		}
	}
}

func TestResolveProbeFailureDowngrades(t *testing.T) {
	local := &stubProvider{name: "local", probeErr: errors.New("boom")}
	inference := &stubProvider{name: "openai"}

	bindings := Resolve(context.Background(), []Candidate{
		{Kind: BindingLocal, Provider: local},
		{Kind: BindingInference, Provider: inference},
	}, slog.Default())

	if bindings[models.CapabilitySummarize].Kind != BindingInference {
		t.Errorf("Expected probe failure to fall through to inference, got %s",
			bindings[models.CapabilitySummarize].Kind)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	candidates := []Candidate{
		{Kind: BindingLocal, Provider: &stubProvider{name: "local"}},
	}

	first := Resolve(context.Background(), candidates, slog.Default())
	second := Resolve(context.Background(), candidates, slog.Default())

	for capability, binding := range first {
		if second[capability] != binding {
			t.Errorf("Expected identical binding for %s on repeated resolution", capability)
		}
	}
}
