package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"doclens/internal/models"
)

// ErrEmptyText is returned when an analysis is requested for empty
// extracted text. No AnalysisResult is ever produced from empty text.
var ErrEmptyText = errors.New("extracted text is empty")

// UnavailableError names the capability that has no backend plus both
// remediation paths.
type UnavailableError struct {
	Capability models.Capability
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf(
		"no %s backend available; set OPENAI_API_KEY or enable LOCAL_ANALYSIS",
		string(e.Capability),
	)
}

// Orchestrator routes analysis requests to the backend each capability
// was bound to at startup.
type Orchestrator struct {
	bindings Bindings
	log      *slog.Logger
}

func NewOrchestrator(bindings Bindings, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		bindings: bindings,
		log:      log,
	}
}

// Binding exposes the resolved backend for a capability, for startup
// logging.
func (o *Orchestrator) Binding(capability models.Capability) Binding {
	return o.bindings[capability]
}

// Run performs one analysis operation on the extracted text. Backend
// faults come back as errors; callers present them to the user instead
// of crashing.
func (o *Orchestrator) Run(
	ctx context.Context,
	capability models.Capability,
	text string,
) (*models.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	binding := o.bindings[capability]
	if binding.Kind == BindingUnavailable || binding.Provider == nil {
		return nil, &UnavailableError{Capability: capability}
	}

	switch capability {
	case models.CapabilitySummarize:
		summary, err := o.summarize(ctx, binding, text)
		if err != nil {
			return nil, err
		}

		return &models.AnalysisResult{
			Capability: capability,
			Summary:    summary,
		}, nil

	case models.CapabilityEntities:
		entities, err := binding.Provider.ExtractEntities(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("extract entities via %s: %w", binding.Provider.Name(), err)
		}

		return &models.AnalysisResult{
			Capability: capability,
			Entities:   entities,
		}, nil

	default:
		return nil, fmt.Errorf("unknown capability %q", string(capability))
	}
}

// summarize hands the full text to a local backend, which is trusted with
// arbitrary-length input. The inference backend gets fixed-size chunks
// whose summaries are rejoined in order, separated by blank lines.
func (o *Orchestrator) summarize(
	ctx context.Context,
	binding Binding,
	text string,
) (string, error) {
	if binding.Kind != BindingInference {
		summary, err := binding.Provider.Summarize(ctx, text)
		if err != nil {
			return "", fmt.Errorf("summarize via %s: %w", binding.Provider.Name(), err)
		}

		return summary, nil
	}

	chunks := splitChunks(text, MaxChunkChars)

	o.log.InfoContext(ctx, "Summarizing in chunks",
		"provider", binding.Provider.Name(),
		"chunkCount", len(chunks),
		"textLen", len(text))

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := binding.Provider.Summarize(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf(
				"summarize chunk %d of %d via %s: %w",
				i+1, len(chunks), binding.Provider.Name(), err,
			)
		}

		summaries = append(summaries, strings.TrimSpace(summary))
	}

	return strings.Join(summaries, "\n\n"), nil
}
