package analysis

import (
	"context"
	"log/slog"

	"doclens/internal/models"
)

// Candidate is one backend that may serve the analysis capabilities. A
// nil Provider means the candidate is absent (not configured or failed
// to initialize); the resolver skips it instead of failing.
type Candidate struct {
	Kind     BindingKind
	Provider Provider
}

// Prober is optionally implemented by providers whose availability can
// only be checked at runtime. A probe error downgrades the candidate to
// absent with a warning; it never aborts startup.
type Prober interface {
	Probe(ctx context.Context) error
}

// Resolve walks the candidates in priority order and records, per
// capability, the first one that is present. The local candidate is
// expected first, so it always wins over inference when both exist.
// Resolution happens once per process; the result is immutable.
func Resolve(ctx context.Context, candidates []Candidate, log *slog.Logger) Bindings {
	capabilities := []models.Capability{
		models.CapabilitySummarize,
		models.CapabilityEntities,
	}

	bindings := make(Bindings, len(capabilities))
	for _, capability := range capabilities {
		bindings[capability] = Binding{Kind: BindingUnavailable}
	}

	var available []Candidate
	for _, candidate := range candidates {
		if candidate.Provider == nil {
			continue
		}

		if prober, ok := candidate.Provider.(Prober); ok {
			if err := prober.Probe(ctx); err != nil {
				log.WarnContext(ctx, "Analysis backend probe failed",
					"error", err,
					"provider", candidate.Provider.Name(),
					"kind", candidate.Kind.String())

				continue
			}
		}

		available = append(available, candidate)
	}

	for _, capability := range capabilities {
		for _, candidate := range available {
			bindings[capability] = Binding{
				Kind:     candidate.Kind,
				Provider: candidate.Provider,
			}

			break
		}

		binding := bindings[capability]
		if binding.Kind == BindingUnavailable {
			log.WarnContext(ctx, "No analysis backend available",
				"capability", string(capability))

			continue
		}

		log.InfoContext(ctx, "Analysis backend resolved",
			"capability", string(capability),
			"provider", binding.Provider.Name(),
			"kind", binding.Kind.String())
	}

	return bindings
}
