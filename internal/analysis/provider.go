// Package analysis selects an analysis backend per capability and routes
// extracted text through it.
package analysis

import (
	"context"

	"doclens/internal/models"
)

// Provider serves both analysis capabilities over plain text.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, text string) (string, error)
	ExtractEntities(ctx context.Context, text string) ([]models.Entity, error)
}

// BindingKind tags which backend serves a capability.
type BindingKind int

const (
	BindingUnavailable BindingKind = iota
	BindingLocal
	BindingInference
)

func (k BindingKind) String() string {
	switch k {
	case BindingLocal:
		return "local"
	case BindingInference:
		return "inference"
	case BindingUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Binding is the resolved backend choice for one capability. Kind is
// BindingUnavailable exactly when Provider is nil.
type Binding struct {
	Kind     BindingKind
	Provider Provider
}

// Bindings maps each capability to its resolved backend. Built once at
// startup and read-only afterwards, so concurrent reads need no locking.
type Bindings map[models.Capability]Binding
