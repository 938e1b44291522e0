// Package migration decides which candidate types are Migration artefacts.
//
// A type qualifies when it declares the Migrate capability and exposes exactly
// one public constructor, taking no arguments.
package migration

import "smig.dev/cli/internal/core/artefact"

const (
	// ArtefactType is the category accepted types are registered under
	ArtefactType = "Migration"

	// CapabilityMigrate is the marker capability a migration must declare
	CapabilityMigrate artefact.Capability = "Migrate"

	// DefaultImplementation is the fallback type for an empty Migration category
	DefaultImplementation = "DefaultMigrationClass"

	// Diagnostic is logged when a Migrate type has the wrong constructor shape
	Diagnostic = "The migration class will be ignored. A migration plugin should only have the default constructor."
)

// Handler classifies Migration artefacts
type Handler struct {
	logger artefact.Logger
}

// NewHandler creates a handler writing diagnostics to logger.
// A nil logger discards them.
func NewHandler(logger artefact.Logger) *Handler {
	if logger == nil {
		logger = artefact.DiscardLogger()
	}
	return &Handler{logger: logger}
}

// Classify reports whether t is a Migration artefact
func (h *Handler) Classify(t artefact.TypeDescriptor) bool {
	if artefact.IsAbsent(t) {
		return false
	}

	if !t.Implements(CapabilityMigrate) {
		return false
	}

	ctors := t.Constructors()
	if len(ctors) != 1 || !ctors[0].IsDefault() {
		h.logger.Printf("%s: %s", t.Name(), Diagnostic)
		return false
	}

	return true
}

// Type returns the Migration category name
func (h *Handler) Type() string { return ArtefactType }

// Capability returns the Migrate marker capability
func (h *Handler) Capability() artefact.Capability { return CapabilityMigrate }

// DefaultImplementation returns the fallback migration type
func (h *Handler) DefaultImplementation() string { return DefaultImplementation }

// Grouper returns nil; migrations are not grouped
func (h *Handler) Grouper() artefact.Grouper { return nil }

// Describe builds a descriptor that already declares the Migrate capability
func Describe(name string, ctors ...artefact.Constructor) *artefact.Descriptor {
	return artefact.NewDescriptor(name, []artefact.Capability{CapabilityMigrate}, ctors...)
}

var _ artefact.Handler = (*Handler)(nil)
