// Package artefact models the plugin host side of artefact discovery: candidate
// type descriptors, the handlers that classify them, and the registry that records
// accepted artefacts per category.
package artefact

// Classifier decides whether a type belongs to an artefact category
type Classifier interface {
	Classify(t TypeDescriptor) bool
}

// Grouper assigns accepted artefacts to a group within their category
type Grouper interface {
	Group(t TypeDescriptor) string
}

// Handler is a Classifier registered under a named artefact category
type Handler interface {
	Classifier

	// Type returns the category name accepted types are registered under
	Type() string

	// Capability returns the marker capability the category requires
	Capability() Capability

	// DefaultImplementation names the fallback type for an empty category
	DefaultImplementation() string

	// Grouper returns the grouping delegate, or nil when there is none
	Grouper() Grouper
}

// Logger is the diagnostic sink handlers write to
type Logger interface {
	Printf(format string, v ...any)
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}

// DiscardLogger returns a Logger that drops every line
func DiscardLogger() Logger {
	return discardLogger{}
}
