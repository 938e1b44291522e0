package artefact

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

var (
	// ErrNilHandler is returned when registering a nil handler
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrDuplicateHandler is returned when a category already has a handler
	ErrDuplicateHandler = errors.New("handler already registered for artefact type")
)

// Artefact is an accepted type recorded under its category
type Artefact struct {
	Type       string
	Name       string
	Group      string
	Descriptor TypeDescriptor
}

// ScanReport summarises one Scan call
type ScanReport struct {
	Accepted map[string][]string `json:"accepted"`
	Ignored  []string            `json:"ignored"`
	Total    int                 `json:"total"`
}

// AcceptedCount returns the number of candidates accepted by any handler
func (r *ScanReport) AcceptedCount() int {
	n := 0
	for _, names := range r.Accepted {
		n += len(names)
	}
	return n
}

// Registry holds artefact handlers and the artefacts they accepted
type Registry struct {
	mu        sync.RWMutex
	handlers  []Handler
	byType    map[string]Handler
	artefacts map[string]map[string]Artefact
	logger    Logger
	debug     atomic.Bool
}

// NewRegistry creates an empty registry
func NewRegistry(logger Logger, debug bool) *Registry {
	if logger == nil {
		logger = DiscardLogger()
	}
	r := &Registry{
		byType:    make(map[string]Handler),
		artefacts: make(map[string]map[string]Artefact),
		logger:    logger,
	}
	r.debug.Store(debug)
	return r
}

// SetDebug toggles the registry's debug traces
func (r *Registry) SetDebug(debug bool) {
	r.debug.Store(debug)
}

// RegisterHandler adds a handler. Handlers are consulted in registration order.
func (r *Registry) RegisterHandler(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byType[h.Type()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, h.Type())
	}

	r.handlers = append(r.handlers, h)
	r.byType[h.Type()] = h
	r.artefacts[h.Type()] = make(map[string]Artefact)

	if r.debug.Load() {
		r.logger.Printf("[Registry] Registered handler for %s artefacts", h.Type())
	}
	return nil
}

// Handler returns the handler registered for an artefact type
func (r *Registry) Handler(artefactType string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byType[artefactType]
	return h, ok
}

// Types returns the registered artefact types in sorted order
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byType))
	for t := range r.byType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Scan classifies every candidate and records the accepted ones. The first
// handler that accepts a candidate claims it. On cancellation the partial
// report is returned together with the context error.
func (r *Registry) Scan(ctx context.Context, candidates []TypeDescriptor) (*ScanReport, error) {
	report := &ScanReport{Accepted: make(map[string][]string)}

	r.mu.RLock()
	handlers := make([]Handler, len(r.handlers))
	copy(handlers, r.handlers)
	r.mu.RUnlock()

	seen := make(map[string]map[string]bool)
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Total++
		if IsAbsent(candidate) {
			continue
		}

		h, ok := firstAccepting(handlers, candidate)
		if !ok {
			report.Ignored = append(report.Ignored, candidate.Name())
			continue
		}
		r.record(h, candidate)

		// a later candidate with the same name replaces the earlier record
		if seen[h.Type()] == nil {
			seen[h.Type()] = make(map[string]bool)
		}
		if !seen[h.Type()][candidate.Name()] {
			seen[h.Type()][candidate.Name()] = true
			report.Accepted[h.Type()] = append(report.Accepted[h.Type()], candidate.Name())
		}
	}

	if r.debug.Load() {
		r.logger.Printf("[Registry] Scanned %d candidates, accepted %d", report.Total, report.AcceptedCount())
	}
	return report, nil
}

// Classify returns the handler that would claim t, without recording it
func (r *Registry) Classify(t TypeDescriptor) (Handler, bool) {
	if IsAbsent(t) {
		return nil, false
	}

	r.mu.RLock()
	handlers := make([]Handler, len(r.handlers))
	copy(handlers, r.handlers)
	r.mu.RUnlock()

	return firstAccepting(handlers, t)
}

// firstAccepting skips handlers whose marker capability t does not declare
func firstAccepting(handlers []Handler, t TypeDescriptor) (Handler, bool) {
	for _, h := range handlers {
		if !t.Implements(h.Capability()) {
			continue
		}
		if h.Classify(t) {
			return h, true
		}
	}
	return nil, false
}

func (r *Registry) record(h Handler, t TypeDescriptor) {
	a := Artefact{Type: h.Type(), Name: t.Name(), Descriptor: t}
	if g := h.Grouper(); g != nil {
		a.Group = g.Group(t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.artefacts[h.Type()][a.Name] = a
}

// Artefacts returns the accepted artefacts of a type sorted by name
func (r *Registry) Artefacts(artefactType string) []Artefact {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byName := r.artefacts[artefactType]
	result := make([]Artefact, 0, len(byName))
	for _, a := range byName {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Lookup finds an accepted artefact by type and name
func (r *Registry) Lookup(artefactType, name string) (Artefact, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.artefacts[artefactType][name]
	return a, ok
}

// DefaultImplementation returns the fallback type name of a category
func (r *Registry) DefaultImplementation(artefactType string) (string, bool) {
	h, ok := r.Handler(artefactType)
	if !ok {
		return "", false
	}
	return h.DefaultImplementation(), true
}

// Reset forgets every accepted artefact but keeps the handlers
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for t := range r.artefacts {
		r.artefacts[t] = make(map[string]Artefact)
	}
}
