package migration

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"smig.dev/cli/internal/core/artefact"
)

// recordingLogger captures diagnostic lines
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// pluginClass is a host-side descriptor that dereferences its receiver
type pluginClass struct {
	name  string
	ctors []artefact.Constructor
}

func (p *pluginClass) Name() string                          { return p.name }
func (p *pluginClass) Implements(c artefact.Capability) bool { return c == CapabilityMigrate }
func (p *pluginClass) Constructors() []artefact.Constructor  { return p.ctors }

func defaultCtor() artefact.Constructor {
	return artefact.Constructor{}
}

func TestHandler_Metadata(t *testing.T) {
	h := NewHandler(nil)

	assert.Equal(t, "Migration", h.Type())
	assert.Equal(t, artefact.Capability("Migrate"), h.Capability())
	assert.Equal(t, "DefaultMigrationClass", h.DefaultImplementation())
	assert.Nil(t, h.Grouper())
}

func TestHandler_Classify_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		descriptor  artefact.TypeDescriptor
		want        bool
		diagnostics int
	}{
		{
			name:        "migrate_with_implicit_default_constructor",
			descriptor:  Describe("AddUsersTable", defaultCtor()),
			want:        true,
			diagnostics: 0,
		},
		{
			name: "migrate_with_default_and_int_constructor",
			descriptor: Describe("AddOrdersTable",
				defaultCtor(),
				artefact.Constructor{Params: []string{"int"}},
			),
			want:        false,
			diagnostics: 1,
		},
		{
			name:        "not_migrate_with_default_constructor",
			descriptor:  artefact.NewDescriptor("UserService", nil, defaultCtor()),
			want:        false,
			diagnostics: 0,
		},
		{
			name:        "absent_descriptor",
			descriptor:  nil,
			want:        false,
			diagnostics: 0,
		},
		{
			name:        "migrate_with_single_string_constructor",
			descriptor:  Describe("RenameColumn", artefact.Constructor{Params: []string{"String"}}),
			want:        false,
			diagnostics: 1,
		},
		{
			name:        "migrate_without_public_constructors",
			descriptor:  Describe("PrivateOnly"),
			want:        false,
			diagnostics: 1,
		},
		{
			name:        "typed_nil_descriptor",
			descriptor:  (*artefact.Descriptor)(nil),
			want:        false,
			diagnostics: 0,
		},
		{
			name:        "typed_nil_host_descriptor",
			descriptor:  (*pluginClass)(nil),
			want:        false,
			diagnostics: 0,
		},
		{
			name:        "host_descriptor_with_default_constructor",
			descriptor:  &pluginClass{name: "AddIndexes", ctors: []artefact.Constructor{defaultCtor()}},
			want:        true,
			diagnostics: 0,
		},
		{
			name: "not_migrate_with_bad_constructors",
			descriptor: artefact.NewDescriptor("Repository", []artefact.Capability{"Service"},
				artefact.Constructor{Params: []string{"DataSource"}},
			),
			want:        false,
			diagnostics: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			h := NewHandler(logger)

			got := h.Classify(tt.descriptor)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.diagnostics, logger.count())
		})
	}
}

func TestHandler_Classify_DiagnosticText(t *testing.T) {
	logger := &recordingLogger{}
	h := NewHandler(logger)

	require.False(t, h.Classify(Describe("SeedData", artefact.Constructor{Params: []string{"String"}})))
	require.Len(t, logger.lines, 1)
	assert.Contains(t, logger.lines[0], "SeedData")
	assert.Contains(t, logger.lines[0], Diagnostic)
}

func TestHandler_Classify_NilLoggerDoesNotPanic(t *testing.T) {
	h := NewHandler(nil)

	assert.NotPanics(t, func() {
		assert.False(t, h.Classify(Describe("Broken", defaultCtor(), defaultCtor())))
	})
}

func TestHandler_Classify_Concurrent(t *testing.T) {
	logger := &recordingLogger{}
	h := NewHandler(logger)

	good := Describe("Good", defaultCtor())
	bad := Describe("Bad", artefact.Constructor{Params: []string{"int"}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.True(t, h.Classify(good))
		}()
		go func() {
			defer wg.Done()
			assert.False(t, h.Classify(bad))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, logger.count())
}

// Property-based tests using rapid

func drawConstructors(t *rapid.T) []artefact.Constructor {
	params := rapid.SampledFrom([]string{"int", "String", "long", "DataSource", "Map"})
	n := rapid.IntRange(0, 4).Draw(t, "ctorCount")
	ctors := make([]artefact.Constructor, n)
	for i := range ctors {
		ctors[i] = artefact.Constructor{
			Params: rapid.SliceOfN(params, 0, 3).Draw(t, fmt.Sprintf("params%d", i)),
		}
	}
	return ctors
}

// TestHandler_PropertyBased_NonMigrateNeverAccepted checks the capability gate
func TestHandler_PropertyBased_NonMigrateNeverAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		logger := &recordingLogger{}
		h := NewHandler(logger)

		caps := rapid.SliceOfN(rapid.SampledFrom([]artefact.Capability{"Service", "Controller", "Job"}), 0, 3).Draw(t, "caps")
		d := artefact.NewDescriptor("Candidate", caps, drawConstructors(t)...)

		assert.False(t, h.Classify(d))
		assert.Equal(t, 0, logger.count(), "capability mismatch must be silent")
	})
}

// TestHandler_PropertyBased_ConstructorShape checks accept/reject against the shape rule
func TestHandler_PropertyBased_ConstructorShape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		logger := &recordingLogger{}
		h := NewHandler(logger)

		ctors := drawConstructors(t)
		d := Describe("Candidate", ctors...)

		want := len(ctors) == 1 && len(ctors[0].Params) == 0
		first := h.Classify(d)
		second := h.Classify(d)

		assert.Equal(t, want, first)
		assert.Equal(t, first, second, "classification should be idempotent")

		if want {
			assert.Equal(t, 0, logger.count())
		} else {
			assert.Equal(t, 2, logger.count(), "one diagnostic per rejected call")
		}
	})
}

func BenchmarkHandler_Classify(b *testing.B) {
	h := NewHandler(nil)
	d := Describe("AddUsersTable", defaultCtor())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Classify(d)
	}
}
