package artefact

import (
	"reflect"
	"slices"
)

// Capability names a contract a type declares it implements
type Capability string

// Constructor describes one public constructor of a type by its parameter types
type Constructor struct {
	Params []string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Arity returns the number of parameters the constructor takes
func (c Constructor) Arity() int {
	return len(c.Params)
}

// IsDefault reports whether the constructor takes no arguments
func (c Constructor) IsDefault() bool {
	return c.Arity() == 0
}

// TypeDescriptor is the host's handle on a candidate type.
// Implementations must be safe to query concurrently.
type TypeDescriptor interface {
	Name() string
	Implements(capability Capability) bool
	Constructors() []Constructor
}

// Descriptor is an explicit registration record for a candidate type.
// All methods tolerate a nil receiver.
type Descriptor struct {
	TypeName     string        `json:"name" yaml:"name"`
	Capabilities []Capability  `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Ctors        []Constructor `json:"constructors,omitempty" yaml:"constructors,omitempty"`

	// Source is the manifest the descriptor was read from, if any
	Source string `json:"-" yaml:"-"`
}

// NewDescriptor creates a descriptor with the given capabilities and constructors
func NewDescriptor(name string, caps []Capability, ctors ...Constructor) *Descriptor {
	return &Descriptor{
		TypeName:     name,
		Capabilities: slices.Clone(caps),
		Ctors:        slices.Clone(ctors),
	}
}

// Name returns the type name
func (d *Descriptor) Name() string {
	if d == nil {
		return ""
	}
	return d.TypeName
}

// Implements reports whether the type declares the capability
func (d *Descriptor) Implements(capability Capability) bool {
	if d == nil {
		return false
	}
	return slices.Contains(d.Capabilities, capability)
}

// Constructors returns a copy of the public constructors
func (d *Descriptor) Constructors() []Constructor {
	if d == nil {
		return nil
	}
	return slices.Clone(d.Ctors)
}

// IsAbsent reports whether t is a nil interface or wraps a nil value
// (pointer, map, slice, func, chan or interface) of any descriptor type
func IsAbsent(t TypeDescriptor) bool {
	if t == nil {
		return true
	}
	if d, ok := t.(*Descriptor); ok {
		return d == nil
	}

	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

var _ TypeDescriptor = (*Descriptor)(nil)
