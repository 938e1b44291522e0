package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"smig.dev/cli/internal/core/artefact"
)

// ErrUnsupportedFormat is returned for manifest files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// Format identifies a manifest encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is the on-disk shape of a manifest
type Document struct {
	Types []*artefact.Descriptor `json:"types" yaml:"types"`
}

// FormatOf returns the manifest format for a file path
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes manifest data
func Parse(data []byte, format Format) ([]*artefact.Descriptor, error) {
	var doc Document

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	types := make([]*artefact.Descriptor, 0, len(doc.Types))
	for i, d := range doc.Types {
		if d == nil {
			continue
		}
		if d.TypeName == "" {
			return nil, fmt.Errorf("type at index %d has no name", i)
		}
		types = append(types, d)
	}
	return types, nil
}

// ParseFile reads and decodes a manifest file, stamping each descriptor with its source
func ParseFile(path string) ([]*artefact.Descriptor, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	types, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, d := range types {
		d.Source = path
	}
	return types, nil
}
