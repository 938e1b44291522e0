// Package manifest reads candidate type descriptors from JSON and YAML manifest
// files found under one or more directory trees.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"smig.dev/cli/internal/core/artefact"
)

// Discoverer walks manifest directories
type Discoverer struct {
	dirs   []string
	logger artefact.Logger
	debug  bool
}

// NewDiscoverer creates a discoverer over the given directories
func NewDiscoverer(dirs []string, logger artefact.Logger, debug bool) *Discoverer {
	if logger == nil {
		logger = artefact.DiscardLogger()
	}
	return &Discoverer{
		dirs:   dirs,
		logger: logger,
		debug:  debug,
	}
}

// Discover returns every descriptor declared in manifests under the configured
// directories. Missing directories are skipped. It fails only when errors
// occurred and nothing was found.
func (d *Discoverer) Discover(ctx context.Context) ([]*artefact.Descriptor, error) {
	var found []*artefact.Descriptor
	var errs []error

	for _, dir := range d.dirs {
		expandedDir := ExpandPath(dir)

		if d.debug {
			d.logger.Printf("[ManifestDiscovery] Scanning directory tree: %s", expandedDir)
		}

		if _, err := os.Stat(expandedDir); os.IsNotExist(err) {
			if d.debug {
				d.logger.Printf("[ManifestDiscovery] Directory does not exist: %s", expandedDir)
			}
			continue
		}

		types, err := d.scanDirectory(ctx, expandedDir)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			errs = append(errs, fmt.Errorf("error scanning %s: %w", expandedDir, err))
			continue
		}
		found = append(found, types...)
	}

	if d.debug {
		d.logger.Printf("[ManifestDiscovery] Found %d candidate types total", len(found))
	}

	if len(errs) > 0 && len(found) == 0 {
		return nil, fmt.Errorf("failed to discover manifests: %w", errors.Join(errs...))
	}
	return found, nil
}

func (d *Discoverer) scanDirectory(ctx context.Context, dir string) ([]*artefact.Descriptor, error) {
	var found []*artefact.Descriptor
	var errs []error

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if d.debug {
				d.logger.Printf("[ManifestDiscovery] Error accessing path %s: %v", path, err)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() {
			return nil
		}
		if _, err := FormatOf(path); err != nil {
			return nil
		}

		types, err := ParseFile(path)
		if err != nil {
			if d.debug {
				d.logger.Printf("[ManifestDiscovery] Skipping %s: %v", path, err)
			}
			errs = append(errs, err)
			return nil
		}
		found = append(found, types...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(errs) > 0 && len(found) == 0 {
		return nil, errors.Join(errs...)
	}
	return found, nil
}

// ExpandPath expands a leading ~/ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Candidates converts descriptors to the registry's input type
func Candidates(types []*artefact.Descriptor) []artefact.TypeDescriptor {
	candidates := make([]artefact.TypeDescriptor, len(types))
	for i, t := range types {
		candidates[i] = t
	}
	return candidates
}
