package config

import (
	"fmt"
	"strings"
)

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the whole configuration
func (v *Validator) Validate(cfg Config) error {
	if err := v.ValidateStoreDir(cfg.StoreDir); err != nil {
		return err
	}
	return v.ValidateManifestDirs(cfg.ManifestDirs)
}

// ValidateStoreDir validates the catalogue directory
func (v *Validator) ValidateStoreDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("store directory cannot be empty")
	}
	return nil
}

// ValidateManifestDirs validates the manifest search path
func (v *Validator) ValidateManifestDirs(dirs []string) error {
	if len(dirs) == 0 {
		return fmt.Errorf("at least one manifest directory is required")
	}
	for i, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("manifest directory at index %d cannot be empty", i)
		}
	}
	return nil
}
