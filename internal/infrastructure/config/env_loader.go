package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	EnvManifestDirs = "SMIG_MANIFEST_DIRS"
	EnvStoreDir     = "SMIG_STORE_DIR"
	EnvDebug        = "SMIG_DEBUG"
)

// Config holds the settings of the migration scanner
type Config struct {
	ManifestDirs []string `json:"manifest_dirs"`
	StoreDir     string   `json:"store_dir"`
	Debug        bool     `json:"debug"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		ManifestDirs: []string{"migrations"},
		StoreDir:     "~/.smig",
		Debug:        false,
	}
}

// EnvLoader reads SMIG_* environment variables
type EnvLoader struct {
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader over the process environment
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{lookup: os.LookupEnv}
}

// Apply overrides fields of cfg that are set in the environment
func (l *EnvLoader) Apply(cfg *Config) {
	if v, ok := l.lookup(EnvManifestDirs); ok && v != "" {
		cfg.ManifestDirs = splitList(v)
	}
	if v, ok := l.lookup(EnvStoreDir); ok && v != "" {
		cfg.StoreDir = v
	}
	if v, ok := l.lookup(EnvDebug); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}

// Load returns defaults overridden by the environment
func Load() (Config, error) {
	cfg := Default()
	NewEnvLoader().Apply(&cfg)

	if err := NewValidator().Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitList(v string) []string {
	var dirs []string
	for _, part := range filepath.SplitList(v) {
		if part = strings.TrimSpace(part); part != "" {
			dirs = append(dirs, part)
		}
	}
	return dirs
}
