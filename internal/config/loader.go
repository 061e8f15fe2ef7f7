// Package config loads the server configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader reads an optional defaults file and an override file, the override
// winning wherever it sets a value.
type Loader struct {
	DefaultsPath string
	Path         string

	mu     sync.RWMutex
	cached *Config
}

// NewLoader creates a loader. Either path may be empty.
func NewLoader(defaultsPath, path string) *Loader {
	return &Loader{DefaultsPath: defaultsPath, Path: path}
}

// Load returns the merged, validated config, from cache when possible.
func (l *Loader) Load() (Config, error) {
	l.mu.RLock()
	if l.cached != nil {
		cfg := *l.cached
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.DefaultsPath)
	if err != nil {
		return Config{}, fmt.Errorf("read defaults: %w", err)
	}
	cfg, err := readYAML(l.Path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	out, err := Normalize(mergeRaw(defCfg, cfg))
	if err != nil {
		return Config{}, err
	}

	l.mu.Lock()
	l.cached = &out
	l.mu.Unlock()
	return out, nil
}

// Paths lists the files the loader reads, for watching.
func (l *Loader) Paths() []string {
	var out []string
	for _, p := range []string{l.DefaultsPath, l.Path} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Invalidate drops the cache. Call after a watched file changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

// readYAML loads a YAML file. Empty paths and missing files yield a zero Raw.
func readYAML(path string) (Raw, error) {
	var cfg Raw
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Raw{}, nil
		}
		return Raw{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Raw{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw overlays b onto a. Slices from b replace those of a.
func mergeRaw(a, b Raw) Raw {
	out := a
	if b.HTTPAddr != "" {
		out.HTTPAddr = b.HTTPAddr
	}
	if b.GRPCAddr != "" {
		out.GRPCAddr = b.GRPCAddr
	}
	if b.RESPAddr != "" {
		out.RESPAddr = b.RESPAddr
	}
	if b.LogLevel != "" {
		out.LogLevel = b.LogLevel
	}
	if b.LogFormat != "" {
		out.LogFormat = b.LogFormat
	}
	if b.ReloadInterval != nil {
		out.ReloadInterval = b.ReloadInterval
	}

	// seeds: an override choosing either form drops the other from defaults
	switch {
	case b.Seed != nil:
		out.Seed = b.Seed
		out.SeedSequence = nil
	case len(b.SeedSequence) > 0:
		out.Seed = nil
		out.SeedSequence = append([]uint64(nil), b.SeedSequence...)
	}
	return out
}
