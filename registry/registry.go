// Package registry maps short ontology names (e.g. "cmso") to their summary
// documents and optional per-ontology synonym and constraint configs. The
// registry is explicit configuration passed into the engine at construction,
// never ambient global state; its lifecycle is the process invocation.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Entry points an ontology name at its artifacts. Paths are resolved
// relative to the registry file's directory unless absolute.
type Entry struct {
	// Summary is the path to the ontology's summary JSON document.
	Summary string `yaml:"summary"`

	// Synonyms is the optional path to a synonym config.
	Synonyms string `yaml:"synonyms,omitempty"`

	// Constraints is the optional path to a validation constraint config.
	Constraints string `yaml:"constraints,omitempty"`
}

// Registry is the name → entry table.
type Registry struct {
	baseDir string
	entries map[string]Entry
}

// New returns an empty registry whose relative paths resolve against baseDir.
func New(baseDir string) *Registry {
	return &Registry{baseDir: baseDir, entries: make(map[string]Entry)}
}

// registryFile is the YAML shape of a registry file.
type registryFile struct {
	Ontologies map[string]Entry `yaml:"ontologies"`
}

// LoadFile reads a registry from a YAML file. Names are lowercased.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse registry file: %w", err)
	}

	r := New(filepath.Dir(path))
	for name, entry := range file.Ontologies {
		if entry.Summary == "" {
			return nil, fmt.Errorf("registry entry %q has no summary path", name)
		}
		r.entries[strings.ToLower(name)] = entry
	}
	return r, nil
}

// Register adds or replaces an entry.
func (r *Registry) Register(name string, entry Entry) {
	r.entries[strings.ToLower(name)] = entry
}

// Names returns the registered ontology names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a name to its entry with all paths made absolute. A miss
// lists the available names so the caller can correct the invocation.
func (r *Registry) Lookup(name string) (Entry, error) {
	entry, ok := r.entries[strings.ToLower(name)]
	if !ok {
		available := strings.Join(r.Names(), ", ")
		if available == "" {
			available = "(none)"
		}
		return Entry{}, fmt.Errorf("ontology %q not in registry; available: %s", name, available)
	}
	entry.Summary = r.resolve(entry.Summary)
	if entry.Synonyms != "" {
		entry.Synonyms = r.resolve(entry.Synonyms)
	}
	if entry.Constraints != "" {
		entry.Constraints = r.resolve(entry.Constraints)
	}
	return entry, nil
}

// SummaryPath resolves a name straight to its summary document path.
func (r *Registry) SummaryPath(name string) (string, error) {
	entry, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return entry.Summary, nil
}

func (r *Registry) resolve(path string) string {
	if filepath.IsAbs(path) || r.baseDir == "" {
		return path
	}
	return filepath.Join(r.baseDir, path)
}

// summaryPattern matches summary documents during discovery.
const summaryPattern = "**/*.summary.json"

// Discover scans dir recursively for summary documents and registers each
// under its filename stem: references/cmso.summary.json registers "cmso".
// Explicitly registered entries are not overwritten.
func (r *Registry) Discover(dir string) (int, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), summaryPattern)
	if err != nil {
		return 0, fmt.Errorf("scan %s for summaries: %w", dir, err)
	}

	added := 0
	for _, match := range matches {
		base := filepath.Base(match)
		name := strings.ToLower(strings.TrimSuffix(base, ".summary.json"))
		if name == "" {
			continue
		}
		if _, exists := r.entries[name]; exists {
			continue
		}
		r.entries[name] = Entry{Summary: filepath.Join(dir, filepath.FromSlash(match))}
		added++
	}
	return added, nil
}

// SynonymConfig holds per-ontology alias tables. Keys are matched
// case-insensitively.
type SynonymConfig struct {
	// Synonyms maps natural-language terms to class names.
	Synonyms map[string]string `yaml:"synonyms"`

	// PropertySynonyms maps terms to property names.
	PropertySynonyms map[string]string `yaml:"property_synonyms"`
}

// Merged returns class and property synonyms folded into one table, class
// entries winning on collision.
func (c *SynonymConfig) Merged() map[string]string {
	merged := make(map[string]string, len(c.Synonyms)+len(c.PropertySynonyms))
	for term, target := range c.PropertySynonyms {
		merged[term] = target
	}
	for term, target := range c.Synonyms {
		merged[term] = target
	}
	return merged
}

// LoadSynonyms reads a synonym config. A missing path yields an empty
// config: generic matching still works without per-ontology aliases.
func LoadSynonyms(path string) (*SynonymConfig, error) {
	if path == "" {
		return &SynonymConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &SynonymConfig{}, nil
		}
		return nil, fmt.Errorf("read synonym config: %w", err)
	}
	var cfg SynonymConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse synonym config: %w", err)
	}
	return &cfg, nil
}

// ClassConstraints lists tracked property names for one class.
type ClassConstraints struct {
	Required    []string `yaml:"required"`
	Recommended []string `yaml:"recommended"`
	Optional    []string `yaml:"optional"`
}

// ConstraintConfig maps class names to their tracked properties.
type ConstraintConfig map[string]ClassConstraints

// LoadConstraints reads a constraint config. A missing path yields an empty
// config, which the completeness checker treats as "all domain properties
// recommended".
func LoadConstraints(path string) (ConstraintConfig, error) {
	if path == "" {
		return ConstraintConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ConstraintConfig{}, nil
		}
		return nil, fmt.Errorf("read constraint config: %w", err)
	}
	var cfg ConstraintConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse constraint config: %w", err)
	}
	return cfg, nil
}
