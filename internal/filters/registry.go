// Package filters carries the closed registry of image filter kinds
// the filter collaborator understands, with display metadata for each.
package filters

import (
	"embed"
	"fmt"

	"scandoc/internal/domain/models"

	"gopkg.in/yaml.v3"
)

//go:embed config/filters.yaml
var configFiles embed.FS

// FilterInfo describes one filter kind
type FilterInfo struct {
	Kind models.FilterKind `yaml:"kind"`
	Name string            `yaml:"name"` // Human-readable display name
}

type registryFile struct {
	Filters []FilterInfo `yaml:"filters"`
}

// Registry is the closed set of filter kinds loaded from the embedded
// YAML file. The set never changes at runtime.
type Registry struct {
	ordered []FilterInfo
	byKind  map[models.FilterKind]FilterInfo
}

// NewRegistry loads the embedded filter definitions
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/filters.yaml")
	if err != nil {
		return nil, fmt.Errorf("read filter config: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal filter config: %w", err)
	}
	if len(file.Filters) == 0 {
		return nil, fmt.Errorf("filter config is empty")
	}

	r := &Registry{
		ordered: file.Filters,
		byKind:  make(map[models.FilterKind]FilterInfo, len(file.Filters)),
	}
	for _, info := range file.Filters {
		r.byKind[info.Kind] = info
	}

	return r, nil
}

// Has reports whether the kind is part of the closed set
func (r *Registry) Has(kind models.FilterKind) bool {
	_, ok := r.byKind[kind]
	return ok
}

// Get returns metadata for a filter kind
func (r *Registry) Get(kind models.FilterKind) (FilterInfo, error) {
	info, ok := r.byKind[kind]
	if !ok {
		return FilterInfo{}, fmt.Errorf("unknown filter kind: %q", string(kind))
	}
	return info, nil
}

// Kinds returns all filter kinds in the order defined in the YAML
func (r *Registry) Kinds() []models.FilterKind {
	kinds := make([]models.FilterKind, 0, len(r.ordered))
	for _, info := range r.ordered {
		kinds = append(kinds, info.Kind)
	}
	return kinds
}
