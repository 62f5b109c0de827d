package viewstate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RegistryFile is the YAML form of a view registry.
type RegistryFile struct {
	DefaultView string                  `yaml:"default_view"`
	Views       []string                `yaml:"views"`
	Filters     map[string]CategoryFile `yaml:"filters"`
}

// CategoryFile is the YAML form of one filter key declaration.
type CategoryFile struct {
	Scope string   `yaml:"scope"`
	Views []string `yaml:"views"`
}

// ParseRegistry decodes and validates a YAML registry.
func ParseRegistry(data []byte) (*Registry, error) {
	var f RegistryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing view registry YAML: %w", err)
	}
	return f.Build()
}

// LoadRegistry reads a YAML registry file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading view registry: %w", err)
	}
	return ParseRegistry(data)
}

// Build converts the file form into a validated Registry. Keys are emitted
// in canonical order so error messages are stable.
func (f RegistryFile) Build() (*Registry, error) {
	views := make([]View, 0, len(f.Views))
	for _, v := range f.Views {
		views = append(views, View(v))
	}

	categories := make([]Category, 0, len(f.Filters))
	seen := make(map[string]bool, len(f.Filters))
	for _, k := range AllKeys {
		if cf, ok := f.Filters[string(k)]; ok {
			categories = append(categories, cf.category(k))
			seen[string(k)] = true
		}
	}
	for name, cf := range f.Filters {
		if !seen[name] {
			categories = append(categories, cf.category(FilterKey(name)))
		}
	}

	return NewRegistry(views, View(f.DefaultView), categories)
}

func (cf CategoryFile) category(key FilterKey) Category {
	c := Category{Key: key, Scope: Scope(cf.Scope)}
	for _, v := range cf.Views {
		c.Views = append(c.Views, View(v))
	}
	return c
}
