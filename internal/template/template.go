// Package template loads YAML data-extraction templates.
package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNotFound indicates the named template does not exist.
var ErrNotFound = errors.New("template not found")

// Template defines the fields to extract from included papers.
type Template struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Fields      []Field `yaml:"fields"`
}

// Field is one extraction slot in a template.
type Field struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"` // text, number, boolean, list
	Required bool   `yaml:"required,omitempty"`
	Prompt   string `yaml:"prompt,omitempty"`
}

// validFieldTypes lists the supported field type values.
var validFieldTypes = map[string]bool{
	"text":    true,
	"number":  true,
	"boolean": true,
	"list":    true,
}

// Validate checks the template for structural problems.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template missing name")
	}
	if len(t.Fields) == 0 {
		return fmt.Errorf("template %q has no fields", t.Name)
	}
	seen := make(map[string]bool)
	for i, f := range t.Fields {
		if f.Name == "" {
			return fmt.Errorf("template %q: field %d missing name", t.Name, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("template %q: duplicate field %q", t.Name, f.Name)
		}
		seen[f.Name] = true
		if !validFieldTypes[f.Type] {
			return fmt.Errorf("template %q: field %q has invalid type %q", t.Name, f.Name, f.Type)
		}
	}
	return nil
}

// Loader loads templates from a directory, caching by name.
type Loader struct {
	dir   string
	cache map[string]*Template
}

// NewLoader creates a Loader reading from the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]*Template),
	}
}

// Load reads the template <name>.yaml (or <name>.yml) from the loader's
// directory.
func (l *Loader) Load(name string) (*Template, error) {
	if t, ok := l.cache[name]; ok {
		return t, nil
	}

	data, err := l.read(name)
	if err != nil {
		return nil, err
	}

	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	l.cache[name] = &t
	return &t, nil
}

// read finds the template file under either recognized extension.
func (l *Loader) read(name string) ([]byte, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		data, err := os.ReadFile(filepath.Join(l.dir, name+ext))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading template: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// List returns the names of all templates in the directory.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("reading templates directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name()[:len(e.Name())-len(ext)])
		}
	}
	return names, nil
}
