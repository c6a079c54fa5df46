package template

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "default.yaml", `
name: default
description: Standard extraction fields
fields:
  - name: study_design
    type: text
    required: true
    prompt: What study design was used?
  - name: sample_size
    type: number
  - name: main_results
    type: text
`)

	loader := NewLoader(dir)
	tmpl, err := loader.Load("default")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if tmpl.Name != "default" || tmpl.Description != "Standard extraction fields" {
		t.Errorf("template = %+v", tmpl)
	}
	if len(tmpl.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(tmpl.Fields))
	}
	f := tmpl.Fields[0]
	if f.Name != "study_design" || f.Type != "text" || !f.Required || f.Prompt == "" {
		t.Errorf("field = %+v", f)
	}

	// Cached: the same pointer comes back.
	again, err := loader.Load("default")
	if err != nil {
		t.Fatalf("second Load() error: %v", err)
	}
	if again != tmpl {
		t.Error("expected cached template on second load")
	}
}

func TestLoadDefaultsNameFromFile(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "rct.yaml", `
fields:
  - name: blinding
    type: boolean
`)

	tmpl, err := NewLoader(dir).Load("rct")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tmpl.Name != "rct" {
		t.Errorf("name = %q, want rct", tmpl.Name)
	}
}

func TestLoadYmlExtension(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "cohort.yml", `
fields:
  - name: followup_years
    type: number
`)

	tmpl, err := NewLoader(dir).Load("cohort")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tmpl.Name != "cohort" || len(tmpl.Fields) != 1 {
		t.Errorf("template = %+v", tmpl)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLoadInvalidTemplates(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no fields", "name: empty\n"},
		{"bad field type", "fields:\n  - name: x\n    type: date\n"},
		{"missing field name", "fields:\n  - type: text\n"},
		{"duplicate field", "fields:\n  - name: x\n    type: text\n  - name: x\n    type: text\n"},
		{"malformed yaml", "fields: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTemplate(t, dir, "bad.yaml", tt.content)
			if _, err := NewLoader(dir).Load("bad"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "default.yaml", "x")
	writeTemplate(t, dir, "rct.yml", "x")
	writeTemplate(t, dir, "notes.txt", "x")
	if err := os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := NewLoader(dir).List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"default", "rct"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}
