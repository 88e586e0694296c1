package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gardenkit/roofsmith/internal/config"
)

// BuildingTemplate is a named, reusable building configuration.
type BuildingTemplate struct {
	Name      string          `json:"name"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt string          `json:"created_at"`
	Building  config.Building `json:"building"`
}

// TemplateStore holds all saved building templates.
type TemplateStore struct {
	Templates []BuildingTemplate `json:"templates"`
}

// NewTemplateStore returns an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []BuildingTemplate{}}
}

// Add appends a template, replacing any existing template with the same name.
func (s *TemplateStore) Add(t BuildingTemplate) {
	if t.CreatedAt == "" {
		t.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	for i, existing := range s.Templates {
		if existing.Name == t.Name {
			s.Templates[i] = t
			return
		}
	}
	s.Templates = append(s.Templates, t)
}

// Remove deletes the template with the given name. Returns false if no
// template with that name exists.
func (s *TemplateStore) Remove(name string) bool {
	for i, t := range s.Templates {
		if t.Name == name {
			s.Templates = append(s.Templates[:i], s.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the template with the given name.
func (s *TemplateStore) Find(name string) (BuildingTemplate, error) {
	for _, t := range s.Templates {
		if t.Name == name {
			return t, nil
		}
	}
	return BuildingTemplate{}, fmt.Errorf("template %q not found", name)
}

// DefaultTemplatePath returns the default path for the templates store.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store TemplateStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTemplateStore(), nil
		}
		return TemplateStore{}, err
	}
	var store TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []BuildingTemplate{}
	}
	return store, nil
}
