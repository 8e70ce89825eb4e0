// Package registry holds the immutable catalog of supported contract types.
package registry

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/AbuAli85/Contract-Management-System-sub011/model"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var definitionsYAML []byte

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://contracts.schemas.local/registry/templates.schema.json"

// ErrNotFound is returned when no entry exists for a contract type.
var ErrNotFound = errors.New("template configuration not found")

// Registry maps contract type ids to their configuration. It is populated
// once and never mutated, so it is safe to share between requests.
type Registry struct {
	entries map[string]model.ContractTypeConfig
	ids     []string
}

// Load builds the registry from the embedded definitions. locations
// overrides the storage location id of entries that carry a storage hint.
func Load(locations map[string]string) (*Registry, error) {
	return Parse(definitionsYAML, locations)
}

// Parse validates a YAML definitions document against the registry schema
// and builds a registry from it.
func Parse(data []byte, locations map[string]string) (*Registry, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var doc struct {
		Templates []model.ContractTypeConfig `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse template definitions: %w", err)
	}

	for i := range doc.Templates {
		def := &doc.Templates[i]
		if def.StorageHint == nil {
			continue
		}
		if id, ok := locations[def.ID]; ok && id != "" {
			def.StorageHint.LocationID = id
		}
	}

	return New(doc.Templates...)
}

// New builds a registry from explicit definitions.
func New(defs ...model.ContractTypeConfig) (*Registry, error) {
	r := &Registry{entries: make(map[string]model.ContractTypeConfig, len(defs))}
	for _, def := range defs {
		if def.ID == "" {
			return nil, errors.New("template definition without id")
		}
		if _, dup := r.entries[def.ID]; dup {
			return nil, fmt.Errorf("duplicate template definition %q", def.ID)
		}
		b := def.ValueBounds
		if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
			return nil, fmt.Errorf("template %q: min value %v exceeds max value %v", def.ID, *b.Min, *b.Max)
		}
		r.entries[def.ID] = def.Clone()
		r.ids = append(r.ids, def.ID)
	}
	sort.Strings(r.ids)
	return r, nil
}

// Lookup returns a copy of the configuration for a contract type.
func (r *Registry) Lookup(id string) (model.ContractTypeConfig, error) {
	def, ok := r.entries[id]
	if !ok {
		return model.ContractTypeConfig{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return def.Clone(), nil
}

// List returns every entry ordered by id.
func (r *Registry) List() []model.ContractTypeConfig {
	out := make([]model.ContractTypeConfig, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.entries[id].Clone())
	}
	return out
}

// Len returns the number of registered contract types.
func (r *Registry) Len() int {
	return len(r.ids)
}

func validateDocument(data []byte) error {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("registry schema load failed: %w", err)
	}
	schema, err := c.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("registry schema compile failed: %w", err)
	}

	// The validator expects JSON-decoded values, so round-trip the YAML.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse template definitions: %w", err)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode template definitions: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode template definitions: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid template definitions: %w", err)
	}
	return nil
}
