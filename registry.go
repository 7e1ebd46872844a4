package vitrin

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Registry is the immutable mapping from category identifier to its
// configuration. Construction fails fast on integrity violations; no
// mutation API exists afterwards, so a Registry is freely shared across
// screens and goroutines.
type Registry struct {
	configs map[CategoryID]*CategoryConfig
	order   []CategoryID
}

// NewRegistry builds a registry from the given configs. It returns an
// error when two categories declare the same ID, when a field name
// collides within one category's form schema, or when two range filter
// fields of one category derive the same min/max payload keys.
func NewRegistry(configs ...*CategoryConfig) (*Registry, error) {
	r := &Registry{configs: make(map[CategoryID]*CategoryConfig, len(configs))}
	for _, cfg := range configs {
		if cfg == nil || cfg.ID == "" {
			return nil, NewError(ErrorTypeConfig, ErrCodeMissingSchema, "category config without id")
		}
		if _, exists := r.configs[cfg.ID]; exists {
			e := NewError(ErrorTypeConfig, ErrCodeDuplicateCategory, "duplicate category id")
			e.Category = cfg.ID
			return nil, e
		}
		if err := checkFormSchema(cfg); err != nil {
			return nil, err
		}
		if err := checkFilterSchema(cfg); err != nil {
			return nil, err
		}
		r.configs[cfg.ID] = cfg
		r.order = append(r.order, cfg.ID)
	}
	return r, nil
}

// MustNewRegistry is NewRegistry for process startup: integrity
// violations abort the process.
func MustNewRegistry(configs ...*CategoryConfig) *Registry {
	r, err := NewRegistry(configs...)
	if err != nil {
		panic(err)
	}
	return r
}

func checkFormSchema(cfg *CategoryConfig) error {
	seen := make(map[string]struct{})
	wantID := 1
	for _, step := range cfg.Steps {
		if step.ID != wantID {
			e := NewError(ErrorTypeConfig, ErrCodeMissingSchema,
				fmt.Sprintf("step ids must be 1-based and contiguous, got %d want %d", step.ID, wantID))
			e.Category = cfg.ID
			return e
		}
		wantID++
		for _, sec := range step.Sections {
			for _, f := range sec.Fields {
				if f.Name == "" {
					e := NewError(ErrorTypeConfig, ErrCodeDuplicateField, "field without name")
					e.Category = cfg.ID
					return e
				}
				if _, dup := seen[f.Name]; dup {
					e := NewError(ErrorTypeConfig, ErrCodeDuplicateField, "duplicate field name")
					e.Category = cfg.ID
					e.Field = f.Name
					return e
				}
				seen[f.Name] = struct{}{}
			}
		}
	}
	return nil
}

func checkFilterSchema(cfg *CategoryConfig) error {
	if cfg.FilterFields == nil {
		return nil
	}
	derived := make(map[string]string)
	for _, ff := range cfg.FilterFields() {
		keys := []string{ff.Key}
		if ff.Type == FilterNumericRange || ff.Type == FilterDateRange {
			minKey, maxKey := ff.RangeKeys()
			keys = []string{minKey, maxKey}
		}
		for _, key := range keys {
			if owner, dup := derived[key]; dup {
				e := NewError(ErrorTypeConfig, ErrCodeRangeKeyCollision,
					fmt.Sprintf("filter key '%s' derived by both '%s' and '%s'", key, owner, ff.Key))
				e.Category = cfg.ID
				return e
			}
			derived[key] = ff.Key
		}
	}
	return nil
}

// Config returns the configuration for id, or nil when unknown.
func (r *Registry) Config(id CategoryID) *CategoryConfig {
	return r.configs[id]
}

// CategoryIDs returns all registered category identifiers in declaration
// order.
func (r *Registry) CategoryIDs() []CategoryID {
	out := make([]CategoryID, len(r.order))
	copy(out, r.order)
	return out
}

// IsValid reports whether id names a registered category.
func (r *Registry) IsValid(id CategoryID) bool {
	_, ok := r.configs[id]
	return ok
}

// ExportJSONSchema builds a JSON Schema for the statically checkable part
// of a category's form payload: field types, static requiredness and
// numeric bounds. Dynamic predicates are out of its reach and stay with
// the validation engine; the exported schema serves API-boundary checks.
func (r *Registry) ExportJSONSchema(id CategoryID) (*jsonschema.Resolved, error) {
	cfg := r.Config(id)
	if cfg == nil {
		return nil, NewUnknownCategoryError(id)
	}

	properties := map[string]any{
		"title":       map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string", "minLength": 1},
		"price":       map[string]any{"type": "number", "exclusiveMinimum": 0},
		"currency":    map[string]any{"type": "string", "minLength": 1},
		"city":        map[string]any{"type": "string"},
		"district":    map[string]any{"type": "string"},
	}
	required := []string{"title", "description", "price", "currency"}

	for _, step := range cfg.Steps {
		for _, sec := range step.Sections {
			for _, f := range sec.Fields {
				properties[f.Name] = fieldSchema(&f)
				if f.Required && f.Type != FieldToggle {
					required = append(required, f.Name)
				}
			}
		}
	}

	schemaMap := map[string]any{
		"type":       "object",
		"title":      string(cfg.ID),
		"properties": properties,
		"required":   required,
	}

	schemaBytes, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, NewInternalError("failed to marshal schema for export", err)
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(schemaBytes, &schema); err != nil {
		return nil, NewInternalError("failed to unmarshal into jsonschema.Schema", err)
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil, NewInternalError("failed to resolve exported schema", err)
	}
	return resolved, nil
}

func fieldSchema(f *Field) map[string]any {
	switch f.Type {
	case FieldNumber:
		s := map[string]any{"type": []string{"number", "string", "null"}}
		if f.Min != nil {
			s["minimum"] = *f.Min
		}
		if f.Max != nil {
			s["maximum"] = *f.Max
		}
		return s
	case FieldToggle:
		return map[string]any{"type": []string{"boolean", "null"}}
	case FieldDate:
		return map[string]any{"type": []string{"string", "null"}}
	default:
		return map[string]any{"type": []string{"string", "null"}}
	}
}
