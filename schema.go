package vitrin

// FieldType represents supported form field kinds.
type FieldType string

const (
	FieldEnum       FieldType = "enum"
	FieldSearchable FieldType = "searchable"
	FieldToggle     FieldType = "toggle"
	FieldText       FieldType = "text"
	FieldTextarea   FieldType = "textarea"
	FieldNumber     FieldType = "number"
	FieldDate       FieldType = "date"
)

// StepKind represents the fixed step kinds of the creation wizard.
type StepKind string

const (
	StepBasics        StepKind = "basics"
	StepDetails       StepKind = "details"
	StepMediaLocation StepKind = "mediaLocation"
	StepSummary       StepKind = "summary"
)

// FilterFieldType represents supported filter field kinds.
type FilterFieldType string

const (
	FilterEnum         FilterFieldType = "enum"
	FilterNumericRange FilterFieldType = "numericRange"
	FilterDateRange    FilterFieldType = "dateRange"
	FilterText         FilterFieldType = "text"
)

// EnumLookup resolves a symbolic enum key to its option list. A nil result
// means the list is still loading; consumers must render a loading state,
// never fail.
type EnumLookup func(key string) []Option

// Context is the read/write view a config predicate or effect receives.
// Predicates must be pure functions of this context and must not capture
// outside mutable state.
type Context struct {
	enums  EnumLookup
	data   map[string]any
	errors ErrorMap
	isEdit bool
}

// NewContext builds a predicate context over the given form state.
func NewContext(enums EnumLookup, data map[string]any, errors ErrorMap, isEdit bool) *Context {
	if enums == nil {
		enums = func(string) []Option { return nil }
	}
	if data == nil {
		data = map[string]any{}
	}
	return &Context{enums: enums, data: data, errors: errors, isEdit: isEdit}
}

// Value returns the raw form value for name, or nil.
func (c *Context) Value(name string) any { return c.data[name] }

// String returns the form value for name coerced to string ("" if absent
// or not string-like).
func (c *Context) String(name string) string {
	return asString(c.data[name])
}

// Bool reports whether the form value for name is truthy.
func (c *Context) Bool(name string) bool {
	return isTruthy(c.data[name])
}

// Number returns the numeric form value for name, reporting whether the
// coercion succeeded.
func (c *Context) Number(name string) (float64, bool) {
	return asNumber(c.data[name])
}

// Enum resolves an option list through the bound enum provider.
func (c *Context) Enum(key string) []Option { return c.enums(key) }

// IsEdit reports whether the session edits an existing listing.
func (c *Context) IsEdit() bool { return c.isEdit }

// Set writes a form value. Intended for OnChange overrides and effects.
func (c *Context) Set(name string, value any) { c.data[name] = value }

// SetChecked writes a toggle value.
func (c *Context) SetChecked(name string, checked bool) { c.data[name] = checked }

// Delete removes a form value.
func (c *Context) Delete(name string) { delete(c.data, name) }

// Field describes one form field of a category schema. Name must be
// unique across the whole schema: it doubles as the form-state key and
// the error-map key.
type Field struct {
	Name         string
	Type         FieldType
	Label        string
	Required     bool
	RequiredWhen func(*Context) bool
	VisibleWhen  func(*Context) bool
	DisabledWhen func(*Context) bool
	EnumKey      string
	Options      func(*Context) []Option
	Min          *float64
	Max          *float64
	Step         *float64
	Validate     func(value any, ctx *Context) string
	OnChange     func(value any, ctx *Context)
}

// Visible evaluates VisibleWhen, defaulting to true.
func (f *Field) Visible(ctx *Context) bool {
	return f.VisibleWhen == nil || f.VisibleWhen(ctx)
}

// IsRequired evaluates static and dynamic requiredness.
func (f *Field) IsRequired(ctx *Context) bool {
	if f.Required {
		return true
	}
	return f.RequiredWhen != nil && f.RequiredWhen(ctx)
}

// Section groups fields inside a details step.
type Section struct {
	Title       string
	VisibleWhen func(*Context) bool
	Fields      []Field
}

// Visible evaluates VisibleWhen, defaulting to true.
func (s *Section) Visible(ctx *Context) bool {
	return s.VisibleWhen == nil || s.VisibleWhen(ctx)
}

// Step is one step of the creation/edit wizard. IDs are 1-based and
// contiguous within a schema; Sections is only used for details steps.
type Step struct {
	ID       int
	Kind     StepKind
	Title    string
	Sections []Section
}

// FilterField describes one declarative filter of a category. For
// numericRange and dateRange fields the serializer derives min<Key> and
// max<Key> lookup keys from Key.
type FilterField struct {
	Key      string
	Type     FilterFieldType
	Label    string
	EnumKey  string
	Multiple bool
	Min      *float64
	Max      *float64
	Step     *float64
}

// RangeKeys returns the derived bound keys for range-typed fields.
func (f *FilterField) RangeKeys() (minKey, maxKey string) {
	return "min" + capitalize(f.Key), "max" + capitalize(f.Key)
}

// DerivedField recomputes a target value whenever its source changes,
// resolving the source through an enum list.
type DerivedField struct {
	Source    string
	EnumKey   string
	Target    string
	Uppercase bool
	Transform func(label string, ctx *Context) any
}

// Effect is a post-update callback for cross-field side effects that are
// not expressible as a simple derivation. Effects run once per edit in
// declaration order; an effect must not depend on a later effect's output
// in the same pass.
type Effect func(ctx *Context)

// CustomValidator contributes category-level cross-field errors. When is
// evaluated with the step being validated (StepAll for whole-form runs);
// a nil When means always. Returned entries override field-level errors
// for the same key.
type CustomValidator struct {
	When     func(step int, ctx *Context) bool
	Validate func(step int, ctx *Context) ErrorMap
}

// StepAll is the step marker passed to custom validators on whole-form
// validation.
const StepAll = -1

// LegacyValidator is the free-function validation contract kept for
// categories not expressed as a declarative schema. It is a permanently
// supported path, not a migration aid.
type LegacyValidator func(step int, data map[string]any) ErrorMap

// FlowSelector is one selector of a pre-form creation flow.
type FlowSelector struct {
	Key            string
	Label          string
	EnumKey        string
	InitialDataKey string
	DependsOn      []string
	Options        func(selection map[string]string, ctx *Context) []Option
}

// Ready reports whether all prerequisite selections have been made.
func (s *FlowSelector) Ready(selection map[string]string) bool {
	for _, dep := range s.DependsOn {
		if selection[dep] == "" {
			return false
		}
	}
	return true
}

// CreateFlow is the optional pre-form selection wizard shown before the
// main form (subtype selector plus dependent selectors).
type CreateFlow struct {
	Selectors []FlowSelector
}

// InitialData converts a completed flow selection into seed form data
// using each selector's InitialDataKey.
func (f *CreateFlow) InitialData(selection map[string]string) map[string]any {
	out := make(map[string]any, len(f.Selectors))
	for _, sel := range f.Selectors {
		key := sel.InitialDataKey
		if key == "" {
			key = sel.Key
		}
		if v, ok := selection[sel.Key]; ok && v != "" {
			out[key] = v
		}
	}
	return out
}

// CategoryConfig is the declarative, immutable configuration record of
// one listing category. Configs are constructed once at startup and never
// mutated afterwards.
type CategoryConfig struct {
	ID          CategoryID
	Label       string
	Icon        string
	Description string

	// Steps is the ordered creation-wizard schema. Nil when the category
	// still uses LegacyValidator.
	Steps []Step

	// FilterFields returns the ordered declarative filter schema.
	FilterFields func() []FilterField

	// DefaultFilters holds sparse overrides merged into the generic
	// filter defaults.
	DefaultFilters map[string]any

	// InitialData seeds the form state before caller data is merged.
	InitialData map[string]any

	DerivedFields    []DerivedField
	Effects          []Effect
	CustomValidators []CustomValidator
	LegacyValidator  LegacyValidator
	CreateFlow       *CreateFlow

	// Service binds this category's listing CRUD operations.
	Service Service
}

// TotalSteps returns the wizard step count including the implicit
// trailing summary step.
func (c *CategoryConfig) TotalSteps() int {
	return len(c.Steps) + 1
}

// StepByID returns the declared step with the given ID, or nil.
func (c *CategoryConfig) StepByID(id int) *Step {
	for i := range c.Steps {
		if c.Steps[i].ID == id {
			return &c.Steps[i]
		}
	}
	return nil
}

// FieldByName returns the declared field with the given name, or nil.
func (c *CategoryConfig) FieldByName(name string) *Field {
	for si := range c.Steps {
		for ti := range c.Steps[si].Sections {
			for fi := range c.Steps[si].Sections[ti].Fields {
				if c.Steps[si].Sections[ti].Fields[fi].Name == name {
					return &c.Steps[si].Sections[ti].Fields[fi]
				}
			}
		}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
