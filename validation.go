package vitrin

import (
	"fmt"
)

// Engine validates form data against a category's declarative rules. It
// serves both the form interpreter (next/submit) and stand-alone callers,
// and never mutates the schema or the data it is given.
type Engine struct {
	registry *Registry
	enums    EnumLookup
}

// NewEngine creates a validation engine over the given registry. enums
// may be nil when no predicate consults option lists.
func NewEngine(registry *Registry, enums EnumLookup) *Engine {
	return &Engine{registry: registry, enums: enums}
}

// StepErrors validates the fields active in one wizard step. Categories
// without a declarative schema fall through to their legacy validator
// function; that path is supported indefinitely.
func (e *Engine) StepErrors(id CategoryID, step int, data map[string]any) (ErrorMap, error) {
	cfg := e.registry.Config(id)
	if cfg == nil {
		return nil, NewUnknownCategoryError(id)
	}
	return e.validate(cfg, step, data), nil
}

// AllErrors validates the whole form: the union of StepErrors over every
// declared step plus custom validators invoked at StepAll.
func (e *Engine) AllErrors(id CategoryID, data map[string]any) (ErrorMap, error) {
	cfg := e.registry.Config(id)
	if cfg == nil {
		return nil, NewUnknownCategoryError(id)
	}

	errs := ErrorMap{}
	if cfg.Steps == nil && cfg.LegacyValidator != nil {
		errs.Merge(cfg.LegacyValidator(StepAll, data))
	} else {
		for _, step := range cfg.Steps {
			errs.Merge(e.validate(cfg, step.ID, data))
		}
	}
	ctx := NewContext(e.enums, data, errs, false)
	e.runCustomValidators(cfg, StepAll, ctx, errs)
	return errs, nil
}

func (e *Engine) validate(cfg *CategoryConfig, stepID int, data map[string]any) ErrorMap {
	errs := ErrorMap{}
	if cfg.Steps == nil && cfg.LegacyValidator != nil {
		errs.Merge(cfg.LegacyValidator(stepID, data))
		return errs
	}

	ctx := NewContext(e.enums, data, errs, false)
	step := cfg.StepByID(stepID)
	if step != nil {
		switch step.Kind {
		case StepBasics:
			validateBasics(data, errs)
		case StepMediaLocation:
			validateMediaLocation(data, errs)
		case StepDetails:
			for i := range step.Sections {
				sec := &step.Sections[i]
				if !sec.Visible(ctx) {
					continue
				}
				for j := range sec.Fields {
					validateField(&sec.Fields[j], ctx, data, errs)
				}
			}
		}
	}

	e.runCustomValidators(cfg, stepID, ctx, errs)
	return errs
}

func (e *Engine) runCustomValidators(cfg *CategoryConfig, stepID int, ctx *Context, errs ErrorMap) {
	for _, cv := range cfg.CustomValidators {
		if cv.Validate == nil {
			continue
		}
		if cv.When != nil && !cv.When(stepID, ctx) {
			continue
		}
		// Custom validators merge last so they can override base and
		// field-level messages for the same key.
		errs.Merge(cv.Validate(stepID, ctx))
	}
}

// Fixed base rules for the basics step: title, description, a positive
// price and a currency.
func validateBasics(data map[string]any, errs ErrorMap) {
	if isEmpty(data["title"]) {
		errs["title"] = "Title is required"
	}
	if isEmpty(data["description"]) {
		errs["description"] = "Description is required"
	}
	if price, ok := asNumber(data["price"]); !ok || price <= 0 {
		errs["price"] = "Price must be a positive number"
	}
	if isEmpty(data["currency"]) {
		errs["currency"] = "Currency is required"
	}
}

// Fixed base rules for the media/location step: city and district.
func validateMediaLocation(data map[string]any, errs ErrorMap) {
	if isEmpty(data["city"]) {
		errs["city"] = "City is required"
	}
	if isEmpty(data["district"]) {
		errs["district"] = "District is required"
	}
}

// validateField applies the declarative field rules. A field hidden by
// VisibleWhen is exempt entirely, even when it holds a stale invalid
// value in the form state.
func validateField(f *Field, ctx *Context, data map[string]any, errs ErrorMap) {
	if !f.Visible(ctx) {
		return
	}

	value := data[f.Name]
	empty := isEmpty(value)
	if f.Type == FieldToggle {
		empty = !isTruthy(value)
	}

	if f.IsRequired(ctx) && empty {
		errs[f.Name] = f.Label + " is required"
		return
	}
	if empty {
		return
	}

	if f.Type == FieldNumber {
		n, ok := asNumber(value)
		if !ok {
			errs[f.Name] = f.Label + " must be a number"
			return
		}
		if f.Min != nil && n < *f.Min {
			errs[f.Name] = fmt.Sprintf("%s must be at least %v", f.Label, *f.Min)
			return
		}
		if f.Max != nil && n > *f.Max {
			errs[f.Name] = fmt.Sprintf("%s must be at most %v", f.Label, *f.Max)
			return
		}
	}

	if f.Validate != nil {
		if msg := f.Validate(value, ctx); msg != "" {
			errs[f.Name] = msg
		}
	}
}
