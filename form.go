package vitrin

import (
	"context"
	"strings"
)

// FormSession is the per-screen state of one creation/edit wizard run. It
// owns its form state exclusively; all mutation goes through the declared
// operations. Besides the service call on Submit every operation is a
// pure state transformation.
type FormSession struct {
	config  *CategoryConfig
	engine  *Engine
	enums   EnumLookup
	isEdit  bool
	editID  string
	state   map[string]any
	errors  ErrorMap
	current int
	total   int
}

// NewFormSession initializes a wizard session for a category. Schema
// defaults seed the state first, then caller-supplied initial data (edit
// mode) is merged over them. An unknown category is a fatal configuration
// error: rendering cannot proceed.
func NewFormSession(registry *Registry, enums EnumLookup, id CategoryID, initial map[string]any, isEdit bool) (*FormSession, error) {
	cfg := registry.Config(id)
	if cfg == nil {
		return nil, NewUnknownCategoryError(id)
	}

	state := make(map[string]any, len(cfg.InitialData)+len(initial))
	for k, v := range cfg.InitialData {
		state[k] = v
	}
	var editID string
	for k, v := range initial {
		state[k] = v
	}
	if isEdit {
		editID = asString(initial["id"])
	}

	return &FormSession{
		config:  cfg,
		engine:  NewEngine(registry, enums),
		enums:   enums,
		isEdit:  isEdit,
		editID:  editID,
		state:   state,
		errors:  ErrorMap{},
		current: 1,
		total:   cfg.TotalSteps(),
	}, nil
}

// CurrentStep returns the 1-based current step.
func (s *FormSession) CurrentStep() int { return s.current }

// TotalSteps returns the step count including the trailing summary step.
func (s *FormSession) TotalSteps() int { return s.total }

// Errors returns the current per-field error map.
func (s *FormSession) Errors() ErrorMap { return s.errors }

// Value returns the current form value for name.
func (s *FormSession) Value(name string) any { return s.state[name] }

// State returns a copy of the flat form state.
func (s *FormSession) State() map[string]any {
	out := make(map[string]any, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}

// Context builds a predicate context over the live session state, for
// callers that render fields (visibility, options, disabled state).
func (s *FormSession) Context() *Context {
	return NewContext(s.enums, s.state, s.errors, s.isEdit)
}

// Set writes one field value. It clears a pending error for the field,
// then re-runs derived-field rules and effects once, in declaration
// order, each rule seeing the previous rule's output. There is no
// fixed-point iteration: an effect must not depend on a later effect's
// output within the same pass.
func (s *FormSession) Set(name string, value any) {
	ctx := s.Context()
	if f := s.config.FieldByName(name); f != nil && f.OnChange != nil {
		f.OnChange(value, ctx)
	} else {
		s.state[name] = value
	}
	delete(s.errors, name)

	for _, d := range s.config.DerivedFields {
		if d.Source != name {
			continue
		}
		derived := s.deriveValue(&d, ctx)
		if s.state[d.Target] != derived {
			s.state[d.Target] = derived
		}
	}
	for _, effect := range s.config.Effects {
		effect(ctx)
	}
}

// SetChecked writes a toggle field.
func (s *FormSession) SetChecked(name string, checked bool) {
	s.Set(name, checked)
}

func (s *FormSession) deriveValue(d *DerivedField, ctx *Context) any {
	label := asString(s.state[d.Source])
	for _, opt := range ctx.Enum(d.EnumKey) {
		if opt.Value == label {
			label = opt.Label
			break
		}
	}
	if d.Transform != nil {
		return d.Transform(label, ctx)
	}
	if d.Uppercase {
		return strings.ToUpper(label)
	}
	return label
}

// Next validates the current step. On success it advances one step
// (capped at the total) and returns an empty map; on failure it stores
// and returns the error map without advancing.
func (s *FormSession) Next() (ErrorMap, error) {
	errs, err := s.engine.StepErrors(s.config.ID, s.current, s.state)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		s.errors = errs
		return errs, nil
	}
	if s.current < s.total {
		s.current++
	}
	return ErrorMap{}, nil
}

// Back moves one step backward without validating.
func (s *FormSession) Back() {
	s.GoTo(s.current - 1)
}

// GoTo jumps to step n, clamped to [1, TotalSteps]. Stepping backward
// never validates.
func (s *FormSession) GoTo(n int) {
	if n < 1 {
		n = 1
	}
	if n > s.total {
		n = s.total
	}
	s.current = n
}

// Submit validates the whole form and, on success, calls the bound
// category service (create, or update in edit mode). A failing
// validation returns the error map without touching the service; a
// service failure is returned to the caller untouched, never retried.
func (s *FormSession) Submit(ctx context.Context) (*Listing, error) {
	errs, err := s.engine.AllErrors(s.config.ID, s.state)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		s.errors = errs
		return nil, NewValidationError(s.config.ID, errs)
	}
	if s.config.Service == nil {
		return nil, NewError(ErrorTypeConfig, ErrCodeMissingSchema, "category has no bound service").WithField(string(s.config.ID))
	}
	if s.isEdit {
		return s.config.Service.Update(ctx, s.editID, s.State())
	}
	return s.config.Service.Create(ctx, s.State())
}
