package validation

import (
	"github.com/goliatone/go-formstate/pkg/state"
)

// Engine runs a fixed set of validators. It holds no form state of its own.
type Engine struct {
	fields *FieldTable
	form   []FormValidator
}

// NewEngine constructs an engine over the extracted validator tables.
func NewEngine(fields *FieldTable, form []FormValidator) *Engine {
	if fields == nil {
		fields = NewFieldTable()
	}
	return &Engine{
		fields: fields,
		form:   append([]FormValidator(nil), form...),
	}
}

// Validate runs form validators, then field validators, dispatching each
// failure into t. It reports whether t is free of errors afterwards.
func (e *Engine) Validate(t Target) bool {
	if t == nil {
		return true
	}
	if e == nil {
		return !HasErrors(t.State())
	}

	formCtx := FormContext{Form: t}
	for _, validate := range e.form {
		if err := validate(t.State(), formCtx); err != nil {
			t.Dispatch(state.AddError{Error: err.Error()})
		}
	}

	for _, name := range e.fields.Names() {
		fieldCtx := FieldContext{Field: name, Form: t}
		for _, validate := range e.fields.For(name) {
			if err := validate(t.Field(name).Value, fieldCtx); err != nil {
				t.Dispatch(state.SetField{Field: name, Error: state.Append(err.Error())})
			}
		}
	}

	return !HasErrors(t.State())
}

// HasErrors reports whether s has form-level errors or any field errors.
func HasErrors(s state.FormState) bool {
	return s.HasErrors()
}

// ClearErrors empties the form-level errors and the errors of every present
// field.
func ClearErrors(t Target) {
	if t == nil {
		return
	}
	t.Dispatch(state.ClearErrors{})
	for _, name := range t.State().Names() {
		t.Dispatch(state.SetField{Field: name, Error: state.Clear()})
	}
}
