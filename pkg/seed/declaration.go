package seed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/state"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	// ErrInvalidField is returned for field declarations without a usable name.
	ErrInvalidField = errors.New("seed: field name is required")
	// ErrDuplicateField is returned when a field name is declared twice.
	ErrDuplicateField = errors.New("seed: duplicate field")
)

// Declaration is the typed declarative initial state of a form.
type Declaration struct {
	Fields   []FieldDeclaration
	Errors   []string
	Validate []validation.FormValidator
}

// FieldDeclaration declares one field. A nil Value leaves the default empty
// value in place.
type FieldDeclaration struct {
	Name     string
	Value    *string
	Errors   []string
	Warnings []string
	Validate []validation.FieldValidator
}

// Value returns a pointer to v for use in FieldDeclaration literals.
func Value(v string) *string {
	return &v
}

// Result is the outcome of Extract.
type Result struct {
	State           state.FormState
	FieldValidators *validation.FieldTable
	FormValidators  []validation.FormValidator
}

// Extract splits decl into a validator-free snapshot and validator tables.
// decl is only read; the snapshot is built through the reducer, so later
// changes to decl do not reach the result.
func Extract(decl Declaration) (Result, error) {
	result := Result{
		State:           state.Empty(),
		FieldValidators: validation.NewFieldTable(),
	}

	for _, msg := range decl.Errors {
		result.State = state.Reduce(result.State, state.AddError{Error: msg})
	}

	for _, v := range decl.Validate {
		if v != nil {
			result.FormValidators = append(result.FormValidators, v)
		}
	}

	for idx, field := range decl.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return Result{}, fmt.Errorf("%w (index %d)", ErrInvalidField, idx)
		}
		if result.State.Has(name) {
			return Result{}, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}

		result.State = state.Reduce(result.State, state.ResetField{Field: name})
		if field.Value != nil {
			result.State = state.Reduce(result.State, state.SetField{Field: name, Value: state.SetText(*field.Value)})
		}
		for _, msg := range field.Errors {
			result.State = state.Reduce(result.State, state.SetField{Field: name, Error: state.Append(msg)})
		}
		for _, msg := range field.Warnings {
			result.State = state.Reduce(result.State, state.SetField{Field: name, Warning: state.Append(msg)})
		}
		result.FieldValidators.Add(name, field.Validate...)
	}

	return result, nil
}
