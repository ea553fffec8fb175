package validation

import (
	"errors"

	"github.com/goliatone/go-formstate/pkg/state"
)

// Reader exposes the read side of a form to validators.
type Reader interface {
	Name() string
	State() state.FormState
	Field(name string) state.FieldState
	FieldValues() map[string]string
}

// Target is a form the engine can validate: it can be read and it accepts
// actions.
type Target interface {
	Reader
	Dispatch(action state.Action)
}

// FieldContext is handed to field validators.
type FieldContext struct {
	Field string
	Form  Reader
}

// FormContext is handed to form validators.
type FormContext struct {
	Form Reader
}

// FieldValidator checks a single field value.
type FieldValidator func(value string, ctx FieldContext) error

// FormValidator checks the whole form state.
type FormValidator func(s state.FormState, ctx FormContext) error

// Fail returns an error carrying msg verbatim. It is a convenience for
// validators written inline.
func Fail(msg string) error {
	return errors.New(msg)
}

// FieldTable maps field names to ordered validators and remembers the order
// in which fields were declared.
type FieldTable struct {
	order []string
	rules map[string][]FieldValidator
}

// NewFieldTable returns an empty table.
func NewFieldTable() *FieldTable {
	return &FieldTable{rules: make(map[string][]FieldValidator)}
}

// Add appends validators for name. Nil validators are skipped; a name with no
// remaining validators is not recorded.
func (t *FieldTable) Add(name string, validators ...FieldValidator) {
	if t == nil {
		return
	}
	if t.rules == nil {
		t.rules = make(map[string][]FieldValidator)
	}
	for _, v := range validators {
		if v == nil {
			continue
		}
		if _, seen := t.rules[name]; !seen {
			t.order = append(t.order, name)
		}
		t.rules[name] = append(t.rules[name], v)
	}
}

// Names returns the field names in declaration order.
func (t *FieldTable) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.order...)
}

// For returns the validators registered for name.
func (t *FieldTable) For(name string) []FieldValidator {
	if t == nil {
		return nil
	}
	return append([]FieldValidator(nil), t.rules[name]...)
}

// Len reports how many fields carry validators.
func (t *FieldTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}
