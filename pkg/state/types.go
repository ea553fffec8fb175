package state

import (
	"maps"
	"slices"
	"sort"

	"github.com/mohae/deepcopy"
)

// FieldState is the tracked state of one named field.
type FieldState struct {
	Value    string   `json:"value" yaml:"value"`
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// DefaultField returns the state every field starts from.
func DefaultField() FieldState {
	return FieldState{
		Errors:   []string{},
		Warnings: []string{},
	}
}

// HasErrors reports whether the field carries at least one error.
func (f FieldState) HasErrors() bool {
	return len(f.Errors) > 0
}

// Equal reports whether f and o carry the same value and messages.
func (f FieldState) Equal(o FieldState) bool {
	return f.Value == o.Value && slices.Equal(f.Errors, o.Errors) && slices.Equal(f.Warnings, o.Warnings)
}

// Clone returns a copy that shares no backing arrays with f.
func (f FieldState) Clone() FieldState {
	return FieldState{
		Value:    f.Value,
		Errors:   cloneMessages(f.Errors),
		Warnings: cloneMessages(f.Warnings),
	}
}

// FormState is the full snapshot of a form: its fields and the form-level
// errors that are not attributable to a single field.
type FormState struct {
	Fields map[string]FieldState `json:"fields" yaml:"fields"`
	Errors []string              `json:"errors" yaml:"errors"`
}

// Empty returns the canonical empty tree.
func Empty() FormState {
	return FormState{
		Fields: make(map[string]FieldState),
		Errors: []string{},
	}
}

// Clone returns a deep copy of s. Nil maps and slices come back empty.
func (s FormState) Clone() FormState {
	out, _ := deepcopy.Copy(s).(FormState)
	if out.Fields == nil {
		out.Fields = make(map[string]FieldState)
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	for name, field := range out.Fields {
		if field.Errors == nil || field.Warnings == nil {
			out.Fields[name] = field.Clone()
		}
	}
	return out
}

// Equal reports whether s and o hold the same fields, values and messages.
// Nil and empty sequences compare equal.
func (s FormState) Equal(o FormState) bool {
	return slices.Equal(s.Errors, o.Errors) && maps.EqualFunc(s.Fields, o.Fields, FieldState.Equal)
}

// Field returns the named field, or the default field when it is absent. The
// second result reports presence.
func (s FormState) Field(name string) (FieldState, bool) {
	field, ok := s.Fields[name]
	if !ok {
		return DefaultField(), false
	}
	return field.Clone(), true
}

// Has reports whether the field is present in the tree.
func (s FormState) Has(name string) bool {
	_, ok := s.Fields[name]
	return ok
}

// Names returns the present field names in lexical order.
func (s FormState) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values projects the tree to field name -> value.
func (s FormState) Values() map[string]string {
	out := make(map[string]string, len(s.Fields))
	for name, field := range s.Fields {
		out[name] = field.Value
	}
	return out
}

// FieldErrors projects the tree to field name -> errors.
func (s FormState) FieldErrors() map[string][]string {
	out := make(map[string][]string, len(s.Fields))
	for name, field := range s.Fields {
		out[name] = cloneMessages(field.Errors)
	}
	return out
}

// FieldWarnings projects the tree to field name -> warnings.
func (s FormState) FieldWarnings() map[string][]string {
	out := make(map[string][]string, len(s.Fields))
	for name, field := range s.Fields {
		out[name] = cloneMessages(field.Warnings)
	}
	return out
}

// HasErrors reports whether the form has form-level errors or any field has
// errors. Every field is inspected.
func (s FormState) HasErrors() bool {
	found := len(s.Errors) > 0
	for _, field := range s.Fields {
		if field.HasErrors() {
			found = true
		}
	}
	return found
}

// withFields returns a shallow copy of s whose field map may be written
// without affecting s. Untouched FieldState entries keep sharing their slices,
// which is safe because the reducer never appends in place.
func (s FormState) withFields() FormState {
	out := FormState{Errors: s.Errors}
	if s.Fields == nil {
		out.Fields = make(map[string]FieldState)
	} else {
		out.Fields = maps.Clone(s.Fields)
	}
	return out
}

func cloneMessages(src []string) []string {
	if len(src) == 0 {
		return []string{}
	}
	return slices.Clone(src)
}

// appendMessage always allocates, so the result never aliases src.
func appendMessage(src []string, msg string) []string {
	out := make([]string, len(src), len(src)+1)
	copy(out, src)
	return append(out, msg)
}
