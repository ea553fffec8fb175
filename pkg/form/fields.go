package form

import "github.com/goliatone/go-formstate/pkg/state"

// FieldOption adjusts the SetField action built by Form.SetField.
type FieldOption func(*state.SetField)

// Value overwrites the field value. An empty string is a real value.
func Value(v string) FieldOption {
	return func(a *state.SetField) {
		a.Value = state.SetText(v)
	}
}

// Error appends an error to the field.
func Error(msg string) FieldOption {
	return func(a *state.SetField) {
		a.Error = state.Append(msg)
	}
}

// Warning appends a warning to the field.
func Warning(msg string) FieldOption {
	return func(a *state.SetField) {
		a.Warning = state.Append(msg)
	}
}

// ClearFieldErrors empties the field errors.
func ClearFieldErrors() FieldOption {
	return func(a *state.SetField) {
		a.Error = state.Clear()
	}
}

// ClearFieldWarnings empties the field warnings.
func ClearFieldWarnings() FieldOption {
	return func(a *state.SetField) {
		a.Warning = state.Clear()
	}
}
