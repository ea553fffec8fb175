package state

// Action type identifiers. They are namespaced so a shared transport can carry
// them next to unrelated actions.
const (
	TypeSetField    = "formstate/SET_FIELD"
	TypeResetField  = "formstate/RESET_FIELD"
	TypeRemoveField = "formstate/REMOVE_FIELD"
	TypeAddError    = "formstate/ADD_ERROR"
	TypeClearErrors = "formstate/CLEAR_ERRORS"
	TypeResetForm   = "formstate/RESET_FORM"
)

// Action is anything that can be dispatched to a reducer.
type Action interface {
	Type() string
}

// SetField creates the field when absent, then applies the value, error and
// warning updates in that order.
type SetField struct {
	Field   string
	Value   Text
	Error   Change
	Warning Change
}

// ResetField replaces the field with DefaultField.
type ResetField struct {
	Field string
}

// RemoveField deletes the field entry.
type RemoveField struct {
	Field string
}

// AddError appends a form-level error.
type AddError struct {
	Error string
}

// ClearErrors empties the form-level errors. Field errors are untouched.
type ClearErrors struct{}

// ResetForm replaces the whole tree. A nil Initial resets to Empty.
type ResetForm struct {
	Initial *FormState
}

func (SetField) Type() string    { return TypeSetField }
func (ResetField) Type() string  { return TypeResetField }
func (RemoveField) Type() string { return TypeRemoveField }
func (AddError) Type() string    { return TypeAddError }
func (ClearErrors) Type() string { return TypeClearErrors }
func (ResetForm) Type() string   { return TypeResetForm }
