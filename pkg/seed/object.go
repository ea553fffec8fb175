package seed

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formstate/pkg/state"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// ErrUnsupportedValidator is returned when a validate entry is neither a
// validator function nor a catalog rule reference.
var ErrUnsupportedValidator = errors.New("seed: unsupported validator")

// Object keys understood by FromMap and Decode.
const (
	KeyFields   = "fields"
	KeyErrors   = "errors"
	KeyWarnings = "warnings"
	KeyValue    = "value"
	KeyValidate = "validate"
)

// FromMap converts the loosely typed object shape into a Declaration:
//
//	{
//	  "fields": {"email": {"value": "", "errors": [], "validate": ["required", "email"]}},
//	  "errors": [],
//	  "validate": formValidator,
//	}
//
// Field validate entries may be validator functions, slices of them, rule
// references resolved through catalog, or a mix. Field order is lexical
// because maps carry none. A nil map yields an empty Declaration.
func FromMap(obj map[string]any, catalog *validation.Catalog) (Declaration, error) {
	var decl Declaration
	if obj == nil {
		return decl, nil
	}

	errs, err := stringList(obj[KeyErrors])
	if err != nil {
		return Declaration{}, fmt.Errorf("seed: errors: %w", err)
	}
	decl.Errors = errs

	formValidators, err := formValidatorList(obj[KeyValidate])
	if err != nil {
		return Declaration{}, err
	}
	decl.Validate = formValidators

	rawFields, ok := asObject(obj[KeyFields])
	if !ok {
		if obj[KeyFields] != nil {
			return Declaration{}, fmt.Errorf("seed: fields must be an object, got %T", obj[KeyFields])
		}
		return decl, nil
	}

	names := make([]string, 0, len(rawFields))
	for name := range rawFields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field, err := fieldFromMap(name, rawFields[name], catalog)
		if err != nil {
			return Declaration{}, err
		}
		decl.Fields = append(decl.Fields, field)
	}
	return decl, nil
}

func fieldFromMap(name string, raw any, catalog *validation.Catalog) (FieldDeclaration, error) {
	field := FieldDeclaration{Name: name}
	if raw == nil {
		return field, nil
	}
	obj, ok := asObject(raw)
	if !ok {
		return FieldDeclaration{}, fmt.Errorf("seed: field %q must be an object, got %T", name, raw)
	}

	if value, present := obj[KeyValue]; present && value != nil {
		text := scalarString(value)
		field.Value = &text
	}

	var err error
	if field.Errors, err = stringList(obj[KeyErrors]); err != nil {
		return FieldDeclaration{}, fmt.Errorf("seed: field %q errors: %w", name, err)
	}
	if field.Warnings, err = stringList(obj[KeyWarnings]); err != nil {
		return FieldDeclaration{}, fmt.Errorf("seed: field %q warnings: %w", name, err)
	}
	if field.Validate, err = fieldValidatorList(obj[KeyValidate], catalog); err != nil {
		return FieldDeclaration{}, fmt.Errorf("seed: field %q: %w", name, err)
	}
	return field, nil
}

func fieldValidatorList(raw any, catalog *validation.Catalog) ([]validation.FieldValidator, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case validation.FieldValidator:
		return []validation.FieldValidator{typed}, nil
	case func(string, validation.FieldContext) error:
		return []validation.FieldValidator{typed}, nil
	case []validation.FieldValidator:
		return append([]validation.FieldValidator(nil), typed...), nil
	case string:
		v, err := catalog.Resolve(typed)
		if err != nil {
			return nil, err
		}
		return []validation.FieldValidator{v}, nil
	case []string:
		out := make([]validation.FieldValidator, 0, len(typed))
		for _, ref := range typed {
			v, err := catalog.Resolve(ref)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case []any:
		var out []validation.FieldValidator
		for _, entry := range typed {
			vs, err := fieldValidatorList(entry, catalog)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValidator, raw)
	}
}

func formValidatorList(raw any) ([]validation.FormValidator, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case validation.FormValidator:
		return []validation.FormValidator{typed}, nil
	case func(state.FormState, validation.FormContext) error:
		return []validation.FormValidator{typed}, nil
	case []validation.FormValidator:
		return append([]validation.FormValidator(nil), typed...), nil
	case []any:
		var out []validation.FormValidator
		for _, entry := range typed {
			vs, err := formValidatorList(entry)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: form validator %T", ErrUnsupportedValidator, raw)
	}
}

func asObject(raw any) (map[string]any, bool) {
	switch typed := raw.(type) {
	case map[string]any:
		return typed, true
	case map[string]map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func stringList(raw any) ([]string, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{typed}, nil
	case []string:
		return append([]string(nil), typed...), nil
	case []any:
		out := make([]string, 0, len(typed))
		for _, entry := range typed {
			msg, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", entry)
			}
			out = append(out, msg)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string list, got %T", raw)
	}
}

func scalarString(raw any) string {
	switch typed := raw.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}
