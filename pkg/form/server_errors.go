package form

import (
	"slices"
	"sort"
	"strings"
)

// ErrorMapping splits a server error payload into field errors and form
// errors.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// envelopeKeys are path segments backends put in front of the field name.
var envelopeKeys = []string{"body", "data", "request", "payload", "attributes", "params"}

// MapErrorPayload routes each payload key to one of fieldNames. A key that
// equals a field name maps to it directly; otherwise the key is split on
// '/', '.', '[' and ']' ("/body/email", "data.email", "emails[0]"), envelope
// segments such as body or data are skipped, and the first remaining segment
// that names a field wins. Everything else, including "", "__all__" and
// "non_field_errors", is a form error. Blank and repeated messages are
// dropped per target.
func MapErrorPayload(fieldNames []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, ok := fieldForKey(key, fieldNames)
		if !ok {
			mapping.Form = addMessages(mapping.Form, payload[key])
			continue
		}
		merged := addMessages(mapping.Fields[field], payload[key])
		if len(merged) == 0 {
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[field] = merged
	}
	return mapping
}

// ApplyServerErrors maps payload onto the form's present fields and appends
// the results as field and form errors. It is meant to be called from a
// failure callback with the errors a backend returned.
func (f *Form) ApplyServerErrors(payload map[string][]string) ErrorMapping {
	mapping := MapErrorPayload(f.current().Names(), payload)

	for _, msg := range mapping.Form {
		f.AddError(msg)
	}
	fields := make([]string, 0, len(mapping.Fields))
	for name := range mapping.Fields {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	for _, name := range fields {
		for _, msg := range mapping.Fields[name] {
			f.SetField(name, Error(msg))
		}
	}
	return mapping
}

func fieldForKey(key string, fieldNames []string) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	if slices.Contains(fieldNames, key) {
		return key, true
	}

	segments := strings.FieldsFunc(key, func(r rune) bool {
		switch r {
		case '/', '.', '[', ']', '#', '$':
			return true
		}
		return false
	})
	for _, segment := range segments {
		if slices.Contains(envelopeKeys, strings.ToLower(segment)) {
			continue
		}
		// JSON pointer escapes.
		segment = strings.ReplaceAll(strings.ReplaceAll(segment, "~1", "/"), "~0", "~")
		if slices.Contains(fieldNames, segment) {
			return segment, true
		}
	}
	return "", false
}

func addMessages(dst []string, messages []string) []string {
	for _, msg := range messages {
		msg = strings.TrimSpace(msg)
		if msg == "" || slices.Contains(dst, msg) {
			continue
		}
		dst = append(dst, msg)
	}
	return dst
}
