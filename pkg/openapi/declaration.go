// Package openapi builds form declarations from the request body schema of an
// OpenAPI 3 operation. Each top-level scalar property becomes a field, its
// default becomes the field value, and schema constraints become catalog
// rules.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/seed"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	// ErrOperationNotFound is returned when no operation carries the id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no usable request
	// body schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

var requestMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// DeclarationFromOperation loads raw as an OpenAPI document and converts the
// request body of operationID into a seed.Declaration. Properties are emitted
// in lexical order; object and array properties are skipped because form
// fields hold strings.
func DeclarationFromOperation(ctx context.Context, raw []byte, operationID string, catalog *validation.Catalog) (seed.Declaration, error) {
	if err := ctx.Err(); err != nil {
		return seed.Declaration{}, err
	}
	if len(raw) == 0 {
		return seed.Declaration{}, errors.New("openapi: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return seed.Declaration{}, fmt.Errorf("openapi: load document: %w", err)
	}

	op := findOperation(doc, strings.TrimSpace(operationID))
	if op == nil {
		return seed.Declaration{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(op.RequestBody)
	if schema == nil {
		return seed.Declaration{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var decl seed.Declaration
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil || !isScalar(ref.Value) {
			continue
		}
		_, isRequired := required[name]
		field, err := fieldFromSchema(name, ref.Value, isRequired, catalog)
		if err != nil {
			return seed.Declaration{}, err
		}
		decl.Fields = append(decl.Fields, field)
	}
	return decl, nil
}

func findOperation(doc *openapi3.T, id string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil || id == "" {
		return nil
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)
	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == id {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func isScalar(schema *openapi3.Schema) bool {
	if schema.Type == nil {
		return len(schema.Properties) == 0 && schema.Items == nil
	}
	for _, typ := range schema.Type.Slice() {
		switch typ {
		case "object", "array":
			return false
		}
	}
	return true
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool, catalog *validation.Catalog) (seed.FieldDeclaration, error) {
	field := seed.FieldDeclaration{Name: name}
	if schema.Default != nil {
		field.Value = seed.Value(fmt.Sprint(schema.Default))
	}

	var refs []string
	if required {
		refs = append(refs, validation.RuleRequired)
	}
	if schema.MinLength > 0 {
		refs = append(refs, validation.RuleMinLength+":"+strconv.FormatUint(schema.MinLength, 10))
	}
	if schema.MaxLength != nil {
		refs = append(refs, validation.RuleMaxLength+":"+strconv.FormatUint(*schema.MaxLength, 10))
	}
	if schema.Pattern != "" {
		refs = append(refs, validation.RulePattern+":"+schema.Pattern)
	}
	if strings.EqualFold(schema.Format, "email") {
		refs = append(refs, validation.RuleEmail)
	}
	if len(schema.Enum) > 0 {
		options := make([]string, 0, len(schema.Enum))
		for _, option := range schema.Enum {
			options = append(options, fmt.Sprint(option))
		}
		refs = append(refs, validation.RuleOneOf+":"+strings.Join(options, "|"))
	}

	for _, ref := range refs {
		v, err := catalog.Resolve(ref)
		if err != nil {
			return seed.FieldDeclaration{}, fmt.Errorf("openapi: property %q: %w", name, err)
		}
		field.Validate = append(field.Validate, v)
	}
	return field, nil
}
