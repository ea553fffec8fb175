package validation_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formstate/pkg/validation"
)

func TestCatalog_ResolveBuiltins(t *testing.T) {
	catalog := validation.NewCatalog()

	cases := []struct {
		ref   string
		value string
		fails bool
	}{
		{ref: "required", value: "  ", fails: true},
		{ref: "required", value: "x", fails: false},
		{ref: "minLength:3", value: "ab", fails: true},
		{ref: "minLength:3", value: "", fails: false},
		{ref: "maxLength: 2", value: "abc", fails: true},
		{ref: "pattern:^[a-z]+$", value: "abc", fails: false},
		{ref: "pattern:^[a-z]+$", value: "ABC", fails: true},
		{ref: "email", value: "ada@example.com", fails: false},
		{ref: "email", value: "Ada <ada@example.com>", fails: true},
		{ref: "oneOf:draft|published", value: "draft", fails: false},
		{ref: "oneOf:draft|published", value: "archived", fails: true},
	}

	for _, tc := range cases {
		t.Run(tc.ref+"/"+tc.value, func(t *testing.T) {
			validator, err := catalog.Resolve(tc.ref)
			if err != nil {
				t.Fatalf("resolve %q: %v", tc.ref, err)
			}
			err = validator(tc.value, validation.FieldContext{Field: "f"})
			if (err != nil) != tc.fails {
				t.Fatalf("validator(%q) error = %v, want failure=%v", tc.value, err, tc.fails)
			}
		})
	}
}

func TestCatalog_ResolveErrors(t *testing.T) {
	catalog := validation.NewCatalog()

	if _, err := catalog.Resolve("nope"); !errors.Is(err, validation.ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
	if _, err := catalog.Resolve("minLength:abc"); err == nil {
		t.Fatalf("expected invalid argument error")
	}
	if _, err := catalog.Resolve("pattern:("); err == nil {
		t.Fatalf("expected invalid pattern error")
	}
}

func TestCatalog_Register(t *testing.T) {
	catalog := validation.NewCatalog()
	catalog.Register("slug", func(string) (validation.FieldValidator, error) {
		return validation.Pattern(`^[a-z0-9-]+$`)
	})

	validator, err := catalog.Resolve("slug")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if err := validator("Not A Slug", validation.FieldContext{}); err == nil {
		t.Fatalf("expected slug validator to fail")
	}
}
