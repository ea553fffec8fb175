package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/seed"
)

func TestMapErrorPayload(t *testing.T) {
	fields := []string{"name", "email", "tags", "a/b", "data"}
	payload := map[string][]string{
		"/body/name":                 {"Name is required"},
		"request.payload.email":      {"Email invalid", " Email invalid "},
		"$.body.tags[0]":             {"Tags must be unique"},
		"#/body/a~1b":                {"Escaped pointer"},
		"data":                       {"Field named like an envelope"},
		"non_field_errors":           {"Form level error"},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"":                           {"Unscoped form error", " "},
	}

	mapped := form.MapErrorPayload(fields, payload)

	wantFields := map[string][]string{
		"name":  {"Name is required"},
		"email": {"Email invalid"},
		"tags":  {"Tags must be unique"},
		"a/b":   {"Escaped pointer"},
		"data":  {"Field named like an envelope"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_FirstFieldSegmentWins(t *testing.T) {
	mapped := form.MapErrorPayload([]string{"owner", "email"}, map[string][]string{
		"data.owner.email": {"Owner email invalid"},
	})
	want := map[string][]string{"owner": {"Owner email invalid"}}
	if diff := cmp.Diff(want, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if len(mapped.Form) != 0 {
		t.Fatalf("expected no form errors, got %v", mapped.Form)
	}
}

func TestApplyServerErrors(t *testing.T) {
	f := mustForm(t, "form", seed.Declaration{
		Fields: []seed.FieldDeclaration{{Name: "email"}, {Name: "name"}},
	})
	f.SetField("email", form.Error("local"))

	f.ApplyServerErrors(map[string][]string{
		"data.email": {"taken", "taken"},
		"__all__":    {"try again later"},
		"unknown":    {"mystery"},
	})

	if diff := cmp.Diff([]string{"local", "taken"}, f.Field("email").Errors); diff != "" {
		t.Fatalf("email errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"try again later", "mystery"}, f.Errors()); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if len(f.Field("name").Errors) != 0 {
		t.Fatalf("name should be untouched")
	}
}
