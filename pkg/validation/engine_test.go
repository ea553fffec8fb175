package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/state"
	"github.com/goliatone/go-formstate/pkg/validation"
)

type memoryTarget struct {
	current    state.FormState
	dispatched []string
}

func newMemoryTarget(fields map[string]string) *memoryTarget {
	t := &memoryTarget{current: state.Empty()}
	for name, value := range fields {
		t.current = state.Reduce(t.current, state.SetField{Field: name, Value: state.SetText(value)})
	}
	return t
}

func (m *memoryTarget) Name() string           { return "memory" }
func (m *memoryTarget) State() state.FormState { return m.current }
func (m *memoryTarget) FieldValues() map[string]string {
	return m.current.Values()
}

func (m *memoryTarget) Field(name string) state.FieldState {
	field, _ := m.current.Field(name)
	return field
}

func (m *memoryTarget) Dispatch(action state.Action) {
	m.dispatched = append(m.dispatched, action.Type())
	m.current = state.Reduce(m.current, action)
}

func TestEngine_ValidateRunsFormThenFieldValidators(t *testing.T) {
	var order []string
	fields := validation.NewFieldTable()
	fields.Add("field1",
		func(value string, ctx validation.FieldContext) error {
			order = append(order, "field:"+ctx.Field)
			return errors.New("e1")
		},
		func(string, validation.FieldContext) error {
			order = append(order, "field:second")
			return validation.Fail("e2")
		},
	)
	form := []validation.FormValidator{
		func(s state.FormState, ctx validation.FormContext) error {
			order = append(order, "form:"+ctx.Form.Name())
			return errors.New("e3")
		},
	}

	target := newMemoryTarget(map[string]string{"field1": "value"})
	engine := validation.NewEngine(fields, form)

	if engine.Validate(target) {
		t.Fatalf("expected validation to fail")
	}

	if diff := cmp.Diff([]string{"form:memory", "field:field1", "field:second"}, order); diff != "" {
		t.Fatalf("validator order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"e3"}, target.current.Errors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	field, _ := target.current.Field("field1")
	if diff := cmp.Diff([]string{"e1", "e2"}, field.Errors); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_ValidatorSeesCurrentValue(t *testing.T) {
	var seen string
	fields := validation.NewFieldTable()
	fields.Add("name", func(value string, _ validation.FieldContext) error {
		seen = value
		return nil
	})

	target := newMemoryTarget(map[string]string{"name": "before"})
	target.Dispatch(state.SetField{Field: "name", Value: state.SetText("after")})

	if !validation.NewEngine(fields, nil).Validate(target) {
		t.Fatalf("expected validation to pass")
	}
	if seen != "after" {
		t.Fatalf("validator saw %q, want %q", seen, "after")
	}
}

func TestEngine_ValidatorOnUndeclaredFieldCreatesIt(t *testing.T) {
	fields := validation.NewFieldTable()
	fields.Add("missing", validation.Required())

	target := newMemoryTarget(nil)
	if validation.NewEngine(fields, nil).Validate(target) {
		t.Fatalf("expected required to fail on absent field")
	}
	field, ok := target.current.Field("missing")
	if !ok || len(field.Errors) != 1 {
		t.Fatalf("expected field to be created with one error, got %+v (present=%v)", field, ok)
	}
}

func TestEngine_ValidReturnsTrue(t *testing.T) {
	target := newMemoryTarget(map[string]string{"a": "1"})
	if !validation.NewEngine(nil, nil).Validate(target) {
		t.Fatalf("empty engine should validate")
	}
}

func TestClearErrors(t *testing.T) {
	target := newMemoryTarget(map[string]string{"a": "1", "b": "2"})
	target.Dispatch(state.AddError{Error: "form"})
	target.Dispatch(state.SetField{Field: "a", Error: state.Append("bad"), Warning: state.Append("careful")})
	target.Dispatch(state.SetField{Field: "b", Error: state.Append("worse")})

	validation.ClearErrors(target)

	if validation.HasErrors(target.current) {
		t.Fatalf("expected no errors after clear, got %+v", target.current)
	}
	field, _ := target.current.Field("a")
	if diff := cmp.Diff([]string{"careful"}, field.Warnings); diff != "" {
		t.Fatalf("warnings should survive clear (-want +got):\n%s", diff)
	}
	if field.Value != "1" {
		t.Fatalf("value should survive clear, got %q", field.Value)
	}
}

func TestFieldTable_PreservesOrder(t *testing.T) {
	table := validation.NewFieldTable()
	table.Add("z", validation.Required())
	table.Add("a", validation.Required())
	table.Add("z", validation.MaxLength(3))
	table.Add("skipped", nil)

	if diff := cmp.Diff([]string{"z", "a"}, table.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if got := len(table.For("z")); got != 2 {
		t.Fatalf("expected 2 validators for z, got %d", got)
	}
}
