package form

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/registry"
	"github.com/goliatone/go-formstate/pkg/seed"
	"github.com/goliatone/go-formstate/pkg/state"
	"github.com/goliatone/go-formstate/pkg/store"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Form is a single editable form instance.
type Form struct {
	name      string
	store     *store.Store
	initial   state.FormState
	engine    *validation.Engine
	registry  *registry.Registry[*Form]
	logger    *zap.Logger
	submit    Operation
	onSuccess SuccessFunc
	onFailure FailureFunc
	policy    CallbackPolicy
}

// Ensure Form can be validated by the engine.
var _ validation.Target = (*Form)(nil)

// New constructs a form named name from decl. The declaration is copied, so
// later changes to decl do not affect the form.
func New(name string, decl seed.Declaration, options ...Option) (*Form, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrInvalidName
	}

	extracted, err := seed.Extract(decl)
	if err != nil {
		return nil, fmt.Errorf("form %q: %w", trimmed, err)
	}

	f := &Form{
		name:    trimmed,
		initial: extracted.State.Clone(),
		engine:  validation.NewEngine(extracted.FieldValidators, extracted.FormValidators),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.store == nil {
		f.store = store.New(store.WithLogger(f.logger))
	}
	f.logger = f.logger.With(zap.String("form", f.name))

	if err := f.store.Register(f.name, extracted.State, reduceSlot); err != nil {
		return nil, fmt.Errorf("form %q: %w", f.name, err)
	}
	if f.registry != nil {
		if err := f.registry.Add(f); err != nil {
			f.store.Unregister(f.name)
			return nil, fmt.Errorf("form %q: %w", f.name, err)
		}
	}

	f.logger.Debug("form created",
		zap.Int("fields", len(extracted.State.Fields)),
		zap.Int("field_validators", extracted.FieldValidators.Len()),
		zap.Int("form_validators", len(extracted.FormValidators)),
	)
	return f, nil
}

func reduceSlot(prev any, action store.Action) any {
	current, ok := prev.(state.FormState)
	if !ok {
		current = state.Empty()
	}
	return state.Reduce(current, action)
}

// Name returns the form name.
func (f *Form) Name() string {
	return f.name
}

// Store returns the store holding the form's slot.
func (f *Form) Store() *store.Store {
	return f.store
}

// Dispatch sends action to the form's slot. Other slots of a shared store
// do not see it.
func (f *Form) Dispatch(action state.Action) {
	if action == nil {
		return
	}
	f.store.Dispatch(store.To(f.name, action))
}

// Subscribe runs fn with a copy of the snapshot after each dispatch that
// changed it. Dispatches that leave the form untouched, such as actions for
// other slots of a shared store, are skipped.
func (f *Form) Subscribe(fn func(state.FormState)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	var mu sync.Mutex
	last := f.current()
	return f.store.Subscribe(func() {
		next := f.current()
		mu.Lock()
		if next.Equal(last) {
			mu.Unlock()
			return
		}
		last = next
		mu.Unlock()
		fn(next.Clone())
	})
}

// Close removes the form from its registry and drops its store slot.
func (f *Form) Close() {
	if f.registry != nil {
		if current, ok := f.registry.Get(f.name); ok && current == f {
			f.registry.Remove(f.name)
		}
	}
	f.store.Unregister(f.name)
}

// State returns a copy of the current snapshot.
func (f *Form) State() state.FormState {
	return f.current().Clone()
}

func (f *Form) current() state.FormState {
	value, ok := f.store.Slot(f.name)
	if !ok {
		return state.Empty()
	}
	current, ok := value.(state.FormState)
	if !ok {
		return state.Empty()
	}
	return current
}

// InitialState returns a copy of the reset checkpoint.
func (f *Form) InitialState() state.FormState {
	return f.initial.Clone()
}

// Field returns the named field, or the default field when absent.
func (f *Form) Field(name string) state.FieldState {
	field, _ := f.current().Field(name)
	return field
}

// HasField reports whether the field is present.
func (f *Form) HasField(name string) bool {
	return f.current().Has(name)
}

// Fields returns every present field.
func (f *Form) Fields() map[string]state.FieldState {
	return f.State().Fields
}

// FieldValues returns field name -> value.
func (f *Form) FieldValues() map[string]string {
	return f.current().Values()
}

// FieldErrors returns field name -> errors.
func (f *Form) FieldErrors() map[string][]string {
	return f.current().FieldErrors()
}

// FieldWarnings returns field name -> warnings.
func (f *Form) FieldWarnings() map[string][]string {
	return f.current().FieldWarnings()
}

// Errors returns the form-level errors.
func (f *Form) Errors() []string {
	return f.State().Errors
}

// SetField applies value and message updates to a field, creating it when
// absent. Without options it only ensures the field exists.
func (f *Form) SetField(name string, options ...FieldOption) {
	action := state.SetField{Field: name}
	for _, opt := range options {
		if opt != nil {
			opt(&action)
		}
	}
	f.Dispatch(action)
}

// ResetField restores the field to its default state.
func (f *Form) ResetField(name string) {
	f.Dispatch(state.ResetField{Field: name})
}

// RemoveField deletes the field.
func (f *Form) RemoveField(name string) {
	f.Dispatch(state.RemoveField{Field: name})
}

// AddError appends a form-level error.
func (f *Form) AddError(msg string) {
	f.Dispatch(state.AddError{Error: msg})
}

// ClearErrors empties form-level errors and the errors of every field.
// Warnings are kept.
func (f *Form) ClearErrors() {
	validation.ClearErrors(f)
}

// HasErrors reports whether the form or any field has errors.
func (f *Form) HasErrors() bool {
	return validation.HasErrors(f.current())
}

// Validate runs every validator and reports whether the form is error free
// afterwards. Existing errors are not cleared first; Submit does that.
func (f *Form) Validate() bool {
	return f.engine.Validate(f)
}

// Reset restores the checkpoint taken at construction or by the last
// SaveInitialState.
func (f *Form) Reset() {
	initial := f.initial.Clone()
	f.Dispatch(state.ResetForm{Initial: &initial})
}

// SaveInitialState makes the current snapshot the new reset checkpoint.
func (f *Form) SaveInitialState() {
	f.initial = f.current().Clone()
}
