// Package binding connects a view callback to a form so the callback sees the
// field values once on connect and again after every change.
package binding

import (
	"sync"

	"github.com/goliatone/go-formstate/pkg/state"
)

// Source is the part of a form a binding needs.
type Source interface {
	Name() string
	FieldValues() map[string]string
	Subscribe(fn func(state.FormState)) (unsubscribe func())
}

// View receives the form name and its current field values.
type View func(form string, values map[string]string)

// Binding is a live connection between a Source and a View.
type Binding struct {
	once        sync.Once
	unsubscribe func()
}

// Connect calls view with the current values and subscribes it to later
// changes. Close stops delivery.
func Connect(src Source, view View) *Binding {
	b := &Binding{unsubscribe: func() {}}
	if src == nil || view == nil {
		return b
	}
	name := src.Name()
	view(name, src.FieldValues())
	b.unsubscribe = src.Subscribe(func(s state.FormState) {
		view(name, s.Values())
	})
	return b
}

// Close unsubscribes the view. It is safe to call more than once.
func (b *Binding) Close() {
	if b == nil {
		return
	}
	b.once.Do(b.unsubscribe)
}
