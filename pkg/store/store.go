package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrInvalidSlot is returned for blank slot names or nil reducers.
	ErrInvalidSlot = errors.New("store: slot name and reducer are required")
	// ErrSlotExists is returned when a slot name is already registered.
	ErrSlotExists = errors.New("store: slot already registered")
)

// Action is anything with a type identifier.
type Action interface {
	Type() string
}

// Addressed is an action meant for a single slot. Other slots never see it.
type Addressed interface {
	Action
	Slot() string
}

type envelope struct {
	slot   string
	action Action
}

func (e envelope) Type() string   { return e.action.Type() }
func (e envelope) Slot() string   { return e.slot }
func (e envelope) Unwrap() Action { return e.action }

// To addresses action to slot. The slot reducer receives action itself, not
// the envelope.
func To(slot string, action Action) Addressed {
	return envelope{slot: strings.TrimSpace(slot), action: action}
}

// Reducer computes the next slot value. It must not mutate prev.
type Reducer func(prev any, action Action) any

// Dispatcher delivers an action.
type Dispatcher func(action Action)

// Middleware wraps the next dispatcher in the chain. The store is passed so
// middleware can read slots or dispatch follow-up actions.
type Middleware func(s *Store, next Dispatcher) Dispatcher

// Option configures a Store.
type Option func(*Store)

// WithMiddleware appends middleware; the first one supplied runs first.
func WithMiddleware(middleware ...Middleware) Option {
	return func(s *Store) {
		for _, mw := range middleware {
			if mw != nil {
				s.middleware = append(s.middleware, mw)
			}
		}
	}
}

// WithLogger sets the logger used for store diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type slot struct {
	value   any
	reducer Reducer
}

// Store holds slot values and serialises dispatch.
type Store struct {
	mu         sync.Mutex
	slots      map[string]*slot
	listeners  map[int]func()
	nextID     int
	middleware []Middleware
	dispatch   Dispatcher
	logger     *zap.Logger
}

// New constructs an empty store.
func New(options ...Option) *Store {
	s := &Store{
		slots:     make(map[string]*slot),
		listeners: make(map[int]func()),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	dispatch := Dispatcher(s.reduce)
	for i := len(s.middleware) - 1; i >= 0; i-- {
		dispatch = s.middleware[i](s, dispatch)
	}
	s.dispatch = dispatch
	return s
}

// Register adds a slot with its initial value.
func (s *Store) Register(name string, initial any, reducer Reducer) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || reducer == nil {
		return ErrInvalidSlot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.slots[trimmed]; exists {
		return fmt.Errorf("%w: %q", ErrSlotExists, trimmed)
	}
	s.slots[trimmed] = &slot{value: initial, reducer: reducer}
	s.logger.Debug("slot registered", zap.String("slot", trimmed))
	return nil
}

// Unregister drops a slot. Unknown names are ignored.
func (s *Store) Unregister(name string) {
	trimmed := strings.TrimSpace(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.slots[trimmed]; !exists {
		return
	}
	delete(s.slots, trimmed)
	s.logger.Debug("slot unregistered", zap.String("slot", trimmed))
}

// Slot returns the current value of a slot.
func (s *Store) Slot(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.slots[strings.TrimSpace(name)]
	if !ok {
		return nil, false
	}
	return entry.value, true
}

// Slots lists the registered slot names in lexical order.
func (s *Store) Slots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.slots))
	for name := range s.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch sends action through the middleware chain to every slot, or to
// one slot when the action is Addressed. Nil actions are dropped.
func (s *Store) Dispatch(action Action) {
	if action == nil {
		return
	}
	if env, ok := action.(envelope); ok && env.action == nil {
		return
	}
	s.dispatch(action)
}

// Subscribe registers fn to run after every dispatch. The returned function
// removes the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) reduce(action Action) {
	s.mu.Lock()
	if addressed, ok := action.(Addressed); ok {
		if entry, exists := s.slots[addressed.Slot()]; exists {
			entry.value = entry.reducer(entry.value, unwrap(addressed))
		}
	} else {
		for _, entry := range s.slots {
			entry.value = entry.reducer(entry.value, action)
		}
	}
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]func(), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func unwrap(action Addressed) Action {
	if inner, ok := action.(interface{ Unwrap() Action }); ok {
		return inner.Unwrap()
	}
	return action
}

// LoggingMiddleware logs every dispatched action type at debug level, with the
// target slot for addressed actions.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(_ *Store, next Dispatcher) Dispatcher {
		return func(action Action) {
			fields := []zap.Field{zap.String("action", action.Type())}
			if addressed, ok := action.(Addressed); ok {
				fields = append(fields, zap.String("slot", addressed.Slot()))
			}
			logger.Debug("dispatch", fields...)
			next(action)
		}
	}
}
