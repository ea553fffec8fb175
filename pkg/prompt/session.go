// Package prompt fills a form interactively. A Session asks for each field in
// turn, strips markup from the answers, and writes them with SetField; Run
// repeats the fields that fail validation until the form is valid or the
// round limit is reached.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/form"
)

// ErrStillInvalid is returned by Run when the round limit is reached with
// errors left.
var ErrStillInvalid = errors.New("prompt: form still invalid")

// Option configures a Session.
type Option func(*Session)

// WithSecretFields marks fields that are read without echo.
func WithSecretFields(names ...string) Option {
	return func(s *Session) {
		for _, name := range names {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				s.secret[trimmed] = struct{}{}
			}
		}
	}
}

// WithFieldOrder sets the order fields are asked in. Fields not listed follow
// in lexical order.
func WithFieldOrder(names ...string) Option {
	return func(s *Session) {
		s.order = append([]string(nil), names...)
	}
}

// WithMaxRounds bounds how many times Run re-asks invalid fields. Values
// below one are ignored.
func WithMaxRounds(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxRounds = n
		}
	}
}

// WithPolicy replaces the sanitising policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(s *Session) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// Session drives a Driver against one form.
type Session struct {
	driver    Driver
	policy    *bluemonday.Policy
	secret    map[string]struct{}
	order     []string
	maxRounds int
}

// NewSession constructs a session. Answers are sanitised with bluemonday's
// strict policy by default.
func NewSession(driver Driver, options ...Option) *Session {
	s := &Session{
		driver:    driver,
		policy:    bluemonday.StrictPolicy(),
		secret:    make(map[string]struct{}),
		maxRounds: 3,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Fill asks for every named field, or every field of f when names is empty.
func (s *Session) Fill(ctx context.Context, f *form.Form, names ...string) error {
	if s.driver == nil {
		return errors.New("prompt: driver is nil")
	}
	if len(names) == 0 {
		names = s.fieldOrder(f)
	}
	for _, name := range names {
		if err := s.ask(ctx, f, name); err != nil {
			return err
		}
	}
	return nil
}

// Run fills the form, then validates and re-asks the fields that still carry
// errors. Form-level errors are reported through Info.
func (s *Session) Run(ctx context.Context, f *form.Form) error {
	if err := s.Fill(ctx, f); err != nil {
		return err
	}
	for round := 1; ; round++ {
		f.ClearErrors()
		if f.Validate() {
			return nil
		}
		for _, msg := range f.Errors() {
			if err := s.driver.Info(ctx, "Form: "+msg); err != nil {
				return err
			}
		}
		if round >= s.maxRounds {
			return ErrStillInvalid
		}

		invalid := s.invalidFields(f)
		if len(invalid) == 0 {
			// Only form-level errors remain; ask everything again.
			invalid = s.fieldOrder(f)
		}
		if err := s.Fill(ctx, f, invalid...); err != nil {
			return err
		}
	}
}

// ConfirmSubmit shows the current values, masking secret fields, and asks
// whether to submit them.
func (s *Session) ConfirmSubmit(ctx context.Context, f *form.Form) (bool, error) {
	values := f.FieldValues()
	for _, name := range s.fieldOrder(f) {
		shown := values[name]
		if _, secret := s.secret[name]; secret && shown != "" {
			shown = "********"
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", label(name), shown)); err != nil {
			return false, err
		}
	}
	return s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit these values?", Default: true})
}

func (s *Session) ask(ctx context.Context, f *form.Form, name string) error {
	current := f.Field(name)
	cfg := InputConfig{
		Message: label(name),
		Default: current.Value,
		Help:    help(current.Errors, current.Warnings),
	}
	if len(current.Errors) > 0 {
		if err := s.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", name, strings.Join(current.Errors, "; "))); err != nil {
			return err
		}
	}

	var (
		answer string
		err    error
	)
	if _, secret := s.secret[name]; secret {
		answer, err = s.driver.Password(ctx, cfg)
	} else {
		answer, err = s.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}

	f.SetField(name, form.Value(s.sanitize(answer)))
	return nil
}

func (s *Session) sanitize(raw string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(raw)))
}

func (s *Session) fieldOrder(f *form.Form) []string {
	present := f.State().Names()
	if len(s.order) == 0 {
		return present
	}
	out := make([]string, 0, len(present)+len(s.order))
	seen := make(map[string]struct{}, len(present))
	for _, name := range s.order {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, name := range present {
		if _, dup := seen[name]; dup {
			continue
		}
		out = append(out, name)
	}
	return out
}

func (s *Session) invalidFields(f *form.Form) []string {
	var out []string
	for _, name := range s.fieldOrder(f) {
		if len(f.Field(name).Errors) > 0 {
			out = append(out, name)
		}
	}
	return out
}

func label(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + word[size:]
	}
	if len(words) == 0 {
		return name
	}
	return strings.Join(words, " ")
}

func help(errs, warnings []string) string {
	parts := make([]string, 0, len(errs)+len(warnings))
	parts = append(parts, errs...)
	for _, w := range warnings {
		parts = append(parts, "warning: "+w)
	}
	return strings.Join(parts, "; ")
}
