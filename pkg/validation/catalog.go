package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Builtin rule names.
const (
	RuleRequired  = "required"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleEmail     = "email"
	RuleOneOf     = "oneOf"
)

// ErrUnknownRule is returned when a rule name is not in the catalog.
var ErrUnknownRule = errors.New("validation: unknown rule")

// Factory builds a field validator from the argument that follows the rule
// name ("minLength:3" hands "3" to the minLength factory).
type Factory func(arg string) (FieldValidator, error)

// Catalog resolves rule references such as "required" or "pattern:^[a-z]+$"
// into field validators. Declarative seeds cannot carry functions, so they
// name rules instead.
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewCatalog returns a catalog with the builtin rules registered.
func NewCatalog() *Catalog {
	c := &Catalog{factories: make(map[string]Factory)}
	c.registerBuiltins()
	return c
}

// Register adds or replaces a rule factory. Blank names and nil factories
// are ignored.
func (c *Catalog) Register(name string, factory Factory) {
	if c == nil || factory == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.factories == nil {
		c.factories = make(map[string]Factory)
	}
	c.factories[trimmed] = factory
}

// Names lists the registered rule names in lexical order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a rule reference into a validator. The reference is the rule
// name optionally followed by ":" and an argument.
func (c *Catalog) Resolve(ref string) (FieldValidator, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(ref), ":")
	name = strings.TrimSpace(name)
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	c.mu.RLock()
	factory, ok := c.factories[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	validator, err := factory(arg)
	if err != nil {
		return nil, fmt.Errorf("validation: rule %q: %w", name, err)
	}
	return validator, nil
}

func (c *Catalog) registerBuiltins() {
	c.Register(RuleRequired, func(string) (FieldValidator, error) {
		return Required(), nil
	})
	c.Register(RuleMinLength, func(arg string) (FieldValidator, error) {
		n, err := parseLength(arg)
		if err != nil {
			return nil, err
		}
		return MinLength(n), nil
	})
	c.Register(RuleMaxLength, func(arg string) (FieldValidator, error) {
		n, err := parseLength(arg)
		if err != nil {
			return nil, err
		}
		return MaxLength(n), nil
	})
	c.Register(RulePattern, func(arg string) (FieldValidator, error) {
		return Pattern(arg)
	})
	c.Register(RuleEmail, func(string) (FieldValidator, error) {
		return Email(), nil
	})
	c.Register(RuleOneOf, func(arg string) (FieldValidator, error) {
		options := strings.Split(arg, "|")
		return OneOf(options...), nil
	})
}

// Required fails on blank values.
func Required() FieldValidator {
	return func(value string, _ FieldContext) error {
		if strings.TrimSpace(value) == "" {
			return errors.New("required")
		}
		return nil
	}
}

// MinLength fails on values shorter than n runes. Empty values pass so the
// rule can be combined with Required.
func MinLength(n int) FieldValidator {
	return func(value string, _ FieldContext) error {
		if value == "" {
			return nil
		}
		if utf8.RuneCountInString(value) < n {
			return fmt.Errorf("min length %d", n)
		}
		return nil
	}
}

// MaxLength fails on values longer than n runes.
func MaxLength(n int) FieldValidator {
	return func(value string, _ FieldContext) error {
		if utf8.RuneCountInString(value) > n {
			return fmt.Errorf("max length %d", n)
		}
		return nil
	}
}

// Pattern fails on non-empty values that do not match expr.
func Pattern(expr string) (FieldValidator, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return func(value string, _ FieldContext) error {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return errors.New("does not match required pattern")
		}
		return nil
	}, nil
}

// Email fails on non-empty values that are not a bare address.
func Email() FieldValidator {
	return func(value string, _ FieldContext) error {
		if value == "" {
			return nil
		}
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return errors.New("invalid email address")
		}
		return nil
	}
}

// OneOf fails on non-empty values outside options.
func OneOf(options ...string) FieldValidator {
	allowed := make(map[string]struct{}, len(options))
	clean := make([]string, 0, len(options))
	for _, option := range options {
		trimmed := strings.TrimSpace(option)
		if trimmed == "" {
			continue
		}
		if _, dup := allowed[trimmed]; dup {
			continue
		}
		allowed[trimmed] = struct{}{}
		clean = append(clean, trimmed)
	}
	return func(value string, _ FieldContext) error {
		if value == "" {
			return nil
		}
		if _, ok := allowed[value]; !ok {
			return fmt.Errorf("must be one of %s", strings.Join(clean, ", "))
		}
		return nil
	}
}

func parseLength(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", arg)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length %d", n)
	}
	return n, nil
}
