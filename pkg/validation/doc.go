// Package validation defines the validator contracts used by forms, a catalog
// of named builtin rules that declarative seeds can reference, and the engine
// that runs validators against a form and writes failures back as errors.
//
// A validator reports a failure by returning a non-nil error; the error's
// message becomes the new error entry. Form validators run before field
// validators, each group in declaration order.
package validation
