// Package seed turns a declarative initial state into the pieces a form is
// built from: a validator-free snapshot plus the field and form validator
// tables lifted out of it.
//
// Declarations come in three shapes. Declaration is the typed form and can
// carry validator functions directly. FromMap accepts the loosely typed
// object shape ({fields, errors, validate}) and Decode reads the same shape
// from YAML or JSON; both resolve validator names through a
// validation.Catalog because documents cannot carry functions.
package seed
