// Package handlers is the dynamic insert text registry: a name ->
// function map populated at process startup and read-only thereafter.
package handlers

import "github.com/joeymnguyen/skill-bus/config"

// Handler produces replacement text for a dynamic insert. It receives
// the dispatch's cwd and merged settings and returns "" when it has
// nothing to contribute.
type Handler func(cwd string, settings config.Settings) (string, error)

var registry = map[string]Handler{}

// Register adds a named handler to the registry. Call from an init
// function; Register is not safe to call concurrently with Lookup.
func Register(name string, fn Handler) {
	registry[name] = fn
}

// Lookup returns the handler registered under name, if any.
func Lookup(name string) (Handler, bool) {
	fn, ok := registry[name]
	return fn, ok
}
