package linter

import (
	"github.com/init-js/jshint-mode/pkg/lintconf"
)

// Mode names recognized by the registry. Anything other than the exact
// string "jslint" selects the default jshint profile.
const (
	ModeJSHint = "jshint"
	ModeJSLint = "jslint"
)

// Finding is one reported issue: a 1-based source location, a human-readable
// reason, and optionally the literal source line as evidence.
type Finding struct {
	Line      int
	Character int
	Reason    string
	Evidence  string
}

// Linter checks a source text against a configuration and returns its
// findings in source order. A clean source yields zero findings.
type Linter interface {
	Lint(source, filename string, config lintconf.Config) ([]Finding, error)
}

// Registry maps mode names to linter implementations.
type Registry struct {
	jshint Linter
	jslint Linter
}

// NewRegistry creates a registry with the esbuild-backed jshint and jslint
// linters.
func NewRegistry() *Registry {
	return NewRegistryWith(NewJSHint(), NewJSLint())
}

// NewRegistryWith creates a registry with explicit linter implementations.
// Used by tests to inject fakes.
func NewRegistryWith(jshint, jslint Linter) *Registry {
	return &Registry{jshint: jshint, jslint: jslint}
}

// ByMode returns the linter for mode. Only the exact value "jslint" selects
// the strict linter; every other value, including the empty string, selects
// the default. ByMode never fails.
func (r *Registry) ByMode(mode string) Linter {
	if mode == ModeJSLint {
		return r.jslint
	}
	return r.jshint
}

// Lint dispatches source to the linter selected by mode.
func (r *Registry) Lint(mode, source, filename string, config lintconf.Config) ([]Finding, error) {
	return r.ByMode(mode).Lint(source, filename, config)
}
