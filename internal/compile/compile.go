// Package compile wires ingest -> passes -> classify -> emit/registry
// into the single top-level entry point the CLI (cmd/exiftrans) calls.
// Errors propagate synchronously with no partial output: one bad
// expression never taints another.
package compile

import (
	"fmt"

	"github.com/cwbudde/exiftrans/internal/ast"
	"github.com/cwbudde/exiftrans/internal/classify"
	"github.com/cwbudde/exiftrans/internal/emit"
	"github.com/cwbudde/exiftrans/internal/errors"
	"github.com/cwbudde/exiftrans/internal/ingest"
	"github.com/cwbudde/exiftrans/internal/log"
	"github.com/cwbudde/exiftrans/internal/passes"
	"github.com/cwbudde/exiftrans/internal/registry"
)

// Result is the outcome of compiling one expression: either Rust source
// text, or a diagnostic naming why mechanical translation was refused.
type Result struct {
	// Name is the Rust function identifier assigned to this expression.
	Name string
	// Rust is the generated function body, set only when Diagnostic is nil.
	Rust string
	// Diagnostic is set when compilation was refused; Rust is empty.
	Diagnostic *errors.Diagnostic
	// RegistryEntry is set when Diagnostic.Kind ==
	// RequiresManualImplementation and a registry match was found.
	RegistryEntry *registry.Entry
}

// Expression compiles one raw PPI JSON document, perlSource (the original
// Perl expression text, carried into the emitted comment and used for
// registry routing), into name, of type et.
//
// No partial Rust is ever returned alongside a Diagnostic; a panic
// surfacing from any pass (e.g. a malformed precedence-climb input) is
// recovered here and converted into a diagnostic rather than crashing the
// batch driver.
func Expression(name, perlSource string, doc []byte, et ast.ExpressionType) (result Result) {
	result.Name = name
	defer func() {
		if r := recover(); r != nil {
			log.L().Sugar().Errorw("panic during compilation, converting to diagnostic",
				"name", name, "panic", r)
			result.Rust = ""
			result.Diagnostic = errors.New(errors.UnsupportedPrecedenceInput, perlSource,
				fmt.Sprintf("internal panic: %v", r))
		}
	}()

	root, err := ingest.Parse(doc)
	if err != nil {
		result.Diagnostic = asDiagnostic(err, perlSource)
		return result
	}

	normalized := passes.Normalize(root)
	ctx := classify.Analyze(normalized, et)
	path := classify.Route(ctx)
	log.L().Sugar().Debugw("classifier routing decision", "name", name, "path", path)

	rust, err := emit.Function(name, perlSource, normalized, ctx)
	if err == nil {
		result.Rust = rust
		return result
	}

	// Mechanical emission refused the shape. Consult the implementation
	// registry before giving up, rather than surfacing the emitter's raw
	// error directly.
	if entry, ok := registry.Lookup(perlSource); ok {
		result.RegistryEntry = &entry
		result.Diagnostic = errors.New(errors.RequiresManualImplementation, perlSource,
			"use "+entry.QualifiedName())
		return result
	}
	if d := asDiagnostic(err, perlSource); d.Kind == errors.RequiresManualImplementation {
		result.Diagnostic = d
		return result
	}
	result.Diagnostic = errors.New(errors.RequiresManualImplementation, perlSource,
		"no registry entry found; review the expression manually and add one")
	return result
}

func asDiagnostic(err error, perlSource string) *errors.Diagnostic {
	if d, ok := err.(*errors.Diagnostic); ok {
		return d
	}
	return errors.New(errors.MalformedAst, perlSource, err.Error())
}
