// Package errors formats compiler diagnostics for the expression
// transpiler. PPI JSON carries no line/column information, so diagnostics
// anchor on the offending sub-expression text instead of a source
// position.
package errors

import (
	"fmt"
	"strings"
)

// Kind is the closed taxonomy of compilation failures.
type Kind string

const (
	RequiresManualImplementation Kind = "RequiresManualImplementation"
	UnsupportedFormatSpec        Kind = "UnsupportedFormatSpec"
	UnknownFunction              Kind = "UnknownFunction"
	UnsupportedTokenClass        Kind = "UnsupportedTokenClass"
	UnsupportedPrecedenceInput   Kind = "UnsupportedPrecedenceInput"
	MalformedAst                 Kind = "MalformedAst"
)

// Diagnostic is the single error type surfaced across the compilation
// pipeline. It names the error kind, the offending sub-expression or
// token class, and a suggested registry entry or review step.
type Diagnostic struct {
	Kind       Kind
	Expr       string // offending sub-expression or full source, as available
	TokenClass string // offending token/node class, when applicable
	Suggestion string // suggested registry entry or manual-review note
}

// New constructs a Diagnostic.
func New(kind Kind, expr, suggestion string) *Diagnostic {
	return &Diagnostic{Kind: kind, Expr: expr, Suggestion: suggestion}
}

// WithTokenClass returns a copy of d with TokenClass set.
func (d *Diagnostic) WithTokenClass(class string) *Diagnostic {
	clone := *d
	clone.TokenClass = class
	return &clone
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format()
}

// Format renders the diagnostic as a multi-line, human-readable block:
// kind header, offending expression, and a suggested next step.
func (d *Diagnostic) Format() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", d.Kind))
	if d.TokenClass != "" {
		sb.WriteString(fmt.Sprintf("  token class: %s\n", d.TokenClass))
	}
	if d.Expr != "" {
		sb.WriteString(fmt.Sprintf("  expression:  %s\n", d.Expr))
	}
	if d.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  suggestion:  %s\n", d.Suggestion))
	}
	return sb.String()
}
