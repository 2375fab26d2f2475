// Package classify inspects a normalized expression tree for the signals
// that decide the emitted function signature and whether the
// implementation registry must be consulted: a mutable scratch struct
// populated by a single recursive scan.
package classify

import (
	"strings"

	"github.com/cwbudde/exiftrans/internal/ast"
)

// Context is the per-expression scratch state. It is created fresh for
// each expression, mutated by Analyze, read by the emitter, and discarded
// once the function body is produced — never shared across expressions.
type Context struct {
	Type ast.ExpressionType

	HasVariables bool
	HasOperators bool
	HasFunctions bool
	HasSelfRefs  bool

	// SelfFields is the ordered, deduplicated set of $$self{FIELD} /
	// $self->{FIELD} names observed, insertion order preserved so nothing
	// that reaches emitted output depends on Go map iteration order.
	SelfFields []string

	// Functions is the ordered, deduplicated set of Token.Word spellings
	// seen at call position.
	Functions []string

	seenFields    map[string]bool
	seenFunctions map[string]bool
}

// knownOperators is the set of Token.Operator spellings that count toward
// HasOperators. Comparison word-forms (eq, ne, lt, ...) are
// included since PPI tags them as Token.Operator (see internal/passes'
// precedence table, which ranks them alongside their symbol equivalents).
var knownOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
	".": true, "x": true,
	"<<": true, ">>": true, "&": true, "|": true, "^": true,
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true, "<=>": true,
	"&&": true, "||": true, "//": true,
	"and": true, "or": true, "xor": true, "not": true, "!": true,
	"eq": true, "ne": true, "lt": true, "gt": true, "le": true, "ge": true, "cmp": true,
	"?": true, ":": true,
}

// Analyze walks n (already normalized) and returns a populated Context for
// expression type et. It is pure: n is never mutated.
func Analyze(n *ast.Node, et ast.ExpressionType) *Context {
	ctx := &Context{
		Type:          et,
		seenFields:    map[string]bool{},
		seenFunctions: map[string]bool{},
	}
	ast.Walk(n, func(node *ast.Node) { ctx.visit(node) })
	return ctx
}

func (ctx *Context) visit(n *ast.Node) {
	switch n.Class {
	case ast.ClassTokenSymbol:
		ctx.HasVariables = true
	case ast.ClassTokenOperator:
		if knownOperators[n.Content] {
			ctx.HasOperators = true
		}
	case ast.ClassBinaryOperation, ast.ClassTernaryOp, ast.ClassStringConcat,
		ast.ClassStringRepeat, ast.ClassSafeDivision:
		ctx.HasOperators = true
	case ast.ClassFunctionCall:
		ctx.HasFunctions = true
		ctx.addFunction(n.Content)
	case ast.ClassStructureSubscript:
		if field, ok := selfFieldName(n); ok {
			ctx.HasSelfRefs = true
			ctx.addField(field)
		}
	}
}

// selfFieldName recognizes the PPI shape for "$$self{FIELD}" /
// "$self->{FIELD}": a Structure.Subscript whose first child is the symbol
// "$self" (or "$$self") and whose bracketed content is a single bareword or
// quoted field name.
func selfFieldName(n *ast.Node) (string, bool) {
	if len(n.Children) == 0 {
		return "", false
	}
	base := n.Children[0]
	if base.Class != ast.ClassTokenSymbol {
		return "", false
	}
	if base.Content != "$self" && base.Content != "$$self" {
		return "", false
	}
	for _, c := range ast.FilterChildren(n.Children[1:]) {
		switch c.Class {
		case ast.ClassTokenWord:
			return c.Content, true
		case ast.ClassTokenQuoteSingle, ast.ClassTokenQuoteDouble:
			return strings.Trim(c.StringValue, `"'`), true
		}
	}
	return "", false
}

func (ctx *Context) addField(name string) {
	if name == "" || ctx.seenFields[name] {
		return
	}
	ctx.seenFields[name] = true
	ctx.SelfFields = append(ctx.SelfFields, name)
}

func (ctx *Context) addFunction(name string) {
	if name == "" || ctx.seenFunctions[name] {
		return
	}
	ctx.seenFunctions[name] = true
	ctx.Functions = append(ctx.Functions, name)
}

// HasSelfContext reports whether the emitted function signature must widen
// to accept a context parameter.
func (ctx *Context) HasSelfContext() bool {
	return ctx.HasSelfRefs
}
