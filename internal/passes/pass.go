// Package passes implements the multi-pass rewriter and the precedence
// climber. Each pass is a single-responsibility, pure AST-to-AST
// transform; the orchestrator in normalize.go applies them in a fixed
// declared order, post-order. The slice order in StandardPasses is the
// whole contract: no precedence numbers, no re-entry.
package passes

import "github.com/cwbudde/exiftrans/internal/ast"

// Pass is one entry in the standard pass catalogue. A pass
// that does not recognize its target pattern in n must return n unchanged
// — never a mutated-but-wrong
// node.
type Pass interface {
	Name() string
	Transform(n *ast.Node) *ast.Node
}

// funcPass adapts a plain function into a Pass. The interface exists only
// so normalize.go can log each pass by name.
type funcPass struct {
	name string
	fn   func(*ast.Node) *ast.Node
}

func (p funcPass) Name() string                    { return p.name }
func (p funcPass) Transform(n *ast.Node) *ast.Node { return p.fn(n) }

func newPass(name string, fn func(*ast.Node) *ast.Node) Pass {
	return funcPass{name: name, fn: fn}
}
