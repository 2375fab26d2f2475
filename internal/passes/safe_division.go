package passes

import "github.com/cwbudde/exiftrans/internal/ast"

// safeDivisionNormalizer recognizes the idiom "$v ? N/$v : 0" (or
// "$v ? 1/$v : 0") and rewrites it to a canonical
// SafeDivision{numerator, divisor} node. Recognition is purely AST-based
// — it pattern-matches the node's own token children by class and
// identity, never by matching against the source text.
//
// This pass runs before TernaryNormalizer and before the precedence
// climber, so at this point the ternary is still a flat seven-token run:
// guard, "?", numerator, "/", divisor, ":", zero.
func safeDivisionNormalizer(n *ast.Node) *ast.Node {
	if !isExprContainer(n.Class) {
		return n
	}
	children := trimTrailingSemicolon(ast.FilterChildren(n.Children))
	if len(children) != 7 {
		return n
	}
	guard, q, numerator, slash, divisor, colon, zero := children[0], children[1], children[2], children[3], children[4], children[5], children[6]

	if !q.IsOperator("?") || !slash.IsOperator("/") || !colon.IsOperator(":") {
		return n
	}
	if guard.Class != ast.ClassTokenSymbol || divisor.Class != ast.ClassTokenSymbol {
		return n
	}
	if guard.Content != divisor.Content {
		return n
	}
	if !isNumberLiteral(zero, 0) {
		return n
	}

	return &ast.Node{
		Class:    ast.ClassSafeDivision,
		Children: []*ast.Node{numerator, divisor},
		Role: map[string]*ast.Node{
			"numerator": numerator,
			"divisor":   divisor,
		},
	}
}
