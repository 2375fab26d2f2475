package passes

import "github.com/cwbudde/exiftrans/internal/ast"

// stringOpNormalizer recognizes "." (concatenation) and "x" (repetition)
// between two operands and rewrites them to StringConcat/StringRepeat with
// explicit operand children. It only claims the
// simplest three-token shape (operand, operator, operand); longer concat
// chains such as "$a . $b . $c" are left for the precedence climber, which
// produces an equivalent BinaryOperation(".", ...) tree that the emitter
// handles identically — so nothing is lost by not
// generalizing this pass to N operands.
func stringOpNormalizer(n *ast.Node) *ast.Node {
	if !isExprContainer(n.Class) {
		return n
	}
	children := trimTrailingSemicolon(ast.FilterChildren(n.Children))
	if len(children) != 3 {
		return n
	}
	op := children[1]
	if op.Class != ast.ClassTokenOperator {
		return n
	}

	lhs, rhs := children[0], children[2]
	switch op.Content {
	case ".":
		return &ast.Node{
			Class:    ast.ClassStringConcat,
			Children: []*ast.Node{lhs, rhs},
			Role:     map[string]*ast.Node{"lhs": lhs, "rhs": rhs},
		}
	case "x":
		return &ast.Node{
			Class:    ast.ClassStringRepeat,
			Children: []*ast.Node{lhs, rhs},
			Role:     map[string]*ast.Node{"value": lhs, "count": rhs},
		}
	default:
		return n
	}
}
