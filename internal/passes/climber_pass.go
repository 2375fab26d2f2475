package passes

import "github.com/cwbudde/exiftrans/internal/ast"

// precedenceClimberPass adapts ClimbPrecedence into the eighth and final
// standard pass. It fires only on the
// container classes the climber is defined over (Statement,
// Statement.Expression, FunctionCall) and only when the flat child run has
// at least three meaningful children interleaving operands and operators.
// If climbing cannot fully
// consume the run (e.g. because a sibling pass upstream left behind a
// non-operator token it didn't recognize, such as a compound-assignment
// operator the table doesn't model), the attempt is abandoned and n is
// returned unchanged: a failed climb is "this pass doesn't apply here",
// never a partial rewrite.
func precedenceClimberPass(n *ast.Node) *ast.Node {
	if !isExprContainer(n.Class) {
		return n
	}
	children := trimTrailingSemicolon(ast.FilterChildren(n.Children))
	if len(children) < 3 {
		return n
	}
	result, err := ClimbPrecedence(children)
	if err != nil {
		return n
	}
	return result
}
