package passes

import "github.com/cwbudde/exiftrans/internal/ast"

// ternaryNormalizer rewrites "COND ? A : B" token runs into
// TernaryOp{cond, then, else}. It runs after
// SafeDivisionNormalizer has already claimed the safe-reciprocal shape, so
// any ternary surviving to this pass is a general one; each of the three
// segments is climbed independently since the precedence climber itself
// hasn't run yet for this node.
func ternaryNormalizer(n *ast.Node) *ast.Node {
	if !isExprContainer(n.Class) {
		return n
	}
	children := trimTrailingSemicolon(ast.FilterChildren(n.Children))

	qIdx := indexOfOperator(children, "?")
	if qIdx <= 0 {
		return n
	}
	colonIdx := indexOfOperatorFrom(children, ":", qIdx+1)
	if colonIdx == -1 {
		return n
	}

	condTokens := children[:qIdx]
	thenTokens := children[qIdx+1 : colonIdx]
	elseTokens := children[colonIdx+1:]

	cond, err := ClimbPrecedence(condTokens)
	if err != nil {
		return n
	}
	then, err := ClimbPrecedence(thenTokens)
	if err != nil {
		return n
	}
	els, err := ClimbPrecedence(elseTokens)
	if err != nil {
		return n
	}

	return &ast.Node{
		Class:    ast.ClassTernaryOp,
		Children: []*ast.Node{cond, then, els},
		Role: map[string]*ast.Node{
			"cond": cond,
			"then": then,
			"else": els,
		},
	}
}
