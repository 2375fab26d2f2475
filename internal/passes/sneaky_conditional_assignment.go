package passes

import "github.com/cwbudde/exiftrans/internal/ast"

// opAssignSpellings are the compound-assignment operators the idiom
// recognizes. ExifTool's angle/time normalizations use "-=" almost
// exclusively, but the full arithmetic op-assign set appears.
var opAssignSpellings = map[string]bool{
	"+=": true, "-=": true, "*=": true, "/=": true,
}

// sneakyConditionalAssignmentNormalizer recognizes the two-statement idiom
// "COND and $v OP= EXPR; RETURN_EXPR" and rewrites it to
// ConditionalBlock{cond, assignment, return}. It
// fires on a Document with exactly two children. The first statement
// arrives here still as a flat, unclimbed token run, because no earlier
// pass matches it (the precedence climber cannot consume a bare
// compound-assignment operator). The second arrives already normalized
// (e.g. climbed into a BinaryOperation) and is taken as the return
// expression as it is.
func sneakyConditionalAssignmentNormalizer(n *ast.Node) *ast.Node {
	if n.Class != ast.ClassDocument || len(n.Children) != 2 {
		return n
	}
	first, second := n.Children[0], n.Children[1]
	if !isExprContainer(first.Class) {
		return n
	}

	children := trimTrailingSemicolon(ast.FilterChildren(first.Children))
	andIdx := indexOfOperator(children, "and")
	if andIdx <= 0 {
		return n
	}
	condTokens := children[:andIdx]
	assignTokens := children[andIdx+1:]

	opIdx := -1
	for i, t := range assignTokens {
		if t.Class == ast.ClassTokenOperator && opAssignSpellings[t.Content] {
			opIdx = i
			break
		}
	}
	if opIdx <= 0 {
		return n
	}

	cond, err := ClimbPrecedence(condTokens)
	if err != nil {
		return n
	}
	target, err := ClimbPrecedence(assignTokens[:opIdx])
	if err != nil {
		return n
	}
	value, err := ClimbPrecedence(assignTokens[opIdx+1:])
	if err != nil {
		return n
	}

	assignment := &ast.Node{
		Class:    ast.ClassAssignment,
		Content:  assignTokens[opIdx].Content,
		Children: []*ast.Node{target, value},
		Role: map[string]*ast.Node{
			"target": target,
			"value":  value,
		},
	}

	returnExpr := second.Clone()

	return &ast.Node{
		Class:   ast.ClassConditionalBlock,
		Content: "sneaky",
		Role: map[string]*ast.Node{
			"cond":       cond,
			"assignment": assignment,
			"return":     returnExpr,
		},
	}
}
