package passes

import "github.com/cwbudde/exiftrans/internal/ast"

// conditionalStatementsNormalizer converts Perl trailing-conditional forms
// ("EXPR if COND;", "EXPR unless COND;") and explicit if/else blocks into
// ConditionalBlock{cond, then, else?}. The block's
// Content records which source form produced it ("if" or "unless") so the
// emitter knows whether to negate the condition.
func conditionalStatementsNormalizer(n *ast.Node) *ast.Node {
	if !isExprContainer(n.Class) {
		return n
	}
	children := trimTrailingSemicolon(ast.FilterChildren(n.Children))

	if block := tryExplicitIfElse(children); block != nil {
		return block
	}
	return tryTrailingConditional(children, n)
}

func tryTrailingConditional(children []*ast.Node, orig *ast.Node) *ast.Node {
	idx := -1
	keyword := ""
	for i, c := range children {
		if c.Class == ast.ClassTokenWord && (c.Content == "if" || c.Content == "unless") {
			idx = i
			keyword = c.Content
			break
		}
	}
	if idx <= 0 {
		return orig
	}

	thenNode, err := ClimbPrecedence(children[:idx])
	if err != nil {
		return orig
	}
	condNode, err := ClimbPrecedence(children[idx+1:])
	if err != nil {
		return orig
	}

	return &ast.Node{
		Class:   ast.ClassConditionalBlock,
		Content: keyword,
		Role: map[string]*ast.Node{
			"cond": condNode,
			"then": thenNode,
		},
	}
}

// tryExplicitIfElse recognizes "if (COND) {THEN} [else {ELSE}]". PPI
// reports both the parenthesized condition and the braced block bodies as
// Structure.* nodes distinguished only by StructureBounds ("()" vs "{}"),
// so both arrive as Structure.List here, disambiguated by bounds.
func tryExplicitIfElse(children []*ast.Node) *ast.Node {
	if len(children) == 0 || !isWord(children[0], "if") {
		return nil
	}
	rest := children[1:]
	if len(rest) < 2 {
		return nil
	}
	condStruct, thenStruct := rest[0], rest[1]
	if condStruct.Class != ast.ClassStructureList || condStruct.StructureBounds != "()" {
		return nil
	}
	if thenStruct.Class != ast.ClassStructureList || thenStruct.StructureBounds != "{}" {
		return nil
	}

	condNode, err := ClimbPrecedence(condStruct.Children)
	if err != nil {
		return nil
	}
	thenNode, err := climbBlockBody(thenStruct.Children)
	if err != nil {
		return nil
	}

	block := &ast.Node{
		Class:   ast.ClassConditionalBlock,
		Content: "if",
		Role: map[string]*ast.Node{
			"cond": condNode,
			"then": thenNode,
		},
	}

	if len(rest) >= 4 && isWord(rest[2], "else") {
		elseStruct := rest[3]
		if elseStruct.Class != ast.ClassStructureList || elseStruct.StructureBounds != "{}" {
			return nil
		}
		elseNode, err := climbBlockBody(elseStruct.Children)
		if err != nil {
			return nil
		}
		block.Role["else"] = elseNode
	}

	return block
}

// climbBlockBody climbs a block's contents as a single expression. Blocks
// with more than one statement (rare in ExifTool tag tables, which favor
// single-expression conversions) are outside this subset; such a block
// simply fails to climb and the caller falls through to a registry
// deferral upstream.
func climbBlockBody(children []*ast.Node) (*ast.Node, error) {
	return ClimbPrecedence(trimTrailingSemicolon(ast.FilterChildren(children)))
}
