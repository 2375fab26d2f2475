package passes

import "github.com/cwbudde/exiftrans/internal/ast"

// keywordWords lists Token.Word spellings that are control-flow or
// word-operator keywords, never callable names, so FunctionCallNormalizer
// must not swallow them (this pass runs before
// ConditionalStatementsNormalizer, so these words are still plain
// Token.Word nodes at this point in the pipeline).
var keywordWords = map[string]bool{
	"if": true, "unless": true, "else": true,
	"and": true, "or": true, "xor": true, "not": true,
	"eq": true, "ne": true, "lt": true, "gt": true, "le": true, "ge": true, "cmp": true,
	"x": true,
}

// functionCallNormalizer collapses a Token.Word followed by a
// Structure.List into a FunctionCall node with explicit argument children,
// and resolves the "call without parens" ambiguity: a bare word followed
// by exactly one adjacent primary expression (and nothing else in the
// segment) is a one-argument call — e.g. "length $val".
func functionCallNormalizer(n *ast.Node) *ast.Node {
	if !isExprContainer(n.Class) {
		return n
	}
	children := n.Children
	out := make([]*ast.Node, 0, len(children))
	changed := false

	i := 0
	for i < len(children) {
		word := children[i]
		if word.Class != ast.ClassTokenWord || keywordWords[word.Content] {
			out = append(out, word)
			i++
			continue
		}

		j := i + 1
		for j < len(children) && children[j].IsWhitespaceOrComment() {
			j++
		}

		if j < len(children) && children[j].Class == ast.ClassStructureList {
			args, err := ClimbArgumentList(children[j].Children)
			if err != nil {
				out = append(out, word)
				i++
				continue
			}
			out = append(out, buildFunctionCall(word.Content, args))
			i = j + 1
			changed = true
			continue
		}

		rest := ast.FilterChildren(children[j:])
		if len(rest) == 1 {
			out = append(out, buildFunctionCall(word.Content, []*ast.Node{rest[0]}))
			i = len(children)
			changed = true
			continue
		}

		out = append(out, word)
		i++
	}

	if !changed {
		return n
	}
	clone := n.Clone()
	clone.Children = out
	return clone
}

func buildFunctionCall(name string, args []*ast.Node) *ast.Node {
	roles := make(map[string]*ast.Node, len(args))
	for idx, a := range args {
		roles[argRoleName(idx)] = a
	}
	return &ast.Node{
		Class:    ast.ClassFunctionCall,
		Content:  name,
		Children: append([]*ast.Node(nil), args...),
		Role:     roles,
	}
}

func argRoleName(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return "arg" + string(digits[i])
	}
	// Extremely unlikely in practice (ExifTool call sites are small), but
	// keep this total rather than panicking on pathological input.
	return "argN"
}
