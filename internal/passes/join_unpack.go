package passes

import "github.com/cwbudde/exiftrans/internal/ast"

// joinUnpackPass recognizes the multi-token idiom
// "join SEP, unpack FORMAT, DATA" and rewrites it to a single
// FunctionCall{name="join_unpack_binary", args=[SEP,FORMAT,DATA]}.
// It must run before FunctionCallNormalizer so the pair
// isn't split into two separate one-argument calls.
//
// The idiom is recognized in its bareword (no-parens) form: the whole
// expression is exactly three top-level comma-delimited segments, the
// first beginning with the word "join" and the second with the word
// "unpack".
func joinUnpackPass(n *ast.Node) *ast.Node {
	if !isExprContainer(n.Class) {
		return n
	}
	children := trimTrailingSemicolon(ast.FilterChildren(n.Children))
	segments, _ := SplitOnComma(children)
	if len(segments) != 3 {
		return n
	}
	joinSeg, unpackSeg, dataSeg := segments[0], segments[1], segments[2]
	if len(joinSeg) == 0 || !isWord(joinSeg[0], "join") {
		return n
	}
	if len(unpackSeg) == 0 || !isWord(unpackSeg[0], "unpack") {
		return n
	}

	sep, err := ClimbPrecedence(joinSeg[1:])
	if err != nil {
		return n
	}
	format, err := ClimbPrecedence(unpackSeg[1:])
	if err != nil {
		return n
	}
	data, err := ClimbPrecedence(dataSeg)
	if err != nil {
		return n
	}

	return &ast.Node{
		Class:    ast.ClassFunctionCall,
		Content:  "join_unpack_binary",
		Children: []*ast.Node{sep, format, data},
		Role: map[string]*ast.Node{
			"sep":    sep,
			"format": format,
			"data":   data,
		},
	}
}
