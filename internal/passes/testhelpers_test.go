package passes

import "github.com/cwbudde/exiftrans/internal/ast"

func sym(name string) *ast.Node {
	return &ast.Node{Class: ast.ClassTokenSymbol, Content: name, SymbolType: ast.SymbolScalar, HasSymbolType: true}
}

func num(v float64) *ast.Node {
	return &ast.Node{Class: ast.ClassTokenNumber, NumericValue: v, HasNumericValue: true}
}

func op(spelling string) *ast.Node {
	return &ast.Node{Class: ast.ClassTokenOperator, Content: spelling}
}

func word(spelling string) *ast.Node {
	return &ast.Node{Class: ast.ClassTokenWord, Content: spelling}
}

func semi() *ast.Node {
	return &ast.Node{Class: ast.ClassTokenOperator, Content: ";"}
}

func statement(children ...*ast.Node) *ast.Node {
	return &ast.Node{Class: ast.ClassStatement, Children: children}
}

func structList(bounds string, children ...*ast.Node) *ast.Node {
	return &ast.Node{Class: ast.ClassStructureList, StructureBounds: bounds, Children: children}
}
