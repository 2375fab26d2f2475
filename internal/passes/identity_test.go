package passes

import (
	"reflect"
	"testing"

	"github.com/cwbudde/exiftrans/internal/ast"
)

// TestPassesAreIdentityOnNonMatch enforces the strict-identity requirement
// : every standard pass, given input it does not recognize,
// must return a node deep-equal to its input rather than a partial or
// mutated rewrite.
func TestPassesAreIdentityOnNonMatch(t *testing.T) {
	nonMatching := []*ast.Node{
		{Class: ast.ClassTokenSymbol, Content: "$val", SymbolType: ast.SymbolScalar, HasSymbolType: true},
		{Class: ast.ClassTokenNumber, NumericValue: 42, HasNumericValue: true},
		{Class: ast.ClassTokenWhitespace, Content: " "},
		statement(sym("$val")),
		{Class: ast.ClassDocument, Children: []*ast.Node{statement(sym("$val"))}},
	}

	for _, p := range StandardPasses() {
		for i, n := range nonMatching {
			before := n.Clone()
			got := p.Transform(n)
			if !reflect.DeepEqual(before, got) {
				t.Errorf("pass %s mutated non-matching input %d: before=%+v got=%+v", p.Name(), i, before, got)
			}
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	root := statement(sym("$val"), op("/"), num(100))
	once := Normalize(root)
	twice := Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Normalize is not idempotent:\nonce=%+v\ntwice=%+v", once, twice)
	}
}
