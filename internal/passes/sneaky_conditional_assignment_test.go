package passes

import (
	"testing"

	"github.com/cwbudde/exiftrans/internal/ast"
)

func TestSneakyConditionalAssignmentNormalizer(t *testing.T) {
	// $val > 1800 and $val -= 3600; $val
	first := statement(
		sym("$val"), op(">"), num(1800), op("and"), sym("$val"), op("-="), num(3600), semi(),
	)
	second := statement(sym("$val"))
	doc := &ast.Node{Class: ast.ClassDocument, Children: []*ast.Node{first, second}}

	got := sneakyConditionalAssignmentNormalizer(doc)
	if got.Class != ast.ClassConditionalBlock {
		t.Fatalf("got %+v", got)
	}
	cond := got.Child("cond")
	if cond.Content != ">" {
		t.Fatalf("cond = %+v", cond)
	}
	assignment := got.Child("assignment")
	if assignment.Class != ast.ClassAssignment || assignment.Content != "-=" {
		t.Fatalf("assignment = %+v", assignment)
	}
	if assignment.Child("target").Content != "$val" || assignment.Child("value").NumericValue != 3600 {
		t.Fatalf("assignment operands: %+v", assignment.Role)
	}
	ret := got.Child("return")
	if ret.Children[0].Content != "$val" {
		t.Fatalf("return = %+v", ret)
	}
}

func TestSneakyConditionalAssignmentNormalizerIdentityWithoutAnd(t *testing.T) {
	first := statement(sym("$val"), op(">"), num(1800))
	second := statement(sym("$val"))
	doc := &ast.Node{Class: ast.ClassDocument, Children: []*ast.Node{first, second}}

	got := sneakyConditionalAssignmentNormalizer(doc)
	if got != doc {
		t.Fatalf("expected identity, got %+v", got)
	}
}

func TestSneakyConditionalAssignmentNormalizerIdentityOnSingleStatement(t *testing.T) {
	doc := &ast.Node{Class: ast.ClassDocument, Children: []*ast.Node{statement(sym("$val"))}}
	got := sneakyConditionalAssignmentNormalizer(doc)
	if got != doc {
		t.Fatalf("expected identity, got %+v", got)
	}
}
