package passes

import (
	"testing"

	"github.com/cwbudde/exiftrans/internal/ast"
)

func TestNormalizeRunsFullPipeline(t *testing.T) {
	// length $val -> FunctionCall; run through the full standard pipeline.
	n := statement(word("length"), sym("$val"))
	got := Normalize(n)

	if len(got.Children) != 1 || got.Children[0].Class != ast.ClassFunctionCall {
		t.Fatalf("got %+v, want a single FunctionCall child produced by the whole pipeline", got)
	}
	if got.Children[0].Content != "length" {
		t.Fatalf("call name = %q", got.Children[0].Content)
	}
}

func TestNormalizeSafeDivisionThenNothingElse(t *testing.T) {
	n := statement(sym("$val"), op("?"), num(1), op("/"), sym("$val"), op(":"), num(0))
	got := Normalize(n)
	if got.Class != ast.ClassSafeDivision {
		t.Fatalf("got %+v", got)
	}
}

func TestNormalizeClimbsPlainArithmetic(t *testing.T) {
	n := statement(sym("$a"), op("+"), sym("$b"), op("*"), sym("$c"))
	got := Normalize(n)
	if got.Class != ast.ClassBinaryOperation || got.Content != "+" {
		t.Fatalf("got %+v", got)
	}
}
