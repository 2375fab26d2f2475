package passes

import (
	"testing"

	"github.com/cwbudde/exiftrans/internal/ast"
)

func TestTernaryNormalizerMatches(t *testing.T) {
	// $val > 0 ? $val : 0 - $val
	n := statement(
		sym("$val"), op(">"), num(0), op("?"), sym("$val"), op(":"), num(0), op("-"), sym("$val"),
	)
	got := ternaryNormalizer(n)
	if got.Class != ast.ClassTernaryOp {
		t.Fatalf("got %+v", got)
	}
	if got.Child("cond").Content != ">" {
		t.Fatalf("cond = %+v", got.Child("cond"))
	}
	if got.Child("then").Content != "$val" {
		t.Fatalf("then = %+v", got.Child("then"))
	}
	if got.Child("else").Content != "-" {
		t.Fatalf("else = %+v", got.Child("else"))
	}
}

func TestTernaryNormalizerIdentityWithoutQuestionMark(t *testing.T) {
	n := statement(sym("$a"), op("+"), sym("$b"))
	got := ternaryNormalizer(n)
	if got != n {
		t.Fatalf("expected identity, got %+v", got)
	}
}
