package passes

import (
	"testing"

	"github.com/cwbudde/exiftrans/internal/ast"
)

func TestStringOpNormalizerConcat(t *testing.T) {
	n := statement(sym("$a"), op("."), sym("$b"))
	got := stringOpNormalizer(n)
	if got.Class != ast.ClassStringConcat {
		t.Fatalf("got %+v", got)
	}
	if got.Child("lhs").Content != "$a" || got.Child("rhs").Content != "$b" {
		t.Fatalf("unexpected operands: %+v", got.Role)
	}
}

func TestStringOpNormalizerRepeat(t *testing.T) {
	n := statement(sym("$a"), op("x"), num(3))
	got := stringOpNormalizer(n)
	if got.Class != ast.ClassStringRepeat {
		t.Fatalf("got %+v", got)
	}
	if got.Child("value").Content != "$a" || got.Child("count").NumericValue != 3 {
		t.Fatalf("unexpected operands: %+v", got.Role)
	}
}

func TestStringOpNormalizerIdentityOnLongerChain(t *testing.T) {
	n := statement(sym("$a"), op("."), sym("$b"), op("."), sym("$c"))
	got := stringOpNormalizer(n)
	if got != n {
		t.Fatalf("expected identity on five-token chain, got %+v", got)
	}
}
