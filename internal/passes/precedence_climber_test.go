package passes

import (
	"testing"

	"github.com/cwbudde/exiftrans/internal/ast"
)

func binOp(n *ast.Node) (lhs, opNode, rhs *ast.Node) {
	return n.Child("lhs"), n.Child("op"), n.Child("rhs")
}

func TestClimbPrecedenceSimpleBinary(t *testing.T) {
	result, err := ClimbPrecedence([]*ast.Node{sym("$val"), op("/"), num(100)})
	if err != nil {
		t.Fatalf("ClimbPrecedence: %v", err)
	}
	if result.Class != ast.ClassBinaryOperation || result.Content != "/" {
		t.Fatalf("got %+v", result)
	}
	lhs, opNode, rhs := binOp(result)
	if lhs.Content != "$val" || opNode.Content != "/" || rhs.NumericValue != 100 {
		t.Fatalf("unexpected operands: %+v %+v %+v", lhs, opNode, rhs)
	}
}

// a+b*c-d/e should parse as (a+(b*c))-(d/e).
func TestClimbPrecedenceMulBindsTighterThanAdd(t *testing.T) {
	tokens := []*ast.Node{
		sym("$a"), op("+"), sym("$b"), op("*"), sym("$c"),
		op("-"), sym("$d"), op("/"), sym("$e"),
	}
	result, err := ClimbPrecedence(tokens)
	if err != nil {
		t.Fatalf("ClimbPrecedence: %v", err)
	}
	if result.Content != "-" {
		t.Fatalf("root op = %q, want -", result.Content)
	}
	lhs, _, rhs := binOp(result)
	if lhs.Content != "+" {
		t.Fatalf("lhs op = %q, want +", lhs.Content)
	}
	if rhs.Content != "/" {
		t.Fatalf("rhs op = %q, want /", rhs.Content)
	}
	_, _, addRhs := binOp(lhs)
	if addRhs.Content != "*" {
		t.Fatalf("a+b*c: addition's rhs = %q, want *", addRhs.Content)
	}
}

// a**b**c is right-associative: a**(b**c).
func TestClimbPrecedencePowerIsRightAssociative(t *testing.T) {
	tokens := []*ast.Node{sym("$a"), op("**"), sym("$b"), op("**"), sym("$c")}
	result, err := ClimbPrecedence(tokens)
	if err != nil {
		t.Fatalf("ClimbPrecedence: %v", err)
	}
	lhs, _, rhs := binOp(result)
	if lhs.Content != "$a" {
		t.Fatalf("lhs = %+v, want leaf $a", lhs)
	}
	if rhs.Content != "**" {
		t.Fatalf("rhs = %+v, want nested **", rhs)
	}
}

// a||b&&c: && binds tighter than ||, so root is ||.
func TestClimbPrecedenceLogicalAndBindsTighterThanOr(t *testing.T) {
	tokens := []*ast.Node{sym("$a"), op("||"), sym("$b"), op("&&"), sym("$c")}
	result, err := ClimbPrecedence(tokens)
	if err != nil {
		t.Fatalf("ClimbPrecedence: %v", err)
	}
	if result.Content != "||" {
		t.Fatalf("root = %q, want ||", result.Content)
	}
	_, _, rhs := binOp(result)
	if rhs.Content != "&&" {
		t.Fatalf("rhs = %q, want &&", rhs.Content)
	}
}

// word-form "a or b and c" has the same shape as "a||b&&c": "and" outranks "or".
func TestClimbPrecedenceWordFormAndOutranksOr(t *testing.T) {
	tokens := []*ast.Node{sym("$a"), op("or"), sym("$b"), op("and"), sym("$c")}
	result, err := ClimbPrecedence(tokens)
	if err != nil {
		t.Fatalf("ClimbPrecedence: %v", err)
	}
	if result.Content != "or" {
		t.Fatalf("root = %q, want or", result.Content)
	}
	_, _, rhs := binOp(result)
	if rhs.Content != "and" {
		t.Fatalf("rhs = %q, want and", rhs.Content)
	}
}

func TestClimbPrecedenceUnaryMinus(t *testing.T) {
	tokens := []*ast.Node{op("-"), sym("$val"), op("/"), num(10)}
	result, err := ClimbPrecedence(tokens)
	if err != nil {
		t.Fatalf("ClimbPrecedence: %v", err)
	}
	if result.Content != "u-" {
		t.Fatalf("root = %+v, want synthetic u-", result)
	}
	rhs := result.Child("rhs")
	if rhs.Content != "/" {
		t.Fatalf("rhs of unary = %+v, want division", rhs)
	}
}

func TestClimbPrecedenceRejectsEvenLengthRun(t *testing.T) {
	// An even-length run (missing an operand) cannot be climbed.
	_, err := ClimbPrecedence([]*ast.Node{sym("$a"), op("+")})
	if err == nil {
		t.Fatal("expected error for malformed operator/operand run")
	}
}
