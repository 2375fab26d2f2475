package passes

import (
	"github.com/cwbudde/exiftrans/internal/ast"
	"github.com/cwbudde/exiftrans/internal/errors"
)

// ClimbPrecedence assembles a flat, operator-interleaved child sequence
// into a correctly nested BinaryOperation tree, honoring Perl precedence
// and associativity. A precedence threshold gates whether the inner loop
// keeps consuming infix operators; because the "tokens" are
// already-normalized AST nodes from a flat child slice rather than a
// lexer cursor, there is no prefix-parse-function dispatch table: the
// next token is simply taken as the operand.
//
// tokens must already have whitespace/comments filtered.
//
// Perl's prefix "-"/"!"/"not" (as in "-$val / 10") sits outside the
// binary operand/operator alternation the classical climbing loop
// models. It is peeled off first, the remaining
// alternation is climbed normally, and the result is wrapped as a
// BinaryOperation whose Content is the synthetic spelling "u-"/"u!"/"unot"
// and whose only bound role is "rhs" — reusing the existing synthetic
// BinaryOperation class rather than inventing a new one,
// since a unary node is simply a BinaryOperation with no left operand.
func ClimbPrecedence(tokens []*ast.Node) (*ast.Node, error) {
	filtered := ast.FilterChildren(tokens)

	var unaryOp *ast.Node
	if len(filtered) >= 2 && filtered[0].Class == ast.ClassTokenOperator && isUnaryCapable(filtered[0].Content) {
		if (len(filtered)-1)%2 == 1 {
			unaryOp = filtered[0]
			filtered = filtered[1:]
		}
	}

	switch {
	case len(filtered) == 0:
		return nil, errors.New(errors.UnsupportedPrecedenceInput, "", "empty operator/operand run")
	case len(filtered)%2 == 0:
		return nil, errors.New(errors.UnsupportedPrecedenceInput, "", "operator/operand run has an even token count")
	}

	var result *ast.Node
	if len(filtered) == 1 {
		result = filtered[0]
	} else {
		c := &climber{tokens: filtered}
		var i int
		result, i = c.parseRest(filtered[0], 1, 0)
		if i != len(filtered) {
			return nil, errors.New(errors.UnsupportedPrecedenceInput, "", "trailing tokens left after climbing")
		}
	}

	if unaryOp != nil {
		result = &ast.Node{
			Class:    ast.ClassBinaryOperation,
			Content:  "u" + unaryOp.Content,
			Children: []*ast.Node{unaryOp, result},
			Role:     map[string]*ast.Node{"rhs": result},
		}
	}
	return result, nil
}

func isUnaryCapable(spelling string) bool {
	switch spelling {
	case "-", "!", "not":
		return true
	default:
		return false
	}
}

type climber struct {
	tokens []*ast.Node
}

// parseRest is the classical precedence-climbing inner loop: consume
// operators at or above minPrec, recursing
// into parseRest for any right-hand run that binds tighter (or, for a
// right-associative operator, equally as tight).
func (c *climber) parseRest(lhs *ast.Node, i int, minPrec uint8) (*ast.Node, int) {
	for i < len(c.tokens) {
		opTok := c.tokens[i]
		info, ok := operatorAt(opTok)
		if !ok || info.Precedence < minPrec {
			break
		}
		if i+1 >= len(c.tokens) {
			break
		}
		nextMin := info.Precedence
		if !info.RightAssociative {
			nextMin++
		}

		rhs := c.tokens[i+1]
		i += 2

		for i < len(c.tokens) {
			nextOp := c.tokens[i]
			info2, ok2 := operatorAt(nextOp)
			if !ok2 {
				break
			}
			if info2.Precedence > info.Precedence || (info2.RightAssociative && info2.Precedence == info.Precedence) {
				rhs, i = c.parseRest(rhs, i, nextMin)
				continue
			}
			break
		}

		lhs = buildBinaryOperation(opTok, lhs, rhs)
	}
	return lhs, i
}

func operatorAt(n *ast.Node) (OpInfo, bool) {
	if n == nil || n.Class != ast.ClassTokenOperator {
		return OpInfo{}, false
	}
	return precedence(n.Content)
}

func buildBinaryOperation(op, lhs, rhs *ast.Node) *ast.Node {
	return &ast.Node{
		Class:    ast.ClassBinaryOperation,
		Content:  op.Content,
		Children: []*ast.Node{lhs, op, rhs},
		Role: map[string]*ast.Node{
			"lhs": lhs,
			"op":  op,
			"rhs": rhs,
		},
	}
}

// SplitOnComma splits a flat, already-filtered token slice into
// comma-delimited segments. Commas terminate an expression segment: the
// climber runs once per segment, and the comma tokens are returned so
// argument lists can be re-emitted in order (len(commas) ==
// len(segments)-1 for a well-formed list).
func SplitOnComma(tokens []*ast.Node) (segments [][]*ast.Node, commas []*ast.Node) {
	var current []*ast.Node
	for _, t := range tokens {
		if t.IsOperator(",") {
			segments = append(segments, current)
			commas = append(commas, t)
			current = nil
			continue
		}
		current = append(current, t)
	}
	segments = append(segments, current)
	return segments, commas
}

// ClimbArgumentList climbs each comma-delimited segment of tokens
// independently and returns one node per argument, in order.
func ClimbArgumentList(tokens []*ast.Node) ([]*ast.Node, error) {
	filtered := ast.FilterChildren(tokens)
	segments, _ := SplitOnComma(filtered)
	args := make([]*ast.Node, 0, len(segments))
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		node, err := ClimbPrecedence(seg)
		if err != nil {
			return nil, err
		}
		args = append(args, node)
	}
	return args, nil
}
