// Package emit walks the normalized tree post-order and produces Rust
// source text: a single per-node-class switch building output with
// strings.Builder, nothing template-engine-based.
package emit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/exiftrans/internal/ast"
	"github.com/cwbudde/exiftrans/internal/classify"
	"github.com/cwbudde/exiftrans/internal/errors"
	"github.com/cwbudde/exiftrans/internal/passes"
)

// mechanicalBuiltins is the fixed set of Perl callables the emitter knows
// how to translate directly. Any other
// call name reaching Emit produces errors.UnknownFunction, signaling the
// caller (internal/compile) to consult the implementation registry
// instead.
var mechanicalBuiltins = map[string]bool{
	"sprintf": true, "length": true, "int": true, "abs": true, "log": true,
	"split": true, "join": true, "unpack": true, "join_unpack_binary": true,
}

// Emit walks n post-order and returns the Rust expression text for its
// body, or a diagnostic naming the unsupported shape.
func Emit(n *ast.Node, ctx *classify.Context) (string, error) {
	switch n.Class {
	case ast.ClassStatement, ast.ClassStatementExpression:
		// A statement container that normalization left with exactly one
		// child is already a fully resolved expression (the climber
		// eliminates the wrapper for multi-token runs; single-child
		// statements, e.g. a lone FunctionCall, never go through that
		// path). Unwrap rather than teach every producer to avoid ever
		// nesting a single child inside a Statement.
		if len(n.Children) == 1 {
			return Emit(n.Children[0], ctx)
		}
		return "", errors.New(errors.UnsupportedTokenClass, n.Content, "multi-statement body").WithTokenClass(string(n.Class))
	case ast.ClassTokenSymbol:
		return emitSymbol(n)
	case ast.ClassStructureSubscript:
		return emitSubscript(n, ctx)
	case ast.ClassTokenNumber:
		return emitNumber(n, false)
	case ast.ClassTokenNumberFloat:
		return emitNumber(n, true)
	case ast.ClassTokenNumberHex:
		return emitHex(n)
	case ast.ClassTokenQuoteSingle:
		return `"` + EscapeString(n.StringValue) + `"`, nil
	case ast.ClassTokenQuoteDouble:
		return emitDoubleQuote(n)
	case ast.ClassBinaryOperation:
		return emitBinaryOperation(n, ctx)
	case ast.ClassTernaryOp:
		return emitTernary(n, ctx)
	case ast.ClassConditionalBlock:
		return emitConditionalBlock(n, ctx)
	case ast.ClassFunctionCall:
		return emitFunctionCall(n, ctx)
	case ast.ClassSafeDivision:
		return emitSafeDivision(n, ctx)
	case ast.ClassStringConcat:
		return emitStringConcat(n, ctx)
	case ast.ClassStringRepeat:
		return emitStringRepeat(n, ctx)
	case ast.ClassStatementVariable:
		return emitStatementVariable(n, ctx)
	case ast.ClassTokenRegexpMatch, ast.ClassTokenRegexpSubst:
		return "", errors.New(errors.RequiresManualImplementation, n.Content,
			"regex nodes are always registry-deferred; provide a hand-written implementation")
	default:
		return "", errors.New(errors.UnsupportedTokenClass, n.Content, "").WithTokenClass(string(n.Class))
	}
}

// interpolationVar matches a bare Perl scalar interpolation ($name) inside
// an already-decoded double-quoted string value. Only the simple form is
// supported; "${...}"/"@array" interpolation is not recognized: the
// variable reference simply won't match and the string emits as a literal
// containing a stray "$" (no diagnostic is raised).
var interpolationVar = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// emitDoubleQuote emits a Token.Quote.Double literal, recognizing simple
// scalar interpolation ("$val m") and rewriting it to a format! call with
// the interpolated names as arguments.
func emitDoubleQuote(n *ast.Node) (string, error) {
	matches := interpolationVar.FindAllStringSubmatchIndex(n.StringValue, -1)
	if len(matches) == 0 {
		return `"` + EscapeString(n.StringValue) + `"`, nil
	}

	var formatStr strings.Builder
	var args []string
	last := 0
	for _, m := range matches {
		formatStr.WriteString(n.StringValue[last:m[0]])
		formatStr.WriteString("{}")
		args = append(args, n.StringValue[m[2]:m[3]])
		last = m[1]
	}
	formatStr.WriteString(n.StringValue[last:])

	return fmt.Sprintf(`format!("%s"%s)`, EscapeString(formatStr.String()), joinArgsWithLeadingComma(args)), nil
}

func emitSymbol(n *ast.Node) (string, error) {
	name := strings.TrimPrefix(n.Content, "$")
	return name, nil
}

func emitSubscript(n *ast.Node, ctx *classify.Context) (string, error) {
	if len(n.Children) == 0 {
		return "", errors.New(errors.UnsupportedTokenClass, n.Content, "").WithTokenClass(string(ast.ClassStructureSubscript))
	}
	base, err := Emit(n.Children[0], ctx)
	if err != nil {
		return "", err
	}
	inner := ast.FilterChildren(n.Children[1:])
	if len(inner) == 1 && inner[0].Class == ast.ClassTokenNumber {
		return fmt.Sprintf("%s.get(%d).cloned().unwrap_or_default()", base, int64(inner[0].NumericValue)), nil
	}
	return "", errors.New(errors.UnsupportedTokenClass, n.Content, "non-literal subscript index").WithTokenClass(string(ast.ClassStructureSubscript))
}

func emitNumber(n *ast.Node, float bool) (string, error) {
	if n.HasNumericValue {
		if float || n.NumericValue != float64(int64(n.NumericValue)) {
			return strconv.FormatFloat(n.NumericValue, 'g', -1, 64), nil
		}
		return strconv.FormatInt(int64(n.NumericValue), 10), nil
	}
	return n.Content, nil
}

func emitHex(n *ast.Node) (string, error) {
	if n.Content != "" {
		return n.Content, nil
	}
	return fmt.Sprintf("0x%x", int64(n.NumericValue)), nil
}

func emitBinaryOperation(n *ast.Node, ctx *classify.Context) (string, error) {
	op := n.Content
	if op == "u-" || op == "u!" || op == "unot" {
		// A unary operand that is itself a binary operation is always
		// parenthesized, so "-" over "val / 10" reads "-(val / 10.0)".
		rhs, err := emitOperand(n.Child("rhs"), ctx, unaryOperandPrec, true, false)
		if err != nil {
			return "", err
		}
		if op == "u-" {
			return "-" + rhs, nil
		}
		return "!" + rhs, nil
	}

	info, known := passes.PrecedenceTable[op]
	if !known {
		info = passes.OpInfo{}
	}
	lhsNode, rhsNode := n.Child("lhs"), n.Child("rhs")
	lhs, err := emitOperand(lhsNode, ctx, info.Precedence, false, info.RightAssociative)
	if err != nil {
		return "", err
	}
	rhs, err := emitOperand(rhsNode, ctx, info.Precedence, true, info.RightAssociative)
	if err != nil {
		return "", err
	}
	if mapped, ok := stringComparisonOps[op]; ok {
		return fmt.Sprintf("%s %s %s", lhs, mapped, rhs), nil
	}
	if op == "." {
		return fmt.Sprintf("perl_concat(&%s, &%s)", lhs, rhs), nil
	}
	if op == "/" {
		lhs = asFloatOperand(lhsNode, lhs)
		rhs = asFloatOperand(rhsNode, rhs)
	}
	return fmt.Sprintf("%s %s %s", lhs, op, rhs), nil
}

// unaryOperandPrec forces parentheses around any binary operand of a
// prefix operator.
const unaryOperandPrec = 255

// emitOperand renders one side of a binary operation, parenthesizing it
// only when omitting the parentheses would rebind the child under the
// parent's precedence: a strictly looser child always needs them, and an
// equal-precedence child needs them on the side the parent's
// associativity does not already group.
func emitOperand(n *ast.Node, ctx *classify.Context, parentPrec uint8, isRight, parentRightAssoc bool) (string, error) {
	text, err := Emit(n, ctx)
	if err != nil {
		return "", err
	}
	if n.Class != ast.ClassBinaryOperation {
		return text, nil
	}
	childInfo, ok := passes.PrecedenceTable[n.Content]
	if !ok {
		// Unary forms and anything else outside the table: parenthesize.
		return "(" + text + ")", nil
	}
	switch {
	case childInfo.Precedence < parentPrec:
		return "(" + text + ")", nil
	case childInfo.Precedence == parentPrec && isRight != parentRightAssoc:
		return "(" + text + ")", nil
	}
	return text, nil
}

var stringComparisonOps = map[string]string{
	"eq": "==", "ne": "!=", "lt": "<", "gt": ">", "le": "<=", "ge": ">=",
}

// asFloatOperand appends ".0" to an integer-literal numerator/divisor of
// a division so Perl's float-division default is preserved.
func asFloatOperand(n *ast.Node, rendered string) string {
	if n != nil && n.Class == ast.ClassTokenNumber && !strings.ContainsAny(rendered, ".eE") {
		return rendered + ".0"
	}
	return rendered
}

func emitTernary(n *ast.Node, ctx *classify.Context) (string, error) {
	cond, err := Emit(n.Child("cond"), ctx)
	if err != nil {
		return "", err
	}
	then, err := Emit(n.Child("then"), ctx)
	if err != nil {
		return "", err
	}
	els, err := Emit(n.Child("else"), ctx)
	if err != nil {
		return "", err
	}
	// Arms are left untagged here; Function applies the single outer
	// TagValue::from(...) wrap since a TernaryOp's whole if/else is one
	// expression. The tagged-string constructor wraps the whole ternary,
	// not each arm.
	return fmt.Sprintf("if %s { %s } else { %s }", cond, then, els), nil
}

func wrapTagged(expr string) string {
	return fmt.Sprintf("TagValue::from(%s)", expr)
}

func emitConditionalBlock(n *ast.Node, ctx *classify.Context) (string, error) {
	cond, err := Emit(n.Child("cond"), ctx)
	if err != nil {
		return "", err
	}
	if n.Content == "unless" {
		cond = "!(" + cond + ")"
	}

	if assignment := n.Child("assignment"); assignment != nil {
		assignText, err := emitAssignment(assignment, ctx)
		if err != nil {
			return "", err
		}
		ret, err := Emit(n.Child("return"), ctx)
		if err != nil {
			return "", err
		}
		// The return tail must itself be a TagValue (this shape is not a
		// single expression, so Function's outer wrap never applies to it —
		// see the comment on Function).
		if ctx.Type != ast.Condition {
			ret = wrapTagged(ret)
		}
		return fmt.Sprintf("if %s { %s } %s", cond, assignText, ret), nil
	}

	then, err := Emit(n.Child("then"), ctx)
	if err != nil {
		return "", err
	}
	if els := n.Child("else"); els != nil {
		elsText, err := Emit(els, ctx)
		if err != nil {
			return "", err
		}
		if ctx.Type != ast.Condition {
			then = wrapTagged(then)
			elsText = wrapTagged(elsText)
		}
		return fmt.Sprintf("if %s { %s } else { %s }", cond, then, elsText), nil
	}
	if ctx.Type != ast.Condition {
		then = wrapTagged(then)
	}
	return fmt.Sprintf("if %s { %s }", cond, then), nil
}

func emitAssignment(n *ast.Node, ctx *classify.Context) (string, error) {
	target, err := Emit(n.Child("target"), ctx)
	if err != nil {
		return "", err
	}
	value, err := Emit(n.Child("value"), ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s;", target, n.Content, value), nil
}

// builtinMinArgs guards against short or empty argument lists before any
// positional access: a variadic builtin called with nothing is an
// UnknownFunction diagnostic, never a silent emission or a panic.
var builtinMinArgs = map[string]int{
	"sprintf": 1, "length": 1, "int": 1, "abs": 1, "log": 1,
	"split": 2, "join": 2, "unpack": 2, "join_unpack_binary": 3,
}

func emitFunctionCall(n *ast.Node, ctx *classify.Context) (string, error) {
	if !mechanicalBuiltins[n.Content] {
		return "", errors.New(errors.UnknownFunction, n.Content,
			"not in the mechanical builtin set; check the implementation registry")
	}
	if len(n.Children) < builtinMinArgs[n.Content] {
		return "", errors.New(errors.UnknownFunction, n.Content,
			fmt.Sprintf("%s requires at least %d argument(s), got %d", n.Content, builtinMinArgs[n.Content], len(n.Children)))
	}

	args := make([]string, len(n.Children))
	for i, c := range n.Children {
		text, err := Emit(c, ctx)
		if err != nil {
			return "", err
		}
		args[i] = text
	}

	switch n.Content {
	case "sprintf":
		return emitSprintf(n, ctx)
	case "length":
		return fmt.Sprintf("perl_length(&%s)", args[0]), nil
	case "int":
		return fmt.Sprintf("(%s as i32)", args[0]), nil
	case "abs":
		return fmt.Sprintf("%s.abs()", args[0]), nil
	case "log":
		return fmt.Sprintf("(%s as f64).ln()", args[0]), nil
	case "split":
		return fmt.Sprintf("perl_split(%s, &%s)", args[0], args[1]), nil
	case "join":
		return fmt.Sprintf("perl_join(%s, &%s)", args[0], args[1]), nil
	case "unpack":
		return emitUnpack(n, ctx, args)
	case "join_unpack_binary":
		return fmt.Sprintf("join_unpack_binary(%s, %s, &%s)", args[0], args[1], args[2]), nil
	default:
		return "", errors.New(errors.UnknownFunction, n.Content, "")
	}
}

func emitSprintf(n *ast.Node, ctx *classify.Context) (string, error) {
	fmtNode := n.Child("arg0")
	if fmtNode == nil || (fmtNode.Class != ast.ClassTokenQuoteDouble && fmtNode.Class != ast.ClassTokenQuoteSingle) {
		return "", errors.New(errors.UnsupportedFormatSpec, n.Content, "sprintf format must be a literal string")
	}
	rustFormat, err := TranslateFormat(fmtNode.StringValue)
	if err != nil {
		return "", err
	}
	var argExprs []string
	for i := 1; ; i++ {
		arg := n.Child(argRoleName(i))
		if arg == nil {
			break
		}
		text, err := Emit(arg, ctx)
		if err != nil {
			return "", err
		}
		argExprs = append(argExprs, text)
	}
	inner := fmt.Sprintf(`format!("%s"%s)`, EscapeString(rustFormat), joinArgsWithLeadingComma(argExprs))
	return wrapTagged(inner), nil
}

func joinArgsWithLeadingComma(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return ", " + strings.Join(args, ", ")
}

func argRoleName(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return "arg" + string(digits[i])
	}
	return "argN"
}

// unpackSupportedSpecs maps supported unpack format specifiers to the
// byte-decoding helper that implements them.
var unpackSupportedSpecs = map[string]string{
	"H2": "unpack_binary_h2",
	"N":  "unpack_binary_n",
	"n":  "unpack_binary_n16",
	"C":  "unpack_binary_c",
}

func emitUnpack(n *ast.Node, ctx *classify.Context, args []string) (string, error) {
	fmtNode := n.Child("arg0")
	if fmtNode == nil || (fmtNode.Class != ast.ClassTokenQuoteDouble && fmtNode.Class != ast.ClassTokenQuoteSingle) {
		return "", errors.New(errors.UnsupportedFormatSpec, n.Content, "unpack format must be a literal string")
	}
	helper, ok := unpackSupportedSpecs[fmtNode.StringValue]
	if !ok {
		return "", errors.New(errors.RequiresManualImplementation, fmtNode.StringValue,
			"unpack format has no mechanical decoder; add one to the registry")
	}
	return fmt.Sprintf("%s(&%s)", helper, args[1]), nil
}

func emitSafeDivision(n *ast.Node, ctx *classify.Context) (string, error) {
	divisor, err := Emit(n.Child("divisor"), ctx)
	if err != nil {
		return "", err
	}
	num := n.Child("numerator")
	if num.Class == ast.ClassTokenNumber && num.NumericValue == 1 {
		return fmt.Sprintf("safe_reciprocal(&%s)", divisor), nil
	}
	numerator, err := Emit(num, ctx)
	if err != nil {
		return "", err
	}
	numerator = asFloatOperand(num, numerator)
	return fmt.Sprintf("safe_division(%s, &%s)", numerator, divisor), nil
}

func emitStringConcat(n *ast.Node, ctx *classify.Context) (string, error) {
	lhs, err := Emit(n.Child("lhs"), ctx)
	if err != nil {
		return "", err
	}
	rhs, err := Emit(n.Child("rhs"), ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("perl_concat(&%s, &%s)", lhs, rhs), nil
}

func emitStringRepeat(n *ast.Node, ctx *classify.Context) (string, error) {
	value, err := Emit(n.Child("value"), ctx)
	if err != nil {
		return "", err
	}
	count, err := Emit(n.Child("count"), ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("perl_repeat(&%s, %s as usize)", value, count), nil
}

func emitStatementVariable(n *ast.Node, ctx *classify.Context) (string, error) {
	if len(n.Children) < 2 {
		return "", errors.New(errors.UnsupportedTokenClass, n.Content, "").WithTokenClass(string(ast.ClassStatementVariable))
	}
	name, err := Emit(n.Children[0], ctx)
	if err != nil {
		return "", err
	}
	value, err := Emit(n.Children[1], ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("let %s = %s;", name, value), nil
}

// Signature renders the function signature line for ctx's expression
// type. name is the caller-assigned Rust function identifier.
func Signature(name string, ctx *classify.Context) string {
	if ctx.Type == ast.Condition {
		if ctx.HasSelfContext() {
			return fmt.Sprintf("fn %s(val: &TagValue, ctx: &Context) -> bool", name)
		}
		return fmt.Sprintf("fn %s(val: &TagValue) -> bool", name)
	}
	if ctx.HasSelfContext() {
		return fmt.Sprintf("fn %s(val: &TagValue, ctx: &Context) -> TagValue", name)
	}
	return fmt.Sprintf("fn %s(val: &TagValue) -> TagValue", name)
}

// Function renders a complete Rust function: a comment block carrying the
// original Perl source verbatim, the signature, and the emitted body.
func Function(name, perlSource string, body *ast.Node, ctx *classify.Context) (string, error) {
	bodyText, err := Emit(body, ctx)
	if err != nil {
		return "", err
	}
	// ConditionalBlock wraps its own then/else/return arms in TagValue::from
	// internally (emitConditionalBlock), since its assignment-carrying form
	// emits as an if-statement followed by a trailing return expression —
	// not a single expression — so wrapping the whole body in
	// TagValue::from(...) here would place a semicolon-bearing statement
	// inside a parenthesized call, which isn't valid Rust. Every other body
	// shape is a single expression and gets the tagged-value wrap here.
	if ctx.Type != ast.Condition && body.Class != ast.ClassConditionalBlock {
		bodyText = wrapTagged(bodyText)
	}
	var sb strings.Builder
	for _, line := range strings.Split(perlSource, "\n") {
		fmt.Fprintf(&sb, "// %s\n", line)
	}
	fmt.Fprintf(&sb, "%s {\n    %s\n}\n", Signature(name, ctx), bodyText)
	return sb.String(), nil
}
