package cmd

import (
	"fmt"
	"strings"

	"github.com/cwbudde/exiftrans/internal/ast"
)

// parseExpressionType maps the --type flag's CLI spelling onto
// ast.ExpressionType.
func parseExpressionType(s string) (ast.ExpressionType, error) {
	switch strings.ToLower(s) {
	case "printconv":
		return ast.PrintConv, nil
	case "valueconv":
		return ast.ValueConv, nil
	case "condition":
		return ast.Condition, nil
	default:
		return 0, fmt.Errorf("unknown expression type %q (want printconv, valueconv, or condition)", s)
	}
}
