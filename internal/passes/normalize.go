package passes

import (
	"github.com/cwbudde/exiftrans/internal/ast"
	"github.com/cwbudde/exiftrans/internal/log"
	"go.uber.org/zap"
)

// StandardPasses returns the fixed, declared-order pass catalogue. Order
// is semantically load-bearing: several later passes rely on earlier ones
// having already run (e.g. SneakyConditionalAssignmentNormalizer expects
// FunctionCallNormalizer and ConditionalStatementsNormalizer to have
// already claimed any call or trailing-conditional shape inside either of
// its two statements), so this list must never be reordered.
func StandardPasses() []Pass {
	return []Pass{
		newPass("JoinUnpackPass", joinUnpackPass),
		newPass("FunctionCallNormalizer", functionCallNormalizer),
		newPass("ConditionalStatementsNormalizer", conditionalStatementsNormalizer),
		newPass("StringOpNormalizer", stringOpNormalizer),
		newPass("SafeDivisionNormalizer", safeDivisionNormalizer),
		newPass("TernaryNormalizer", ternaryNormalizer),
		newPass("SneakyConditionalAssignmentNormalizer", sneakyConditionalAssignmentNormalizer),
		newPass("PrecedenceClimber", precedenceClimberPass),
	}
}

// Normalize applies the standard pass catalogue to root in one recursive
// post-order descent: children are fully normalized (every pass, all the
// way down) before any pass runs on a given node, and then every pass runs
// on that node in declared order before its result is handed to the
// parent. One fold of the pass list per node, not a separate whole-tree
// walk per pass; see ast.FoldPostOrder.
func Normalize(root *ast.Node) *ast.Node {
	passList := StandardPasses()
	fns := make([]ast.Transform, len(passList))
	for i, p := range passList {
		p := p
		fns[i] = func(n *ast.Node) *ast.Node {
			before := n
			after := p.Transform(n)
			log.L().Debug("normalize pass applied",
				zap.String("pass", p.Name()),
				zap.Bool("changed", before != after))
			return after
		}
	}
	return ast.FoldPostOrder(root, fns)
}
