package cmd

import (
	"sort"
	"strings"

	"github.com/cwbudde/exiftrans/internal/ast"
)

// reconstructSource renders a best-effort Perl source rendering of root by
// collecting every node's literal Content in document order (ast.Node.Pos,
// the monotonic index the ingestor assigns). It is used only as a fallback
// when the caller does not supply the original Perl text via --source; the
// PPI JSON dump carries per-token content fragments but not the full
// original source string, so this reconstruction is approximate — good
// enough for diagnostics and registry-lookup text, never for semantics.
func reconstructSource(root *ast.Node) string {
	type fragment struct {
		pos     int
		content string
	}
	var frags []fragment
	ast.Walk(root, func(n *ast.Node) {
		if n.HasContent && n.Content != "" {
			frags = append(frags, fragment{pos: n.Pos, content: n.Content})
		}
	})
	sort.Slice(frags, func(i, j int) bool { return frags[i].pos < frags[j].pos })
	parts := make([]string, len(frags))
	for i, f := range frags {
		parts[i] = f.content
	}
	return strings.Join(parts, " ")
}
