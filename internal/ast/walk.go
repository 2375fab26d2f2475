package ast

// Transform is a pure rewrite function applied to one node. Implementations
// must be a strict identity on inputs they don't recognize, returning the
// same node unchanged.
type Transform func(*Node) *Node

// PostOrder applies fn to n after first applying it (recursively) to
// every child: children are rewritten first, then fn is invoked on the
// resulting node. There is only one node type, so no visitor
// double-dispatch table is needed; a single recursive function suffices.
func PostOrder(n *Node, fn Transform) *Node {
	return FoldPostOrder(n, []Transform{fn})
}

// FoldPostOrder applies every transform in fns, in order, to n after
// first recursively and fully folding all of fns (not just the first)
// over every child: a single recursive descent where a node's children
// are completely rewritten (every transform, all the way down) before any
// transform runs on the node itself. This is deliberately NOT the same as
// looping "apply transform 1 across the whole tree, then transform 2
// across the whole tree": that pass-major order would let a node be
// visited by transform 2 while a sibling subtree two levels down still
// awaits transform 6, which the recursive fold never allows.
func FoldPostOrder(n *Node, fns []Transform) *Node {
	if n == nil {
		return nil
	}
	rewritten := n.Clone()
	rewritten.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		rewritten.Children[i] = FoldPostOrder(c, fns)
	}
	if rewritten.Role != nil {
		for k, v := range rewritten.Role {
			rewritten.Role[k] = FoldPostOrder(v, fns)
		}
	}
	for _, fn := range fns {
		rewritten = fn(rewritten)
	}
	return rewritten
}

// Walk calls visit for every node in the tree, pre-order, without
// rewriting. Used by the classifier and emitter's read-only passes.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
	for _, c := range n.Role {
		Walk(c, visit)
	}
}

// FilterChildren returns n's children with whitespace and comment nodes
// removed, as required before precedence climbing.
func FilterChildren(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		if c.IsWhitespaceOrComment() {
			continue
		}
		out = append(out, c)
	}
	return out
}
