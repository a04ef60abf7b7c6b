package reachability

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/types"
)

func spanOf(node *tree_sitter.Node) types.Span {
	return types.NewSpan(int(node.StartByte()), int(node.EndByte()-node.StartByte()))
}

func spansEqual(a types.Span, node *tree_sitter.Node) bool {
	if node == nil {
		return false
	}
	b := spanOf(node)
	return a.Offset == b.Offset && a.Length == b.Length
}

func sameNode(a, b *tree_sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Kind() == b.Kind()
}

func isKindIn(kind string, kinds []string) bool {
	for _, k := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// unwrapParens strips enclosing parenthesized nodes (the Java,
// JavaScript/TypeScript and PHP grammars wrap an if-condition in one; the
// other shipped grammars do not) so condition-span comparisons
// compare the meaningful expression, not the parens around it. A ternary's
// condition is not parenthesized by grammar, so this is usually a no-op
// there.
func unwrapParens(node *tree_sitter.Node) *tree_sitter.Node {
	for node != nil && strings.Contains(node.Kind(), "parenthesized") && node.NamedChildCount() == 1 {
		node = node.NamedChild(0)
	}
	return node
}

// topmostNotWrapper walks outward through consecutive prefix-"!" ancestors,
// mirroring the usage scanner's negation walk (internal/scanner/nodeutil.go)
// but returning the outermost wrapper node itself rather than a toggled
// bool, since the analyzer needs that node's span to compare against the
// condition's span for rule 1.
func topmostNotWrapper(node *tree_sitter.Node, profile langprofile.Profile) *tree_sitter.Node {
	cur := node
	for {
		parent := cur.Parent()
		if parent == nil || !isKindIn(parent.Kind(), profile.PrefixNotKinds()) {
			return cur
		}
		cur = parent
	}
}

// enclosingBinaryOperand reports whether top is a direct operand of a binary
// expression that itself forms cf's whole condition (rules 2 and 3 require
// the binary to be the top-level shape of the condition, not nested deeper).
// It reads a binary_expression's three children positionally (left,
// operator, right) rather than by field name, since not every shipped
// grammar exposes "left"/"right" fields on this node.
func enclosingBinaryOperand(top, condition *tree_sitter.Node, profile langprofile.Profile) (binary, other *tree_sitter.Node, ok bool) {
	parent := top.Parent()
	if parent == nil || !isKindIn(parent.Kind(), profile.BinaryExpressionKinds()) {
		return nil, nil, false
	}
	if !spansEqual(spanOf(parent), condition) {
		return nil, nil, false
	}
	if parent.ChildCount() < 3 {
		return nil, nil, false
	}
	left, right := parent.Child(0), parent.Child(2)
	switch {
	case sameNode(left, top):
		return parent, right, true
	case sameNode(right, top):
		return parent, left, true
	default:
		return nil, nil, false
	}
}

func binaryOperatorText(node *tree_sitter.Node, source []byte) string {
	if node.ChildCount() < 2 {
		return ""
	}
	return node.Child(1).Kind()
}
