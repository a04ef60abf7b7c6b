package scanner

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/types"
)

func spanOf(node *tree_sitter.Node) types.Span {
	return types.NewSpan(int(node.StartByte()), int(node.EndByte()-node.StartByte()))
}

func isKindIn(kind string, kinds []string) bool {
	for _, k := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func isCallKind(node *tree_sitter.Node, profile langprofile.Profile) bool {
	return isKindIn(node.Kind(), profile.CallExpressionKinds())
}

// extractControlFlow reads the condition/consequence/alternative fields
// shared (with minor naming drift the shipped profiles absorb by using the
// same three field names) across the tree-sitter grammars this engine
// supports.
func extractControlFlow(node *tree_sitter.Node, kind types.ControlFlowKind) *types.ControlFlowNode {
	cond := node.ChildByFieldName("condition")
	if cond == nil {
		return nil
	}
	return &types.ControlFlowNode{
		Kind:      kind,
		Node:      node,
		Condition: cond,
		Then:      node.ChildByFieldName("consequence"),
		Else:      node.ChildByFieldName("alternative"),
		Span:      spanOf(node),
	}
}

// nearestConditionFrame decides condition membership: a node is "in a
// condition" iff the *nearest* enclosing if/ternary's condition (not its
// body) contains it. Once a node falls inside that nearest ancestor's body
// instead, scanning stops there; it never looks further outward past that
// boundary.
func nearestConditionFrame(cfStack []*types.ControlFlowNode, span types.Span) *types.ControlFlowNode {
	if len(cfStack) == 0 {
		return nil
	}
	nearest := cfStack[len(cfStack)-1]
	if spanOf(nearest.Condition).Contains(span) {
		return nearest
	}
	return nil
}

// detectNegation walks outward through consecutive prefix-"!" wrappers,
// toggling on each one and stopping at the first ancestor that isn't one.
// Double negation is not canonicalized away; it toggles twice.
func detectNegation(refNode *tree_sitter.Node, profile langprofile.Profile, source []byte) bool {
	negated := false
	cur := refNode
	for {
		parent := cur.Parent()
		if parent == nil {
			return negated
		}
		if !isKindIn(parent.Kind(), profile.PrefixNotKinds()) {
			return negated
		}
		opText := operatorText(parent, source)
		if opText != "!" {
			return negated
		}
		negated = !negated
		cur = parent
	}
}

func operatorText(unaryNode *tree_sitter.Node, source []byte) string {
	if op := unaryNode.ChildByFieldName("operator"); op != nil {
		return spanOf(op).Text(source)
	}
	if unaryNode.ChildCount() > 0 {
		return spanOf(unaryNode.Child(0)).Text(source)
	}
	return ""
}

// firstCallNode returns the first call-shaped descendant encountered in a
// pre-order walk of node's subtree.
func firstCallNode(node *tree_sitter.Node, profile langprofile.Profile) *tree_sitter.Node {
	if node == nil {
		return nil
	}
	if isCallKind(node, profile) {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := firstCallNode(node.Child(i), profile); found != nil {
			return found
		}
	}
	return nil
}

// firstIdentifierBefore returns the spelling of the first identifier-kind
// node encountered in a pre-order walk of node's subtree that occurs before
// stopNode's own subtree is reached.
func (s *UsageScanner) firstIdentifierBeforeCall(node, stopNode *tree_sitter.Node) (string, bool) {
	return firstIdentifierBefore(node, stopNode, s.Source)
}

func firstIdentifierBefore(node, stopNode *tree_sitter.Node, source []byte) (string, bool) {
	if node == nil || sameNode(node, stopNode) {
		return "", false
	}
	if node.Kind() == "identifier" || node.Kind() == "name" {
		return spanOf(node).Text(source), true
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if sameNode(child, stopNode) {
			break
		}
		if name, ok := firstIdentifierBefore(child, stopNode, source); ok {
			return name, true
		}
	}
	return "", false
}

func sameNode(a, b *tree_sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Kind() == b.Kind()
}
