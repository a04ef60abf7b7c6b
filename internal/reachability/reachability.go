// Package reachability decides, given one or more FlagReferences and their
// enclosing control-flow construct, the construct's fate from a closed set
// of Decisions. The analyzer is conservative by construction: any shape
// rule 1 through 4 doesn't recognize falls through to KeepBoth rather than
// guessing.
package reachability

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/types"
)

// DecisionKind is the closed set of outcomes the analyzer can reach.
type DecisionKind int

const (
	KeepThenRemoveElse DecisionKind = iota
	RemoveThenKeepElse
	RemoveAll
	SimplifyCondition
	KeepBoth
)

// Decision is the analyzer's verdict for one control-flow construct.
type Decision struct {
	Kind                DecisionKind
	ControlFlow         *types.ControlFlowNode
	Reference           *types.FlagReference
	SimplifiedCondition *tree_sitter.Node // set only for SimplifyCondition: the surviving operand
	Binary              *tree_sitter.Node // set only for SimplifyCondition: the binary expression being replaced
}

// Analyze decides cf's fate. refs is every FlagReference whose
// ParentControlFlow is cf: one Decision per construct, resolved from the
// first reference by source position; the rest only matter for detecting
// the "both operands involve flags" case that forces KeepBoth.
func Analyze(cf *types.ControlFlowNode, refs []*types.FlagReference, profile langprofile.Profile, source []byte) Decision {
	if cf == nil || len(refs) == 0 {
		return Decision{Kind: KeepBoth}
	}

	primary := firstBySpan(refs)
	v := primary.EffectiveValue()
	top := topmostNotWrapper(primary.Node, profile)
	condition := unwrapParens(cf.Condition)

	if spansEqual(spanOf(top), condition) {
		return rule1(cf, primary, v)
	}

	binary, other, ok := enclosingBinaryOperand(top, condition, profile)
	if !ok {
		return Decision{Kind: KeepBoth, ControlFlow: cf, Reference: primary}
	}
	if anyOtherReferenceWithin(refs, primary, other) {
		// Rule 5: both operands involve a flag, too complex to prove safe.
		return Decision{Kind: KeepBoth, ControlFlow: cf, Reference: primary}
	}

	switch binaryOperatorText(binary, source) {
	case "&&":
		return rule2(cf, primary, v, binary, other)
	case "||":
		return rule3(cf, primary, v, binary, other)
	default:
		return Decision{Kind: KeepBoth, ControlFlow: cf, Reference: primary}
	}
}

// rule1: the whole condition (modulo a prefix-! chain already folded into v)
// is the flag reference itself.
func rule1(cf *types.ControlFlowNode, ref *types.FlagReference, v bool) Decision {
	if cf.Kind == types.ControlFlowTernary {
		if v {
			return Decision{Kind: KeepThenRemoveElse, ControlFlow: cf, Reference: ref}
		}
		return Decision{Kind: RemoveThenKeepElse, ControlFlow: cf, Reference: ref}
	}

	if !cf.HasElse() {
		if v {
			return Decision{Kind: KeepThenRemoveElse, ControlFlow: cf, Reference: ref}
		}
		return Decision{Kind: RemoveAll, ControlFlow: cf, Reference: ref}
	}
	if v {
		return Decision{Kind: KeepThenRemoveElse, ControlFlow: cf, Reference: ref}
	}
	return Decision{Kind: RemoveThenKeepElse, ControlFlow: cf, Reference: ref}
}

// rule2: C is "X && other". true ∧ A = A; false ∧ A is always false.
func rule2(cf *types.ControlFlowNode, ref *types.FlagReference, v bool, binary, other *tree_sitter.Node) Decision {
	if v {
		return Decision{Kind: SimplifyCondition, ControlFlow: cf, Reference: ref, SimplifiedCondition: other, Binary: binary}
	}
	if cf.HasElse() {
		return Decision{Kind: RemoveThenKeepElse, ControlFlow: cf, Reference: ref}
	}
	return Decision{Kind: RemoveAll, ControlFlow: cf, Reference: ref}
}

// rule3: C is "X || other". true ∨ A is always true; false ∨ A = A.
func rule3(cf *types.ControlFlowNode, ref *types.FlagReference, v bool, binary, other *tree_sitter.Node) Decision {
	if v {
		return Decision{Kind: KeepThenRemoveElse, ControlFlow: cf, Reference: ref}
	}
	return Decision{Kind: SimplifyCondition, ControlFlow: cf, Reference: ref, SimplifiedCondition: other, Binary: binary}
}

func firstBySpan(refs []*types.FlagReference) *types.FlagReference {
	best := refs[0]
	for _, r := range refs[1:] {
		if r.Span.Offset < best.Span.Offset {
			best = r
		}
	}
	return best
}

func anyOtherReferenceWithin(refs []*types.FlagReference, primary *types.FlagReference, subtree *tree_sitter.Node) bool {
	if subtree == nil {
		return false
	}
	subtreeSpan := spanOf(subtree)
	for _, r := range refs {
		if r == primary {
			continue
		}
		if subtreeSpan.Contains(r.Span) {
			return true
		}
	}
	return false
}
