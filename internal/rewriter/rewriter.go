// Package rewriter converts reachability.Decisions (plus the free flag-call
// references the reachability analyzer never sees) into a non-overlapping
// batch of types.Edit, performing block promotion with re-indentation where
// a Decision keeps one branch and replaces the whole construct.
package rewriter

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/reachability"
	"github.com/standardbeagle/flagprune/internal/types"
)

// Plan builds the Edit batch for one file: one edit per non-KeepBoth
// Decision, plus one edit per free flag reference (a reference with no
// enclosing control flow, substituted with its effective_value's textual
// form).
func Plan(decisions []reachability.Decision, freeRefs []*types.FlagReference, profile langprofile.Profile, source []byte) []types.Edit {
	var edits []types.Edit

	for _, d := range decisions {
		if edit, ok := planDecision(d, source); ok {
			edits = append(edits, edit)
		}
	}
	for _, ref := range freeRefs {
		// effective_value already folds is_negated in; the replaced span
		// must cover any prefix-! wrapper too, or a negated free call would
		// leave a stray "!" in front of its own substituted literal.
		target := spanOf(topmostNotWrapper(ref.Node, profile))
		edits = append(edits, types.Edit{
			Offset:      int(target.Offset),
			Length:      int(target.Length),
			Replacement: boolText(ref.EffectiveValue()),
		})
	}
	return edits
}

func topmostNotWrapper(node *tree_sitter.Node, profile langprofile.Profile) *tree_sitter.Node {
	cur := node
	for {
		parent := cur.Parent()
		if parent == nil {
			return cur
		}
		isNot := false
		for _, k := range profile.PrefixNotKinds() {
			if parent.Kind() == k {
				isNot = true
				break
			}
		}
		if !isNot {
			return cur
		}
		cur = parent
	}
}

func planDecision(d reachability.Decision, source []byte) (types.Edit, bool) {
	switch d.Kind {
	case reachability.KeepThenRemoveElse:
		return promoteOrRemove(d.ControlFlow.Span, d.ControlFlow.Node, d.ControlFlow.Then, source), true
	case reachability.RemoveThenKeepElse:
		if d.ControlFlow.Else == nil {
			return removeAll(d.ControlFlow.Span), true
		}
		return promoteOrRemove(d.ControlFlow.Span, d.ControlFlow.Node, d.ControlFlow.Else, source), true
	case reachability.RemoveAll:
		return removeAll(d.ControlFlow.Span), true
	case reachability.SimplifyCondition:
		return simplifyCondition(d, source), true
	case reachability.KeepBoth:
		return types.Edit{}, false
	default:
		return types.Edit{}, false
	}
}

func removeAll(span types.Span) types.Edit {
	return types.Edit{Offset: int(span.Offset), Length: int(span.Length), Replacement: ""}
}

func promoteOrRemove(constructSpan types.Span, construct, branch *tree_sitter.Node, source []byte) types.Edit {
	replacement, ok := promoteBranch(construct, branch, source)
	if !ok {
		// An empty kept block degrades to a full removal of the construct.
		replacement = ""
	}
	return types.Edit{Offset: int(constructSpan.Offset), Length: int(constructSpan.Length), Replacement: replacement}
}

func simplifyCondition(d reachability.Decision, source []byte) types.Edit {
	binarySpan := spanOf(d.Binary)
	replacement := spanOf(d.SimplifiedCondition).Text(source)
	return types.Edit{Offset: int(binarySpan.Offset), Length: int(binarySpan.Length), Replacement: replacement}
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// promoteBranch locates the kept branch's inner content, computes the parent
// construct's and the branch's indentation, left-aligns every non-first
// non-empty line from one to the other, and returns the result as the single
// replacement string for the whole construct's span. Returns ok=false when
// the kept branch has no content to promote.
func promoteBranch(construct, branch *tree_sitter.Node, source []byte) (string, bool) {
	contentSpan, ok := branchContentSpan(branch, source)
	if !ok {
		return "", false
	}
	content := contentSpan.Text(source)
	if strings.TrimSpace(content) == "" {
		return "", false
	}

	parentIndent := lineIndent(source, int(construct.StartByte()))
	// The block's indentation is read from its *original* position in
	// source, not from content's own first line: content's first line has
	// already had its leading whitespace excluded by contentSpan starting
	// exactly at the first statement's first byte.
	blockIndent := lineIndent(source, int(contentSpan.Offset))
	return reindentLines(content, blockIndent, parentIndent), true
}

// branchContentSpan returns the span of branch's meaningful contents: if
// branch is a brace-delimited block (detected textually, since its first
// non-whitespace byte is '{', rather than via a per-grammar block-kind
// list, since every shipped grammar uses '{'/'}' for this), the span runs
// from its first named child to its last; otherwise branch is a single
// statement and its own span is used directly.
func branchContentSpan(branch *tree_sitter.Node, source []byte) (types.Span, bool) {
	full := spanOf(branch)
	text := full.Text(source)
	if !strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "{") {
		return full, true
	}

	count := branch.NamedChildCount()
	if count == 0 {
		return types.Span{}, false
	}
	first := branch.NamedChild(0)
	last := branch.NamedChild(count - 1)
	start, end := first.StartByte(), last.EndByte()
	if end <= start {
		return types.Span{}, false
	}
	return types.NewSpan(int(start), int(end-start)), true
}

func spanOf(node *tree_sitter.Node) types.Span {
	return types.NewSpan(int(node.StartByte()), int(node.EndByte()-node.StartByte()))
}

// lineIndent returns the leading run of spaces/tabs on offset's line, up to
// offset itself.
func lineIndent(source []byte, offset int) string {
	lineStart := offset
	for lineStart > 0 && source[lineStart-1] != '\n' {
		lineStart--
	}
	i := lineStart
	for i < offset && (source[i] == ' ' || source[i] == '\t') {
		i++
	}
	return string(source[lineStart:i])
}

// reindentLines strips blockIndent and prepends parentIndent on every line
// after the first. The first line is already correctly positioned, since
// the replacement text starts exactly where the construct's own first byte
// did, right after whatever indentation already precedes it in the
// untouched source.
func reindentLines(content, blockIndent, parentIndent string) string {
	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = parentIndent + strings.TrimPrefix(lines[i], blockIndent)
	}
	return strings.Join(lines, "\n")
}
