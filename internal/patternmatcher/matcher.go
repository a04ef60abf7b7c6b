// Package patternmatcher decides whether a call-expression node matches a
// configured flag-query pattern and, if so, extracts the node carrying the
// flag key.
//
// Patterns form a closed set, parsed once from config strings into a tagged
// variant instead of re-parsing (or string-comparing) per call-expression
// node visited.
package patternmatcher

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/types"
)

// Kind is the closed set of pattern shapes a configuration string can take.
type Kind int

const (
	KindClassMethod Kind = iota
	KindAnyReceiverMethod
	KindBareMethod
	KindNestedCall
)

// Pattern is one parsed configuration pattern string.
type Pattern struct {
	Kind        Kind
	Class       string // KindClassMethod only
	Method      string // outer/only method name
	InnerMethod string // KindNestedCall only
}

// DefaultMethodNames is used when no patterns.methods are configured.
var DefaultMethodNames = []string{"isEnabled", "check", "isFeatureEnabled"}

// ParsePatterns parses the config's ordered pattern strings into Patterns,
// once, at config-load time. Falls back to DefaultMethodNames (as bare
// patterns) when methodPatterns is empty.
func ParsePatterns(methodPatterns []string) []Pattern {
	if len(methodPatterns) == 0 {
		patterns := make([]Pattern, len(DefaultMethodNames))
		for i, name := range DefaultMethodNames {
			patterns[i] = Pattern{Kind: KindBareMethod, Method: name}
		}
		return patterns
	}

	patterns := make([]Pattern, 0, len(methodPatterns))
	for _, raw := range methodPatterns {
		patterns = append(patterns, parseOne(raw))
	}
	return patterns
}

func parseOne(raw string) Pattern {
	if idx := strings.Index(raw, "("); idx >= 0 {
		outer := strings.TrimSpace(raw[:idx])
		inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw[idx+1:]), ")"))
		class, method := splitReceiverMethod(outer)
		return Pattern{Kind: KindNestedCall, Class: class, Method: method, InnerMethod: inner}
	}
	class, method := splitReceiverMethod(raw)
	switch {
	case class == "" && !strings.Contains(raw, "."):
		return Pattern{Kind: KindBareMethod, Method: method}
	case class == "*":
		return Pattern{Kind: KindAnyReceiverMethod, Method: method}
	default:
		return Pattern{Kind: KindClassMethod, Class: class, Method: method}
	}
}

func splitReceiverMethod(s string) (class, method string) {
	idx := strings.LastIndex(s, ".")
	if idx < 0 {
		return "", s
	}
	return s[:idx], s[idx+1:]
}

// Match is the outcome of matching a call node against the pattern list.
type Match struct {
	FlagKeyNode *tree_sitter.Node // node whose first argument carries the flag key
}

// MatchCall decides whether node (a call-expression node per profile) matches
// any configured pattern, trying each in order and returning on first match.
func MatchCall(node *tree_sitter.Node, profile langprofile.Profile, source []byte, patterns []Pattern) (Match, bool) {
	if !isCallKind(node, profile) {
		return Match{}, false
	}

	callInfo, ok := extractCallInfo(node, source)
	if !ok {
		return Match{}, false
	}

	for _, p := range patterns {
		switch p.Kind {
		case KindClassMethod:
			if callInfo.method == p.Method && callInfo.receiver == p.Class {
				return Match{FlagKeyNode: node}, true
			}
		case KindAnyReceiverMethod, KindBareMethod:
			if callInfo.method == p.Method {
				return Match{FlagKeyNode: node}, true
			}
		case KindNestedCall:
			if callInfo.method != p.Method || callInfo.receiver != p.Class {
				continue
			}
			firstArg := firstArgumentExpr(node)
			if firstArg == nil || !isCallKind(firstArg, profile) {
				continue
			}
			innerInfo, ok := extractCallInfo(firstArg, source)
			if ok && innerInfo.method == p.InnerMethod {
				return Match{FlagKeyNode: firstArg}, true
			}
		}
	}
	return Match{}, false
}

// ExtractFlagKey pulls the flag key from the first argument of the matched
// node: simple string literals and bare identifiers (returned by spelling,
// no resolution).
func ExtractFlagKey(flagKeyNode *tree_sitter.Node, source []byte) (string, bool) {
	firstArg := firstArgumentExpr(flagKeyNode)
	if firstArg == nil {
		return "", false
	}
	text := types.NewSpan(int(firstArg.StartByte()), int(firstArg.EndByte()-firstArg.StartByte())).Text(source)
	kind := firstArg.Kind()

	switch {
	case strings.Contains(kind, "string"):
		return unquote(text), true
	case kind == "identifier" || kind == "name":
		return text, true
	default:
		return "", false
	}
}

type callInfo struct {
	receiver string
	method   string
}

func isCallKind(node *tree_sitter.Node, profile langprofile.Profile) bool {
	if node == nil {
		return false
	}
	for _, k := range profile.CallExpressionKinds() {
		if node.Kind() == k {
			return true
		}
	}
	return false
}

// extractCallInfo splits the callee text (everything before the arguments
// list) on its last '.'. This stays grammar-agnostic by design: the field
// name used for "receiver" vs. "callee" varies across the eight shipped
// grammars while the source text before the argument list does not.
func extractCallInfo(node *tree_sitter.Node, source []byte) (callInfo, bool) {
	argsNode := node.ChildByFieldName("arguments")
	if argsNode == nil {
		return callInfo{}, false
	}
	calleeEnd := argsNode.StartByte()
	if calleeEnd <= node.StartByte() {
		return callInfo{}, false
	}
	calleeText := strings.TrimSpace(string(source[node.StartByte():calleeEnd]))
	calleeText = strings.TrimSuffix(calleeText, "(")
	calleeText = strings.TrimSpace(calleeText)
	class, method := splitReceiverMethod(calleeText)
	return callInfo{receiver: class, method: method}, method != ""
}

// firstArgumentExpr returns the first argument expression of a call node,
// unwrapping grammars (C#, PHP) that wrap each argument in its own node.
func firstArgumentExpr(node *tree_sitter.Node) *tree_sitter.Node {
	argsNode := node.ChildByFieldName("arguments")
	if argsNode == nil || argsNode.NamedChildCount() == 0 {
		return nil
	}
	first := argsNode.NamedChild(0)
	if first == nil {
		return nil
	}
	if first.Kind() == "argument" {
		if expr := first.ChildByFieldName("expression"); expr != nil {
			return expr
		}
		if first.NamedChildCount() > 0 {
			return first.NamedChild(0)
		}
	}
	return first
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
