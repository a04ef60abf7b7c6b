// Package scanner implements the flag-usage scanner and the definition
// scanner: one recursive traversal that emits FlagReferences and
// FlagVariableBindings, and a second pass (run after branch elimination's
// mandatory re-parse) that locates removable flag-definition declarations.
package scanner

import (
	"fmt"

	"github.com/hbollon/go-edlib"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/patternmatcher"
	"github.com/standardbeagle/flagprune/internal/types"
)

// nearMissThreshold is the Jaro-Winkler similarity above which an
// unresolved flag key is reported as a likely typo rather than silently
// ignored.
const nearMissThreshold = 0.80

// UsageScanner walks a ParsedUnit once, tracking enclosing if/ternary
// condition frames on a parent-type stack kept in this traversal's own call
// stack rather than via repeated Parent() calls, so the tree is visited
// exactly once.
type UsageScanner struct {
	Profile  langprofile.Profile
	Source   []byte
	Patterns []patternmatcher.Pattern
	Config   *types.FlagConfig

	References      []types.FlagReference
	Bindings        map[string]types.FlagVariableBinding
	Warnings        []string
	suppressedSpans []types.Span
}

func NewUsageScanner(profile langprofile.Profile, source []byte, patterns []patternmatcher.Pattern, config *types.FlagConfig) *UsageScanner {
	return &UsageScanner{
		Profile:  profile,
		Source:   source,
		Patterns: patterns,
		Config:   config,
		Bindings: make(map[string]types.FlagVariableBinding),
	}
}

// Scan walks root and populates Scanner.References and Scanner.Bindings.
func (s *UsageScanner) Scan(root *tree_sitter.Node) {
	s.walk(root, nil)
}

func (s *UsageScanner) walk(node *tree_sitter.Node, cfStack []*types.ControlFlowNode) {
	if node == nil {
		return
	}
	kind := node.Kind()

	if isKindIn(kind, s.Profile.LocalDeclarationKinds()) {
		if binding, ok := s.tryBinding(node); ok {
			s.Bindings[binding.VariableName] = binding
			s.suppressedSpans = append(s.suppressedSpans, binding.DeclarationSpan)
			return // the declaration's fate is decided by the definition scanner, not here
		}
	}

	var cf *types.ControlFlowNode
	switch {
	case isKindIn(kind, s.Profile.IfStatementKinds()):
		cf = extractControlFlow(node, types.ControlFlowIf)
	case s.Profile.SupportsTernary() && isKindIn(kind, s.Profile.TernaryKinds()):
		cf = extractControlFlow(node, types.ControlFlowTernary)
	}
	if cf != nil {
		// Force a fresh backing array so sibling recursive calls never see
		// each other's pushes (append-aliasing across branches).
		cfStack = append(cfStack[:len(cfStack):len(cfStack)], cf)
	}

	if isCallKind(node, s.Profile) && !s.isSuppressed(spanOf(node)) {
		s.tryEmitCallReference(node, cfStack)
	}

	if kind == "identifier" || kind == "name" {
		s.tryEmitBoundVariableReference(node, cfStack)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		s.walk(node.Child(i), cfStack)
	}
}

func (s *UsageScanner) tryEmitCallReference(node *tree_sitter.Node, cfStack []*types.ControlFlowNode) {
	match, ok := patternmatcher.MatchCall(node, s.Profile, s.Source, s.Patterns)
	if !ok {
		return
	}
	key, ok := patternmatcher.ExtractFlagKey(match.FlagKeyNode, s.Source)
	if !ok {
		return
	}
	def, ok := resolveFlag(s.Config, key)
	if !ok {
		if suggestion, found := nearMissFlagName(key, s.Config); found {
			s.Warnings = append(s.Warnings,
				fmt.Sprintf("flag query %q matched no configured flag; did you mean %q?", key, suggestion))
		}
		return
	}
	s.References = append(s.References, types.FlagReference{
		FlagName:          def.Name,
		ResolvedValue:     def.Value,
		Node:              node,
		Span:              spanOf(node),
		ParentControlFlow: nearestConditionFrame(cfStack, spanOf(node)),
		IsNegated:         detectNegation(node, s.Profile, s.Source),
	})
}

func (s *UsageScanner) tryEmitBoundVariableReference(node *tree_sitter.Node, cfStack []*types.ControlFlowNode) {
	name := spanOf(node).Text(s.Source)
	binding, ok := s.Bindings[name]
	if !ok {
		return
	}
	parentCF := nearestConditionFrame(cfStack, spanOf(node))
	if parentCF == nil {
		return // only identifier uses inside a condition are emitted
	}
	s.References = append(s.References, types.FlagReference{
		FlagName:          binding.FlagName,
		ResolvedValue:     binding.ResolvedValue,
		Node:              node,
		Span:              spanOf(node),
		ParentControlFlow: parentCF,
		IsNegated:         detectNegation(node, s.Profile, s.Source),
		VariableName:      binding.VariableName,
	})
}

// tryBinding recognizes a local declaration whose initializer is a matched
// flag call. Variable-name and initializer-call extraction is
// grammar-agnostic: the first identifier encountered before the first
// call-shaped node in the declaration's subtree is taken as the variable
// name, and that call node is matched against the configured patterns.
func (s *UsageScanner) tryBinding(node *tree_sitter.Node) (types.FlagVariableBinding, bool) {
	callNode := firstCallNode(node, s.Profile)
	if callNode == nil {
		return types.FlagVariableBinding{}, false
	}
	varName, ok := s.firstIdentifierBeforeCall(node, callNode)
	if !ok {
		return types.FlagVariableBinding{}, false
	}
	for p := callNode.Parent(); p != nil && !sameNode(p, node); p = p.Parent() {
		k := p.Kind()
		if isKindIn(k, s.Profile.TernaryKinds()) || isKindIn(k, s.Profile.BinaryExpressionKinds()) || isKindIn(k, s.Profile.PrefixNotKinds()) {
			return types.FlagVariableBinding{}, false
		}
	}
	match, ok := patternmatcher.MatchCall(callNode, s.Profile, s.Source, s.Patterns)
	if !ok {
		return types.FlagVariableBinding{}, false
	}
	key, ok := patternmatcher.ExtractFlagKey(match.FlagKeyNode, s.Source)
	if !ok {
		return types.FlagVariableBinding{}, false
	}
	def, ok := resolveFlag(s.Config, key)
	if !ok {
		return types.FlagVariableBinding{}, false
	}
	return types.FlagVariableBinding{
		VariableName:    varName,
		FlagName:        def.Name,
		ResolvedValue:   def.Value,
		DeclarationNode: node,
		DeclarationSpan: spanOf(node),
	}, true
}

func (s *UsageScanner) isSuppressed(span types.Span) bool {
	for _, suppressed := range s.suppressedSpans {
		if suppressed.Contains(span) {
			return true
		}
	}
	return false
}

func resolveFlag(config *types.FlagConfig, key string) (*types.FlagDefinition, bool) {
	if config == nil {
		return nil, false
	}
	for _, def := range config.Flags {
		if def.Matches(key) {
			return def, true
		}
	}
	return nil, false
}

// nearMissFlagName checks key against every configured flag name and alias
// using Jaro-Winkler similarity, returning the closest candidate at or above
// nearMissThreshold. It never causes a flag to be treated as matched, only
// used to word a warning, since silently guessing at resolution would risk
// removing the wrong flag's guard.
func nearMissFlagName(key string, config *types.FlagConfig) (string, bool) {
	if config == nil || key == "" {
		return "", false
	}
	best := ""
	bestScore := float32(0)
	consider := func(candidate string) {
		if candidate == "" {
			return
		}
		score, err := edlib.StringsSimilarity(key, candidate, edlib.JaroWinkler)
		if err != nil {
			return
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	for name, def := range config.Flags {
		consider(name)
		for alias := range def.Aliases {
			consider(alias)
		}
	}
	if best == "" || bestScore < nearMissThreshold {
		return "", false
	}
	return best, true
}
