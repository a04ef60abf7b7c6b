package scanner

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/types"
)

// DefinitionScanner enumerates top-level constants, class fields, and enum
// constants whose identifier matches a flag eligible for removal, and
// converts FlagVariableBindings (from the usage scanner) into
// DefinitionLocations too. It is re-run against a fresh parse of
// branch-eliminated source: offsets from the original parse are stale by
// then, which is exactly why it takes its own root node rather than reusing
// the UsageScanner's.
type DefinitionScanner struct {
	Profile langprofile.Profile
	Source  []byte
	Config  *types.FlagConfig
}

func NewDefinitionScanner(profile langprofile.Profile, source []byte, config *types.FlagConfig) *DefinitionScanner {
	return &DefinitionScanner{Profile: profile, Source: source, Config: config}
}

// Scan returns every DefinitionLocation eligible for removal: declarations
// discovered by walking root, plus one entry per binding in bindings whose
// flag has RemoveDefinition set.
func (s *DefinitionScanner) Scan(root *tree_sitter.Node, bindings map[string]types.FlagVariableBinding) []types.DefinitionLocation {
	var locs []types.DefinitionLocation
	seen := make(map[types.Span]bool)

	s.walk(root, &locs, seen)

	for _, binding := range bindings {
		def, ok := lookupFlag(s.Config, binding.FlagName)
		if !ok || !def.RemoveDefinition {
			continue
		}
		if seen[binding.DeclarationSpan] {
			continue
		}
		seen[binding.DeclarationSpan] = true
		locs = append(locs, types.DefinitionLocation{
			FlagName: binding.FlagName,
			Node:     binding.DeclarationNode,
			Span:     binding.DeclarationSpan,
			Kind:     types.DefinitionVariable,
		})
	}
	return locs
}

func (s *DefinitionScanner) walk(node *tree_sitter.Node, locs *[]types.DefinitionLocation, seen map[types.Span]bool) {
	if node == nil {
		return
	}
	kind := node.Kind()

	if isKindIn(kind, s.Profile.EnumConstantKinds()) {
		s.tryEmit(node, types.DefinitionEnumValue, locs, seen)
	} else if isKindIn(kind, s.Profile.ClassFieldKinds()) && isWithinTypeBody(node) {
		s.tryEmit(node, types.DefinitionClassField, locs, seen)
	} else if isKindIn(kind, s.Profile.TopLevelConstantKinds()) && !isWithinTypeBody(node) {
		s.tryEmit(node, types.DefinitionConstant, locs, seen)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		s.walk(node.Child(i), locs, seen)
	}
}

func (s *DefinitionScanner) tryEmit(node *tree_sitter.Node, kind types.DefinitionKind, locs *[]types.DefinitionLocation, seen map[types.Span]bool) {
	span := spanOf(node)
	if span.Offset == 0 && span.Length == 0 {
		return // guards against zero/negative offsets
	}
	name, ok := declaredFlagName(node, s.Source, s.Config)
	if !ok {
		return
	}
	def, _ := lookupFlag(s.Config, name)
	if !def.RemoveDefinition {
		return
	}
	if seen[span] {
		return
	}
	seen[span] = true
	*locs = append(*locs, types.DefinitionLocation{
		FlagName: def.Name,
		Node:     node,
		Span:     span,
		Kind:     kind,
	})
}

// declaredFlagName scans every identifier-ish descendant of node, returning
// the first one that names a configured, remove-eligible flag. A false
// positive against a type name that happens to share a flag's name is a
// known, accepted imprecision at this scope: no type-resolution pass backs
// this engine.
func declaredFlagName(node *tree_sitter.Node, source []byte, config *types.FlagConfig) (string, bool) {
	var found string
	var ok bool
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if ok || n == nil {
			return
		}
		if n.Kind() == "identifier" || n.Kind() == "name" || n.Kind() == "property_identifier" {
			text := spanOf(n).Text(source)
			if _, matched := resolveFlag(config, text); matched {
				found, ok = text, true
				return
			}
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
			if ok {
				return
			}
		}
	}
	walk(node)
	return found, ok
}

func lookupFlag(config *types.FlagConfig, key string) (*types.FlagDefinition, bool) {
	return resolveFlag(config, key)
}

// isWithinTypeBody reports whether node's immediate parent looks like a
// class/struct/interface body, disambiguating a field_declaration-shaped
// node that several grammars use for both class fields and (via the parent
// check) top-level constants.
func isWithinTypeBody(node *tree_sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "class_body", "interface_body", "struct_body", "enum_body", "declaration_list":
		return true
	default:
		return false
	}
}
