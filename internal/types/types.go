// Package types holds the data model shared by every stage of the flagprune
// pipeline: the parsed-unit wrapper, flag references and bindings, definition
// locations, import records, edits, and the final transformation result.
package types

import (
	"time"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// FlagDefinition is one entry of a loaded FlagConfig. Immutable after load.
type FlagDefinition struct {
	Name             string
	Value            bool
	RemoveDefinition bool
	Aliases          map[string]struct{}
	Description      string
	Ticket           string
	Owner            string
	Expire           *time.Time
}

// Matches reports whether name is this definition's canonical name or one of
// its aliases.
func (d *FlagDefinition) Matches(name string) bool {
	if d.Name == name {
		return true
	}
	_, ok := d.Aliases[name]
	return ok
}

// IsExpired reports whether Expire is set and in the past relative to now.
func (d *FlagDefinition) IsExpired(now time.Time) bool {
	return d.Expire != nil && now.After(*d.Expire)
}

// Settings holds the FlagConfig.settings booleans.
type Settings struct {
	PreserveComments  bool
	RemoveEmptyBlocks bool
	FormatOutput      bool
}

// FlagConfig is the immutable, loaded configuration for one transform run.
type FlagConfig struct {
	Version         string
	PatternMethods  []string
	PatternClasses  []string
	Flags           map[string]*FlagDefinition
	Settings        Settings
}

// ParsedUnit is a syntax tree plus its originating source text. Every node
// reachable from Tree.RootNode() carries byte offsets via StartByte/EndByte;
// ParsedUnit itself owns nothing beyond the tree and the bytes it was parsed
// from, both of which are scoped to one transform() call.
type ParsedUnit struct {
	FilePath string
	Source   []byte
	Tree     *tree_sitter.Tree
	Language string // language profile name, e.g. "java", "javascript"
}

func (u *ParsedUnit) Close() {
	if u.Tree != nil {
		u.Tree.Close()
	}
}

// ControlFlowKind distinguishes the two constructs the reachability analyzer
// can resolve a FlagReference's enclosing construct to.
type ControlFlowKind int

const (
	ControlFlowNone ControlFlowKind = iota
	ControlFlowIf
	ControlFlowTernary
)

// ControlFlowNode is the enclosing if/ternary construct of a FlagReference,
// carrying enough of its shape for the reachability analyzer and rewriter to
// act without re-walking the tree.
type ControlFlowNode struct {
	Kind       ControlFlowKind
	Node       *tree_sitter.Node // the if_statement / conditional_expression node
	Condition  *tree_sitter.Node // condition expression node
	Then       *tree_sitter.Node // then-branch (block or single statement/expr)
	Else       *tree_sitter.Node // else-branch, nil if absent
	Span       Span
}

// HasElse reports whether this construct has an else branch.
func (c *ControlFlowNode) HasElse() bool { return c.Else != nil }

// FlagReference is a candidate flag-query use site, emitted by the
// flag-usage scanner.
type FlagReference struct {
	FlagName          string
	ResolvedValue     bool
	Node              *tree_sitter.Node // the expression node substituted
	Span              Span
	ParentControlFlow *ControlFlowNode // nil if not inside any if/ternary condition
	IsNegated         bool
	VariableName      string // set when this reference is a bound-variable identifier use
}

// EffectiveValue folds negation into the resolved value.
func (r *FlagReference) EffectiveValue() bool {
	return r.IsNegated != r.ResolvedValue // XOR
}

// FlagVariableBinding records a local variable whose initializer was itself a
// matched flag-query call; populated by the usage scanner, consumed by both
// the usage scanner (to resolve later identifier reads) and the definition
// scanner (to remove the declaration).
type FlagVariableBinding struct {
	VariableName    string
	FlagName        string
	ResolvedValue   bool
	DeclarationNode *tree_sitter.Node
	DeclarationSpan Span
}

// DefinitionKind enumerates the declaration shapes the definition scanner
// can locate and the rewriter can excise.
type DefinitionKind int

const (
	DefinitionConstant DefinitionKind = iota
	DefinitionClassField
	DefinitionEnumValue
	DefinitionVariable
)

func (k DefinitionKind) String() string {
	switch k {
	case DefinitionConstant:
		return "constant"
	case DefinitionClassField:
		return "class_field"
	case DefinitionEnumValue:
		return "enum_value"
	case DefinitionVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// DefinitionLocation is a flag-definition declaration eligible for removal.
type DefinitionLocation struct {
	FlagName string
	Node     *tree_sitter.Node
	Span     Span
	Kind     DefinitionKind
}

// ImportUsageSite is one identifier-resolved-to-imported-symbol reference.
type ImportUsageSite struct {
	Span       Span
	SymbolName string
}

// ImportRecord is one import directive plus every usage site the import
// tracker recorded for the symbols it brings into scope.
type ImportRecord struct {
	DirectiveNode *tree_sitter.Node
	Span          Span
	URI           string
	Prefix        string
	ShownNames    []string
	HiddenNames   []string
	UsageSites    []ImportUsageSite
	IsFlagService bool // classified by the URI/class-name heuristic
	// IsNamespace is true for a wildcard import or a bare qualified-name
	// import in a language where that form brings a whole namespace into
	// scope (see langprofile.Profile.ImportsAreNamespaces). Its members
	// can't be name-matched against usage sites, so the orchestrator never
	// removes one of these on the strength of zero recorded usages.
	IsNamespace bool
}

// Edit is one non-overlapping byte-range replacement, the unit the edit
// buffer accumulates and applies.
type Edit struct {
	Offset      int
	Length      int
	Replacement string
}

func (e Edit) End() int { return e.Offset + e.Length }

// Overlaps reports whether two edits share any byte.
func (e Edit) Overlaps(other Edit) bool {
	return e.Offset < other.End() && other.Offset < e.End()
}

// TransformationResult is what transform(file, config) returns.
type TransformationResult struct {
	OriginalSource    string
	TransformedSource string
	RemovedFlagNames  map[string]struct{}
	RemovedImportURIs map[string]struct{}
	LinesRemoved      int
	Warnings          []string
	HasChanges        bool
}

// NewTransformationResult seeds an empty, unchanged result; the orchestrator
// starts here and mutates it stage by stage.
func NewTransformationResult(source string) *TransformationResult {
	return &TransformationResult{
		OriginalSource:    source,
		TransformedSource: source,
		RemovedFlagNames:  make(map[string]struct{}),
		RemovedImportURIs: make(map[string]struct{}),
	}
}
