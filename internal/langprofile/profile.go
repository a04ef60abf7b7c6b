// Package langprofile names, per source language, the concrete tree-sitter
// node kinds the rest of the engine reasons about: "if statement",
// "ternary/conditional expression", "binary expression", "call expression",
// "import directive", and the declaration shapes eligible for removal
// (top-level constant, class field, enum constant, local variable).
//
// Every other component (pattern matcher, scanners, reachability analyzer,
// rewriter) is written against this interface, never against a single
// grammar's node-kind strings directly: one profile per tree-sitter
// grammar instead of scattered per-language node-kind string literals.
package langprofile

// Profile describes one language's surface syntax in terms the engine needs.
type Profile interface {
	// Name is the canonical profile name, e.g. "java", "javascript".
	Name() string

	// Extensions lists the file extensions this profile claims, including
	// the leading dot.
	Extensions() []string

	// IfStatementKinds are the node kinds for an if/else construct.
	IfStatementKinds() []string

	// TernaryKinds are the node kinds for a ternary/conditional expression.
	TernaryKinds() []string

	// BinaryExpressionKinds are the node kinds for a binary expression node
	// (the operator itself is inspected separately via OperatorOf).
	BinaryExpressionKinds() []string

	// CallExpressionKinds are the node kinds for a call/method-invocation.
	CallExpressionKinds() []string

	// PrefixNotKinds are the node kinds for a prefix logical-not expression.
	PrefixNotKinds() []string

	// ImportKinds are the node kinds for an import/using/include directive.
	ImportKinds() []string

	// LocalDeclarationKinds are the node kinds for a local variable
	// declaration statement (the unit the definition scanner excises whole).
	LocalDeclarationKinds() []string

	// TopLevelConstantKinds are the node kinds for a file-scope constant
	// declaration.
	TopLevelConstantKinds() []string

	// ClassFieldKinds are the node kinds for a class/struct field
	// declaration.
	ClassFieldKinds() []string

	// EnumConstantKinds are the node kinds for an enum constant/value.
	EnumConstantKinds() []string

	// SupportsTernary reports whether this language has a ternary operator
	// at all (Go does not); the reachability analyzer skips ternary rules
	// entirely when false rather than silently no-op matching on an absent
	// node kind.
	SupportsTernary() bool

	// ImportsAreNamespaces reports whether a bare qualified-name import
	// directive (no alias, no brace group) brings a whole namespace into
	// scope rather than one specific symbol. C# is the only shipped
	// profile where this is true: `using System.Collections;` can't be
	// told apart, by text alone, from an import of one named type. The
	// import tracker still name-matches the directive's last segment and
	// marks the record as a namespace import; the orchestrator never removes
	// such a directive, rather than risk deleting one still providing an
	// unqualified type the file uses.
	ImportsAreNamespaces() bool
}

// BaseProfile implements the extension/name bookkeeping shared by every
// profile via embedding.
type BaseProfile struct {
	name string
	exts []string
}

func NewBaseProfile(name string, exts []string) BaseProfile {
	return BaseProfile{name: name, exts: exts}
}

func (b BaseProfile) Name() string { return b.name }

func (b BaseProfile) Extensions() []string { return b.exts }

func (b BaseProfile) ImportsAreNamespaces() bool { return false }

// Registry resolves a Profile by file extension or by name.
type Registry struct {
	byExt  map[string]Profile
	byName map[string]Profile
}

func NewRegistry(profiles ...Profile) *Registry {
	r := &Registry{
		byExt:  make(map[string]Profile),
		byName: make(map[string]Profile),
	}
	for _, p := range profiles {
		r.byName[p.Name()] = p
		for _, ext := range p.Extensions() {
			r.byExt[ext] = p
		}
	}
	return r
}

func (r *Registry) ForExtension(ext string) (Profile, bool) {
	p, ok := r.byExt[ext]
	return p, ok
}

func (r *Registry) ForName(name string) (Profile, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Default returns the registry wired with every shipped profile.
func Default() *Registry {
	return NewRegistry(
		NewJavaProfile(),
		NewJavaScriptProfile(),
		NewTypeScriptProfile(),
		NewCSharpProfile(),
		NewPHPProfile(),
		NewGoProfile(),
		NewCppProfile(),
		NewRustProfile(),
	)
}
