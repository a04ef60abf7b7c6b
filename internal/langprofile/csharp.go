package langprofile

// CSharpProfile covers C#: conditional_expression is the grammar's ternary
// node name (unlike Java's ternary_expression).
type CSharpProfile struct {
	BaseProfile
}

func NewCSharpProfile() *CSharpProfile {
	return &CSharpProfile{BaseProfile: NewBaseProfile("csharp", []string{".cs"})}
}

func (p *CSharpProfile) IfStatementKinds() []string     { return []string{"if_statement"} }
func (p *CSharpProfile) TernaryKinds() []string          { return []string{"conditional_expression"} }
func (p *CSharpProfile) BinaryExpressionKinds() []string { return []string{"binary_expression"} }
func (p *CSharpProfile) CallExpressionKinds() []string   { return []string{"invocation_expression"} }
func (p *CSharpProfile) PrefixNotKinds() []string        { return []string{"prefix_unary_expression"} }
func (p *CSharpProfile) ImportKinds() []string           { return []string{"using_directive"} }
func (p *CSharpProfile) LocalDeclarationKinds() []string { return []string{"local_declaration_statement"} }
func (p *CSharpProfile) TopLevelConstantKinds() []string { return []string{"field_declaration"} }
func (p *CSharpProfile) ClassFieldKinds() []string       { return []string{"field_declaration", "property_declaration"} }
func (p *CSharpProfile) EnumConstantKinds() []string     { return []string{"enum_member_declaration"} }
func (p *CSharpProfile) SupportsTernary() bool            { return true }

// ImportsAreNamespaces is true: C#'s plain `using X;` form always imports a
// namespace (a specific type comes in via `using static X;` instead, or
// isn't imported at all since C# resolves unqualified types against every
// namespace already in scope).
func (p *CSharpProfile) ImportsAreNamespaces() bool { return true }
