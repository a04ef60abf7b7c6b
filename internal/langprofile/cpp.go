package langprofile

// CppProfile covers C/C++. #include directives stand in for "import"; a
// bare "declaration" node is both the local-variable and top-level-constant
// shape in this grammar. The definition scanner checks only the node's
// immediate parent: a declaration directly inside a type body is a field,
// and any other declaration, including one inside a function body, is a
// top-level-constant candidate.
type CppProfile struct {
	BaseProfile
}

func NewCppProfile() *CppProfile {
	return &CppProfile{BaseProfile: NewBaseProfile("cpp", []string{".cpp", ".cc", ".cxx", ".h", ".hpp"})}
}

func (p *CppProfile) IfStatementKinds() []string     { return []string{"if_statement"} }
func (p *CppProfile) TernaryKinds() []string          { return []string{"conditional_expression"} }
func (p *CppProfile) BinaryExpressionKinds() []string { return []string{"binary_expression"} }
func (p *CppProfile) CallExpressionKinds() []string   { return []string{"call_expression"} }
func (p *CppProfile) PrefixNotKinds() []string        { return []string{"unary_expression"} }
func (p *CppProfile) ImportKinds() []string           { return []string{"preproc_include"} }
func (p *CppProfile) LocalDeclarationKinds() []string  { return []string{"declaration"} }
func (p *CppProfile) TopLevelConstantKinds() []string  { return []string{"declaration"} }
func (p *CppProfile) ClassFieldKinds() []string       { return []string{"field_declaration"} }
func (p *CppProfile) EnumConstantKinds() []string     { return []string{"enumerator"} }
func (p *CppProfile) SupportsTernary() bool            { return true }
