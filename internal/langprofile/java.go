package langprofile

// JavaProfile is the primary, most fully exercised profile: the canonical
// worked examples (FeatureFlagService.isEnabled, final locals) are
// Java-shaped.
type JavaProfile struct {
	BaseProfile
}

func NewJavaProfile() *JavaProfile {
	return &JavaProfile{BaseProfile: NewBaseProfile("java", []string{".java"})}
}

func (p *JavaProfile) IfStatementKinds() []string      { return []string{"if_statement"} }
func (p *JavaProfile) TernaryKinds() []string           { return []string{"ternary_expression"} }
func (p *JavaProfile) BinaryExpressionKinds() []string  { return []string{"binary_expression"} }
func (p *JavaProfile) CallExpressionKinds() []string    { return []string{"method_invocation"} }
func (p *JavaProfile) PrefixNotKinds() []string         { return []string{"unary_expression"} }
func (p *JavaProfile) ImportKinds() []string            { return []string{"import_declaration"} }
func (p *JavaProfile) LocalDeclarationKinds() []string  { return []string{"local_variable_declaration"} }
func (p *JavaProfile) TopLevelConstantKinds() []string  { return []string{"field_declaration"} }
func (p *JavaProfile) ClassFieldKinds() []string        { return []string{"field_declaration"} }
func (p *JavaProfile) EnumConstantKinds() []string      { return []string{"enum_constant"} }
func (p *JavaProfile) SupportsTernary() bool             { return true }
