package langprofile

// PHPProfile covers PHP. PHP has no dedicated local-variable-declaration
// statement node (assignment is just an expression_statement wrapping an
// assignment_expression); LocalDeclarationKinds names that wrapper so the
// definition scanner still has a whole-statement node to excise.
type PHPProfile struct {
	BaseProfile
}

func NewPHPProfile() *PHPProfile {
	return &PHPProfile{BaseProfile: NewBaseProfile("php", []string{".php"})}
}

func (p *PHPProfile) IfStatementKinds() []string     { return []string{"if_statement"} }
func (p *PHPProfile) TernaryKinds() []string          { return []string{"conditional_expression"} }
func (p *PHPProfile) BinaryExpressionKinds() []string { return []string{"binary_expression"} }
func (p *PHPProfile) CallExpressionKinds() []string {
	return []string{"function_call_expression", "member_call_expression"}
}
func (p *PHPProfile) PrefixNotKinds() []string        { return []string{"unary_op_expression"} }
func (p *PHPProfile) ImportKinds() []string           { return []string{"namespace_use_declaration"} }
func (p *PHPProfile) LocalDeclarationKinds() []string  { return []string{"expression_statement"} }
func (p *PHPProfile) TopLevelConstantKinds() []string  { return []string{"const_declaration"} }
func (p *PHPProfile) ClassFieldKinds() []string {
	return []string{"property_declaration", "const_declaration"}
}
func (p *PHPProfile) EnumConstantKinds() []string { return []string{"enum_case"} }
func (p *PHPProfile) SupportsTernary() bool        { return true }
