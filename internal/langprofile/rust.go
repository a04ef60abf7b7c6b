package langprofile

// RustProfile covers Rust. Rust's if is itself an expression with no
// separate ternary form, so TernaryKinds is empty and SupportsTernary is
// false; "if_expression" covers both statement and expression position.
type RustProfile struct {
	BaseProfile
}

func NewRustProfile() *RustProfile {
	return &RustProfile{BaseProfile: NewBaseProfile("rust", []string{".rs"})}
}

func (p *RustProfile) IfStatementKinds() []string     { return []string{"if_expression"} }
func (p *RustProfile) TernaryKinds() []string          { return nil }
func (p *RustProfile) BinaryExpressionKinds() []string { return []string{"binary_expression"} }
func (p *RustProfile) CallExpressionKinds() []string   { return []string{"call_expression"} }
func (p *RustProfile) PrefixNotKinds() []string        { return []string{"unary_expression"} }
func (p *RustProfile) ImportKinds() []string           { return []string{"use_declaration"} }
func (p *RustProfile) LocalDeclarationKinds() []string  { return []string{"let_declaration"} }
func (p *RustProfile) TopLevelConstantKinds() []string  { return []string{"const_item"} }
func (p *RustProfile) ClassFieldKinds() []string       { return []string{"field_declaration"} }
func (p *RustProfile) EnumConstantKinds() []string     { return []string{"enum_variant"} }
func (p *RustProfile) SupportsTernary() bool            { return false }
