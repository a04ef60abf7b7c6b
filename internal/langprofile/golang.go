package langprofile

// GoProfile covers Go. Go has neither a ternary operator nor a true enum
// constant node (iota const blocks fill that role structurally, but they are
// indistinguishable from any other const_declaration at the node-kind level).
// TernaryKinds and EnumConstantKinds are intentionally empty, and
// SupportsTernary is false so the reachability analyzer never tries to match
// a ternary rule against Go source.
type GoProfile struct {
	BaseProfile
}

func NewGoProfile() *GoProfile {
	return &GoProfile{BaseProfile: NewBaseProfile("go", []string{".go"})}
}

func (p *GoProfile) IfStatementKinds() []string     { return []string{"if_statement"} }
func (p *GoProfile) TernaryKinds() []string          { return nil }
func (p *GoProfile) BinaryExpressionKinds() []string { return []string{"binary_expression"} }
func (p *GoProfile) CallExpressionKinds() []string   { return []string{"call_expression"} }
func (p *GoProfile) PrefixNotKinds() []string        { return []string{"unary_expression"} }
func (p *GoProfile) ImportKinds() []string           { return []string{"import_spec"} }
func (p *GoProfile) LocalDeclarationKinds() []string  { return []string{"short_var_declaration", "var_declaration"} }
func (p *GoProfile) TopLevelConstantKinds() []string  { return []string{"const_declaration"} }
func (p *GoProfile) ClassFieldKinds() []string       { return []string{"field_declaration"} }
func (p *GoProfile) EnumConstantKinds() []string     { return nil }
func (p *GoProfile) SupportsTernary() bool            { return false }
