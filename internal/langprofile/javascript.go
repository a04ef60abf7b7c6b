package langprofile

// JavaScriptProfile covers plain JS/JSX. JavaScript has no native enum
// construct, so EnumConstantKinds is empty; TypeScriptProfile below adds it
// back for .ts/.tsx.
type JavaScriptProfile struct {
	BaseProfile
}

func NewJavaScriptProfile() *JavaScriptProfile {
	return &JavaScriptProfile{BaseProfile: NewBaseProfile("javascript", []string{".js", ".jsx", ".mjs"})}
}

func (p *JavaScriptProfile) IfStatementKinds() []string     { return []string{"if_statement"} }
func (p *JavaScriptProfile) TernaryKinds() []string          { return []string{"ternary_expression"} }
func (p *JavaScriptProfile) BinaryExpressionKinds() []string { return []string{"binary_expression"} }
func (p *JavaScriptProfile) CallExpressionKinds() []string   { return []string{"call_expression"} }
func (p *JavaScriptProfile) PrefixNotKinds() []string        { return []string{"unary_expression"} }
func (p *JavaScriptProfile) ImportKinds() []string           { return []string{"import_statement"} }
func (p *JavaScriptProfile) LocalDeclarationKinds() []string {
	return []string{"lexical_declaration", "variable_declaration"}
}
func (p *JavaScriptProfile) TopLevelConstantKinds() []string { return []string{"lexical_declaration"} }
func (p *JavaScriptProfile) ClassFieldKinds() []string       { return []string{"field_definition"} }
func (p *JavaScriptProfile) EnumConstantKinds() []string     { return nil }
func (p *JavaScriptProfile) SupportsTernary() bool           { return true }

// TypeScriptProfile reuses JavaScriptProfile's shapes (the TS grammar is a
// superset of the JS grammar for every node kind the engine touches) and
// adds enum support, which JS lacks.
type TypeScriptProfile struct {
	JavaScriptProfile
	base BaseProfile
}

func NewTypeScriptProfile() *TypeScriptProfile {
	return &TypeScriptProfile{
		JavaScriptProfile: *NewJavaScriptProfile(),
		base:              NewBaseProfile("typescript", []string{".ts", ".tsx"}),
	}
}

func (p *TypeScriptProfile) Name() string          { return p.base.Name() }
func (p *TypeScriptProfile) Extensions() []string  { return p.base.Extensions() }
func (p *TypeScriptProfile) EnumConstantKinds() []string {
	return []string{"property_identifier", "enum_assignment"}
}
