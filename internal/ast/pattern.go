package ast

// Pattern is a sealed variant over the pattern forms of a match case.
type Pattern interface {
	patternNode()
}

// LiteralPattern matches when the value equals the literal.
type LiteralPattern struct {
	Value Literal
}

// VariablePattern always matches and binds the value to Name.
type VariablePattern struct {
	Name string
}

// WildcardPattern always matches and binds nothing.
type WildcardPattern struct{}

// FieldPattern matches one named field of a struct pattern.
type FieldPattern struct {
	Name    string
	Pattern Pattern
}

// StructPattern matches a struct and its fields.
type StructPattern struct {
	Name   string
	Fields []FieldPattern
}

// EnumPattern matches an enum variant, optionally binding its payload.
type EnumPattern struct {
	Enum    string
	Variant string
	Binding Pattern // nil for payload-free variants
}

func (*LiteralPattern) patternNode()  {}
func (*VariablePattern) patternNode() {}
func (*WildcardPattern) patternNode() {}
func (*StructPattern) patternNode()   {}
func (*EnumPattern) patternNode()     {}
