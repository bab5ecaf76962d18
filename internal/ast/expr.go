package ast

// Expression is a sealed variant over every SIRS expression form.
type Expression interface {
	exprNode()
}

// LiteralKind discriminates literal payloads.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
	NullLit
)

// Literal is a constant value. Only the field matching Kind is meaningful.
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// LiteralExpr is a literal in expression position.
type LiteralExpr struct {
	Value Literal
}

// VariableExpr references a bound name.
type VariableExpr struct {
	Name string
}

// CallExpr calls a named function with positional arguments.
type CallExpr struct {
	Function string
	Args     []Expression
}

// OpExpr applies a unary or binary operator to its operands in order.
type OpExpr struct {
	Op       string
	Operands []Expression
}

// IndexExpr indexes into an aggregate.
type IndexExpr struct {
	Base  Expression
	Index Expression
}

// FieldExpr accesses a named field of an aggregate.
type FieldExpr struct {
	Base  Expression
	Field string
}

// ArrayExpr is an array literal.
type ArrayExpr struct {
	Elements []Expression
}

// FieldInit initializes one named field of a struct or record literal.
type FieldInit struct {
	Name  string
	Value Expression
}

// StructExpr is a struct literal.
type StructExpr struct {
	Name   string
	Fields []FieldInit
}

// MapEntry is one key/value pair of a hashmap literal.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// MapExpr is a hashmap literal.
type MapExpr struct {
	Entries []MapEntry
}

// SetExpr is a hashset literal.
type SetExpr struct {
	Elements []Expression
}

// TupleExpr is a tuple literal.
type TupleExpr struct {
	Elements []Expression
}

// RecordExpr is a record literal.
type RecordExpr struct {
	Fields []FieldInit
}

// EnumConstructorExpr constructs an enum variant, optionally with a payload.
type EnumConstructorExpr struct {
	Enum    string
	Variant string
	Value   Expression // nil for payload-free variants
}

// AwaitExpr awaits an asynchronous inner expression.
type AwaitExpr struct {
	Inner Expression
}

// SampleExpr draws a sample from a distribution.
type SampleExpr struct {
	Distribution Expression
}

// InferExpr runs posterior inference over a model.
type InferExpr struct {
	Model Expression
}

// CastExpr converts a value to a target type.
type CastExpr struct {
	Value  Expression
	Target Type
}

func (*LiteralExpr) exprNode()         {}
func (*VariableExpr) exprNode()        {}
func (*CallExpr) exprNode()            {}
func (*OpExpr) exprNode()              {}
func (*IndexExpr) exprNode()           {}
func (*FieldExpr) exprNode()           {}
func (*ArrayExpr) exprNode()           {}
func (*StructExpr) exprNode()          {}
func (*MapExpr) exprNode()             {}
func (*SetExpr) exprNode()             {}
func (*TupleExpr) exprNode()           {}
func (*RecordExpr) exprNode()          {}
func (*EnumConstructorExpr) exprNode() {}
func (*AwaitExpr) exprNode()           {}
func (*SampleExpr) exprNode()          {}
func (*InferExpr) exprNode()           {}
func (*CastExpr) exprNode()            {}
