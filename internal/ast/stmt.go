package ast

// Statement is a sealed variant over every SIRS statement form.
type Statement interface {
	stmtNode()
}

// LetStmt binds a new immutable name to a value.
type LetStmt struct {
	Name  string
	Type  Type // optional annotation, may be nil
	Value Expression
}

// AssignStmt stores a value into an existing location.
type AssignStmt struct {
	Target Expression
	Value  Expression
}

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	Condition Expression
	Then      []Statement
	Else      []Statement // nil when absent
}

// MatchCase is one pattern arm of a match statement.
type MatchCase struct {
	Pattern Pattern
	Body    []Statement
}

// MatchStmt matches a value against a sequence of patterns.
type MatchStmt struct {
	Value Expression
	Cases []MatchCase
}

// WhileStmt loops while a condition holds.
type WhileStmt struct {
	Condition Expression
	Body      []Statement
}

// ForStmt iterates a bound variable over an iterable.
type ForStmt struct {
	Var      string
	Iterable Expression
	Body     []Statement
}

// CatchClause handles a thrown value under a bound name.
type CatchClause struct {
	Name string
	Body []Statement
}

// TryStmt runs a body with catch clauses and an optional finally block.
type TryStmt struct {
	Body    []Statement
	Catches []CatchClause
	Finally []Statement // nil when absent
}

// ThrowStmt raises a value as an error.
type ThrowStmt struct {
	Value Expression
}

// ReturnStmt returns from the enclosing function.
type ReturnStmt struct {
	Value Expression // nil for bare return
}

// BreakStmt exits the innermost loop.
type BreakStmt struct{}

// ContinueStmt advances the innermost loop.
type ContinueStmt struct{}

// ObserveStmt conditions a model on an observed value.
type ObserveStmt struct {
	Distribution Expression
	Value        Expression
}

// ProbAssertStmt asserts a condition holds with a given confidence.
type ProbAssertStmt struct {
	Condition  Expression
	Confidence float64
}

// ExprStmt evaluates an expression for its effects.
type ExprStmt struct {
	Expr Expression
}

func (*LetStmt) stmtNode()        {}
func (*AssignStmt) stmtNode()     {}
func (*IfStmt) stmtNode()         {}
func (*MatchStmt) stmtNode()      {}
func (*WhileStmt) stmtNode()      {}
func (*ForStmt) stmtNode()        {}
func (*TryStmt) stmtNode()        {}
func (*ThrowStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()     {}
func (*BreakStmt) stmtNode()      {}
func (*ContinueStmt) stmtNode()   {}
func (*ObserveStmt) stmtNode()    {}
func (*ProbAssertStmt) stmtNode() {}
func (*ExprStmt) stmtNode()       {}
