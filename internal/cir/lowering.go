package cir

import (
	"errors"
	"fmt"

	"sever/internal/ast"
	"sever/internal/diag"
)

// Lowering failure kinds. Every lowering operation fails fast with one of
// these; there is no local recovery. Human-readable detail is reported to
// the session's diag.Reporter in parallel with the returned kind.
var (
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidType          = errors.New("invalid type")
	ErrUndefinedVariable    = errors.New("undefined variable")
	ErrUndefinedFunction    = errors.New("undefined function")
	ErrOutOfMemory          = errors.New("out of memory")
)

// Lowering is one session of AST-to-CIR conversion. It holds the module
// being built, three independent monotonic id counters, the current
// function/block cursors, and the environment mapping source variable
// names to CIR values. A session lowers one program and is then discarded.
type Lowering struct {
	module *Module
	diags  *diag.Reporter

	nextTempID  int
	nextInstID  int
	nextBlockID int

	currentFunc  *Function
	currentBlock *BasicBlock

	// env maps visible source bindings to CIR values. It is cleared at
	// the start of every function body, so no binding crosses function
	// boundaries.
	env map[string]Value
}

// NewLowering creates a fresh session reporting through diags.
func NewLowering(diags *diag.Reporter) *Lowering {
	return &Lowering{
		diags: diags,
		env:   make(map[string]Value),
	}
}

// Lower converts a validated program into a CIR module.
//
// Lowering is two-phase: first every function signature is lowered and
// inserted into the module, then every body. A call only needs its
// callee's name, so mutually recursive functions compile regardless of
// iteration order.
func (l *Lowering) Lower(prog *ast.Program, moduleName string) (*Module, error) {
	l.module = NewModule(moduleName)

	for _, fn := range prog.Functions {
		if err := l.lowerSignature(fn); err != nil {
			return nil, err
		}
	}

	for _, fn := range prog.Functions {
		if err := l.lowerBody(fn); err != nil {
			return nil, err
		}
	}

	return l.module, nil
}

// lowerSignature builds an empty CIR function carrying the lowered
// parameter and return types. Bodies are not touched here.
func (l *Lowering) lowerSignature(fn *ast.Function) error {
	params := make([]Param, 0, len(fn.Params))
	for _, p := range fn.Params {
		pt, err := l.lowerType(p.Type)
		if err != nil {
			return err
		}
		params = append(params, Param{Name: p.Name, Type: pt})
	}

	ret, err := l.lowerType(fn.ReturnType)
	if err != nil {
		return err
	}

	l.module.Functions[fn.Name] = &Function{
		Name:       fn.Name,
		Params:     params,
		ReturnType: ret,
	}
	return nil
}

// lowerBody lowers every top-level statement of fn into its entry block.
func (l *Lowering) lowerBody(fn *ast.Function) error {
	target, ok := l.module.Functions[fn.Name]
	if !ok {
		// The signature phase inserts every function, so a miss here is
		// a structural invariant violation.
		l.diags.Errorf(nil, "function %s missing from module after signature phase", fn.Name)
		return fmt.Errorf("lower body of %s: %w", fn.Name, ErrUndefinedFunction)
	}

	l.currentFunc = target
	l.env = make(map[string]Value)
	for _, p := range target.Params {
		l.env[p.Name] = &VarRef{Name: p.Name, Typ: p.Type}
	}

	entry := NewBasicBlock(fn.Name + "_entry")
	target.Blocks = append(target.Blocks, entry)
	l.currentBlock = entry

	for _, stmt := range fn.Body {
		if err := l.lowerStatement(stmt); err != nil {
			return err
		}
	}

	l.currentFunc = nil
	l.currentBlock = nil
	return nil
}

// ----------------------------------------------------------------------------
// Statements

func (l *Lowering) lowerStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		// A let-bound name is a direct alias for the lowered value; no
		// slot is allocated and no store is emitted.
		value, err := l.lowerExpression(s.Value)
		if err != nil {
			return err
		}
		l.env[s.Name] = value
		return nil

	case *ast.AssignStmt:
		return l.lowerAssign(s)

	case *ast.ReturnStmt:
		if s.Value == nil {
			l.emit(OpRet, nil, nil, "")
			return nil
		}
		value, err := l.lowerExpression(s.Value)
		if err != nil {
			return err
		}
		l.emit(OpRet, []Value{value}, nil, "")
		return nil

	case *ast.ThrowStmt:
		// Placeholder error semantics: the thrown value is lowered for
		// its side effects and the function returns null.
		if _, err := l.lowerExpression(s.Value); err != nil {
			return err
		}
		l.emit(OpRet, []Value{&NullConst{}}, nil, "")
		return nil

	case *ast.ExprStmt:
		_, err := l.lowerExpression(s.Expr)
		return err

	case *ast.IfStmt:
		// The condition is lowered but does not yet gate execution, and
		// the else branch is dropped entirely; only the then body is
		// lowered, unconditionally, into the current block.
		if _, err := l.lowerExpression(s.Condition); err != nil {
			return err
		}
		for _, inner := range s.Then {
			if err := l.lowerStatement(inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.TryStmt:
		// Catch clauses and the finally block are dropped.
		for _, inner := range s.Body {
			if err := l.lowerStatement(inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.MatchStmt:
		return l.lowerMatch(s)

	default:
		l.diags.Errorf(nil, "%s statements cannot be lowered yet", stmtName(stmt))
		return fmt.Errorf("lower %s statement: %w", stmtName(stmt), ErrUnsupportedOperation)
	}
}

// lowerAssign stores a value into an lvalue. Only a bare variable name is
// supported as the target.
func (l *Lowering) lowerAssign(s *ast.AssignStmt) error {
	variable, ok := s.Target.(*ast.VariableExpr)
	if !ok {
		l.diags.Errorf(nil, "assignment target must be a variable name")
		return fmt.Errorf("lower assignment target: %w", ErrUnsupportedOperation)
	}
	target := &VarRef{Name: variable.Name, Typ: i32()}

	value, err := l.lowerExpression(s.Value)
	if err != nil {
		return err
	}

	l.emit(OpStore, []Value{target, value}, nil, "")
	return nil
}

// lowerMatch synthesizes the multi-block control flow of a match
// statement. A match with K cases contributes exactly 2K+1 new blocks:
// one case block and one fall-through ("next") block per case, plus a
// continuation block that control rejoins after the match.
//
// Case i's pattern test lives in case i-1's next block (the block that
// was current when the match began, for i = 0). The conditional branch
// carries only the tested boolean; targets are recorded as CFG edges on
// the blocks themselves.
func (l *Lowering) lowerMatch(s *ast.MatchStmt) error {
	matched, err := l.lowerExpression(s.Value)
	if err != nil {
		return err
	}

	matchID := l.newBlockID()
	cont := NewBasicBlock(fmt.Sprintf("match_cont_%d", matchID))

	caseBlocks := make([]*BasicBlock, len(s.Cases))
	nextBlocks := make([]*BasicBlock, len(s.Cases))
	for i := range s.Cases {
		caseBlocks[i] = NewBasicBlock(fmt.Sprintf("match_case_%d_%d", matchID, i))
		nextBlocks[i] = NewBasicBlock(fmt.Sprintf("match_next_%d_%d", matchID, i))
	}

	for i, c := range s.Cases {
		if i > 0 {
			l.currentBlock = nextBlocks[i-1]
		}
		test := l.currentBlock

		cond, err := l.lowerPattern(c.Pattern, matched)
		if err != nil {
			return err
		}
		l.emit(OpCondBranch, []Value{cond}, nil, "")
		link(test, caseBlocks[i])
		link(test, nextBlocks[i])

		l.currentBlock = caseBlocks[i]
		l.bindPattern(c.Pattern, matched)
		for _, inner := range c.Body {
			if err := l.lowerStatement(inner); err != nil {
				return err
			}
		}
		l.emit(OpBranch, nil, nil, "")
		link(caseBlocks[i], cont)
	}

	// When no pattern matched, control falls from the last next block
	// straight into the continuation.
	if n := len(nextBlocks); n > 0 {
		link(nextBlocks[n-1], cont)
	}

	for i := range s.Cases {
		l.currentFunc.Blocks = append(l.currentFunc.Blocks, caseBlocks[i], nextBlocks[i])
	}
	l.currentFunc.Blocks = append(l.currentFunc.Blocks, cont)
	l.currentBlock = cont
	return nil
}

// lowerPattern produces the boolean value deciding whether a case fires.
// Literal patterns compare against the matched value; every other pattern
// kind currently always matches (sub-field checking is not implemented).
func (l *Lowering) lowerPattern(p ast.Pattern, matched Value) (Value, error) {
	switch pt := p.(type) {
	case *ast.LiteralPattern:
		result := l.newTemp(&BoolType{})
		l.emit(OpEq, []Value{matched, literalValue(pt.Value)}, result.Typ, tempName(result))
		return result, nil

	case *ast.VariablePattern, *ast.WildcardPattern, *ast.StructPattern, *ast.EnumPattern:
		return &BoolConst{Val: true}, nil

	default:
		l.diags.Errorf(nil, "unrecognized pattern kind")
		return nil, fmt.Errorf("lower pattern: %w", ErrUnsupportedOperation)
	}
}

// bindPattern introduces the names a pattern binds. Struct and enum
// sub-patterns rebind the whole matched value; field and payload
// extraction is not implemented yet.
func (l *Lowering) bindPattern(p ast.Pattern, matched Value) {
	switch pt := p.(type) {
	case *ast.VariablePattern:
		l.env[pt.Name] = matched
	case *ast.StructPattern:
		for _, f := range pt.Fields {
			l.bindPattern(f.Pattern, matched)
		}
	case *ast.EnumPattern:
		if pt.Binding != nil {
			l.bindPattern(pt.Binding, matched)
		}
	}
}

// ----------------------------------------------------------------------------
// Expressions

func (l *Lowering) lowerExpression(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(e.Value), nil

	case *ast.VariableExpr:
		value, ok := l.env[e.Name]
		if !ok {
			l.diags.Errorf(nil, "undefined variable %s", e.Name)
			return nil, fmt.Errorf("lower variable %s: %w", e.Name, ErrUndefinedVariable)
		}
		return value, nil

	case *ast.OpExpr:
		return l.lowerOp(e)

	case *ast.CallExpr:
		return l.lowerCall(e)

	case *ast.ArrayExpr:
		agg := l.emitAlloca()
		for i, elem := range e.Elements {
			value, err := l.lowerExpression(elem)
			if err != nil {
				return nil, err
			}
			index := &IntConst{Val: int64(i), Typ: i32()}
			l.emit(OpStore, []Value{agg, index, value}, nil, "")
		}
		return agg, nil

	case *ast.StructExpr:
		agg := l.emitAlloca()
		for _, field := range e.Fields {
			value, err := l.lowerExpression(field.Value)
			if err != nil {
				return nil, err
			}
			l.emit(OpStore, []Value{agg, value}, nil, "")
		}
		return agg, nil

	case *ast.MapExpr:
		agg := l.emitAlloca()
		for _, entry := range e.Entries {
			key, err := l.lowerExpression(entry.Key)
			if err != nil {
				return nil, err
			}
			value, err := l.lowerExpression(entry.Value)
			if err != nil {
				return nil, err
			}
			l.emit(OpStore, []Value{agg, key, value}, nil, "")
		}
		return agg, nil

	case *ast.SetExpr:
		agg := l.emitAlloca()
		for _, elem := range e.Elements {
			value, err := l.lowerExpression(elem)
			if err != nil {
				return nil, err
			}
			l.emit(OpStore, []Value{agg, value}, nil, "")
		}
		return agg, nil

	case *ast.TupleExpr, *ast.RecordExpr:
		// Placeholder: no allocation and no field encoding yet.
		return l.newTemp(i32()), nil

	case *ast.EnumConstructorExpr:
		// Placeholder: the payload is lowered for side effects only; the
		// variant tag is not encoded.
		if e.Value != nil {
			if _, err := l.lowerExpression(e.Value); err != nil {
				return nil, err
			}
		}
		return l.newTemp(i32()), nil

	case *ast.IndexExpr:
		base, err := l.lowerExpression(e.Base)
		if err != nil {
			return nil, err
		}
		result := l.newTemp(i32())
		l.emit(OpLoad, []Value{base}, result.Typ, tempName(result))
		return result, nil

	case *ast.FieldExpr:
		base, err := l.lowerExpression(e.Base)
		if err != nil {
			return nil, err
		}
		result := l.newTemp(i32())
		l.emit(OpLoad, []Value{base}, result.Typ, tempName(result))
		return result, nil

	case *ast.AwaitExpr:
		// No asynchronous frame is modeled; await is transparent.
		return l.lowerExpression(e.Inner)

	default:
		l.diags.Errorf(nil, "%s expressions cannot be lowered yet", exprName(expr))
		return nil, fmt.Errorf("lower %s expression: %w", exprName(expr), ErrUnsupportedOperation)
	}
}

// opcodes maps source operator spellings to CIR opcodes. Operators
// outside this set (pow, the bitwise family) have no lowering yet.
var opcodes = map[string]Op{
	"+":  OpAdd,
	"-":  OpSub,
	"*":  OpMul,
	"/":  OpDiv,
	"%":  OpMod,
	"==": OpEq,
	"!=": OpNe,
	"<":  OpLt,
	"<=": OpLe,
	">":  OpGt,
	">=": OpGe,
	"&&": OpAnd,
	"||": OpOr,
	"!":  OpNot,
}

func (l *Lowering) lowerOp(e *ast.OpExpr) (Value, error) {
	op, ok := opcodes[e.Op]
	if !ok {
		l.diags.Errorf(nil, "operator %q cannot be lowered", e.Op)
		return nil, fmt.Errorf("lower operator %q: %w", e.Op, ErrUnsupportedOperation)
	}

	operands := make([]Value, 0, len(e.Operands))
	for _, operand := range e.Operands {
		value, err := l.lowerExpression(operand)
		if err != nil {
			return nil, err
		}
		operands = append(operands, value)
	}

	// Result type is fixed to i32 for now; true result typing requires
	// threading operand types through, which is future work.
	result := l.newTemp(i32())
	l.emit(op, operands, result.Typ, tempName(result))
	return result, nil
}

func (l *Lowering) lowerCall(e *ast.CallExpr) (Value, error) {
	operands := make([]Value, 0, len(e.Args)+1)
	operands = append(operands, &FuncRef{Name: e.Function})
	for _, arg := range e.Args {
		value, err := l.lowerExpression(arg)
		if err != nil {
			return nil, err
		}
		operands = append(operands, value)
	}

	result := l.newTemp(i32())
	l.emit(OpCall, operands, result.Typ, tempName(result))
	return result, nil
}

// ----------------------------------------------------------------------------
// Session helpers

// emit appends a freshly numbered instruction to the current block.
func (l *Lowering) emit(op Op, operands []Value, resultType Type, resultName string) *Instruction {
	inst := &Instruction{
		ID:         l.nextInstID,
		Op:         op,
		Operands:   operands,
		ResultType: resultType,
		ResultName: resultName,
	}
	l.nextInstID++
	l.currentBlock.Append(inst)
	return inst
}

// emitAlloca allocates an aggregate and returns its temporary. Element
// typing is not threaded through yet, so the slot is typed ptr<i32>.
func (l *Lowering) emitAlloca() *Temp {
	agg := l.newTemp(&PointerType{Elem: i32()})
	l.emit(OpAlloca, nil, agg.Typ, tempName(agg))
	return agg
}

// newTemp allocates the next temporary id. Temporary and instruction ids
// advance independently and are never reused within a session.
func (l *Lowering) newTemp(t Type) *Temp {
	temp := &Temp{ID: l.nextTempID, Typ: t}
	l.nextTempID++
	return temp
}

func (l *Lowering) newBlockID() int {
	id := l.nextBlockID
	l.nextBlockID++
	return id
}

func tempName(t *Temp) string {
	return fmt.Sprintf("t%d", t.ID)
}

func literalValue(lit ast.Literal) Value {
	switch lit.Kind {
	case ast.IntLit:
		// Integer literals are typed i32 regardless of any narrower
		// source annotation; floats are f64.
		return &IntConst{Val: lit.Int, Typ: i32()}
	case ast.FloatLit:
		return &FloatConst{Val: lit.Float, Typ: f64()}
	case ast.StringLit:
		return &StringConst{Val: lit.Str}
	case ast.BoolLit:
		return &BoolConst{Val: lit.Bool}
	default:
		return &NullConst{}
	}
}

func stmtName(stmt ast.Statement) string {
	switch stmt.(type) {
	case *ast.LetStmt:
		return "let"
	case *ast.AssignStmt:
		return "assign"
	case *ast.IfStmt:
		return "if"
	case *ast.MatchStmt:
		return "match"
	case *ast.WhileStmt:
		return "while"
	case *ast.ForStmt:
		return "for"
	case *ast.TryStmt:
		return "try"
	case *ast.ThrowStmt:
		return "throw"
	case *ast.ReturnStmt:
		return "return"
	case *ast.BreakStmt:
		return "break"
	case *ast.ContinueStmt:
		return "continue"
	case *ast.ObserveStmt:
		return "observe"
	case *ast.ProbAssertStmt:
		return "prob_assert"
	case *ast.ExprStmt:
		return "expression"
	default:
		return "unknown"
	}
}

func exprName(expr ast.Expression) string {
	switch expr.(type) {
	case *ast.LiteralExpr:
		return "literal"
	case *ast.VariableExpr:
		return "variable"
	case *ast.CallExpr:
		return "call"
	case *ast.OpExpr:
		return "op"
	case *ast.IndexExpr:
		return "index"
	case *ast.FieldExpr:
		return "field"
	case *ast.ArrayExpr:
		return "array"
	case *ast.StructExpr:
		return "struct"
	case *ast.MapExpr:
		return "hashmap"
	case *ast.SetExpr:
		return "set"
	case *ast.TupleExpr:
		return "tuple"
	case *ast.RecordExpr:
		return "record"
	case *ast.EnumConstructorExpr:
		return "enum constructor"
	case *ast.AwaitExpr:
		return "await"
	case *ast.SampleExpr:
		return "sample"
	case *ast.InferExpr:
		return "infer"
	case *ast.CastExpr:
		return "cast"
	default:
		return "unknown"
	}
}
