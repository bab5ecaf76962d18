package cir

import (
	"fmt"
	"strconv"
)

// Value is an operand usable in a CIR instruction: a constant or a
// reference to a variable, temporary, function, or global.
type Value interface {
	cirValue()
	String() string
	Type() Type
}

// VoidConst is the unit constant.
type VoidConst struct{}

// BoolConst is a boolean constant.
type BoolConst struct {
	Val bool
}

// IntConst is an integer constant carrying its CIR type.
type IntConst struct {
	Val int64
	Typ Type
}

// FloatConst is a floating-point constant carrying its CIR type.
type FloatConst struct {
	Val float64
	Typ Type
}

// StringConst is a string constant. The bytes are shared, not copied.
type StringConst struct {
	Val string
}

// NullConst is the null pointer constant.
type NullConst struct{}

// VarRef names a source-level variable.
type VarRef struct {
	Name string
	Typ  Type
}

// Temp is an SSA-style temporary: produced by exactly one instruction,
// identified by a dense id unique within a lowering session.
type Temp struct {
	ID  int
	Typ Type
}

// FuncRef names a function by its module-level name.
type FuncRef struct {
	Name string
}

// GlobalRef names a module global.
type GlobalRef struct {
	Name string
}

func (*VoidConst) cirValue()   {}
func (*BoolConst) cirValue()   {}
func (*IntConst) cirValue()    {}
func (*FloatConst) cirValue()  {}
func (*StringConst) cirValue() {}
func (*NullConst) cirValue()   {}
func (*VarRef) cirValue()      {}
func (*Temp) cirValue()        {}
func (*FuncRef) cirValue()     {}
func (*GlobalRef) cirValue()   {}

func (*VoidConst) String() string { return "void" }

func (v *BoolConst) String() string { return strconv.FormatBool(v.Val) }
func (v *IntConst) String() string  { return strconv.FormatInt(v.Val, 10) }

func (v *FloatConst) String() string {
	return strconv.FormatFloat(v.Val, 'g', -1, 64)
}

func (v *StringConst) String() string { return strconv.Quote(v.Val) }
func (*NullConst) String() string     { return "null" }
func (v *VarRef) String() string      { return "%" + v.Name }
func (v *Temp) String() string        { return fmt.Sprintf("%%t%d", v.ID) }
func (v *FuncRef) String() string     { return "@" + v.Name }
func (v *GlobalRef) String() string   { return "@" + v.Name }

func (*VoidConst) Type() Type     { return &VoidType{} }
func (*BoolConst) Type() Type     { return &BoolType{} }
func (v *IntConst) Type() Type    { return v.Typ }
func (v *FloatConst) Type() Type  { return v.Typ }
func (*StringConst) Type() Type   { return strType() }
func (*NullConst) Type() Type     { return &PointerType{Elem: &VoidType{}} }
func (v *VarRef) Type() Type      { return v.Typ }
func (v *Temp) Type() Type        { return v.Typ }
func (*FuncRef) Type() Type       { return nil }
func (*GlobalRef) Type() Type     { return nil }
