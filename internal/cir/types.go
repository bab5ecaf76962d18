package cir

import (
	"fmt"
	"strings"
)

// Type is a CIR type: a simplified, machine-like view of Sever's type
// system. The variant set is closed; lowering switches exhaustively.
type Type interface {
	cirType()
	String() string
}

// VoidType is the absence of a value.
type VoidType struct{}

// BoolType is a one-bit boolean (i1).
type BoolType struct{}

// IntType is a signed or unsigned integer of width 8, 16, 32 or 64.
type IntType struct {
	Bits   int
	Signed bool
}

// FloatType is a floating-point number of width 32 or 64.
type FloatType struct {
	Bits int
}

// PointerType points to a value of Elem type.
type PointerType struct {
	Elem Type
}

// ArrayType is a fixed-length sequence of Elem.
type ArrayType struct {
	Elem Type
	Size int
}

// FuncType is a function signature.
type FuncType struct {
	Params []Type
	Return Type
}

// RecordField is one named member of a RecordType.
type RecordField struct {
	Name string
	Type Type
}

// RecordType is a product type with named fields in declaration order.
type RecordType struct {
	Fields []RecordField
}

func (*VoidType) cirType()    {}
func (*BoolType) cirType()    {}
func (*IntType) cirType()     {}
func (*FloatType) cirType()   {}
func (*PointerType) cirType() {}
func (*ArrayType) cirType()   {}
func (*FuncType) cirType()    {}
func (*RecordType) cirType()  {}

func (*VoidType) String() string { return "void" }
func (*BoolType) String() string { return "i1" }

func (t *IntType) String() string {
	if t.Signed {
		return fmt.Sprintf("i%d", t.Bits)
	}
	return fmt.Sprintf("u%d", t.Bits)
}

func (t *FloatType) String() string   { return fmt.Sprintf("f%d", t.Bits) }
func (t *PointerType) String() string { return fmt.Sprintf("ptr<%s>", t.Elem) }
func (t *ArrayType) String() string   { return fmt.Sprintf("[%s x %d]", t.Elem, t.Size) }

func (t *FuncType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), t.Return)
}

func (t *RecordType) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "record{" + strings.Join(parts, ", ") + "}"
}

// i32 is the placeholder result type lowering assigns to temporaries whose
// true type is not yet threaded through.
func i32() *IntType { return &IntType{Bits: 32, Signed: true} }

func f64() *FloatType { return &FloatType{Bits: 64} }

// strType is the CIR encoding of the source str type.
func strType() *PointerType {
	return &PointerType{Elem: &IntType{Bits: 8, Signed: true}}
}
