package ast

import (
	"fmt"
	"strings"
)

// Type is the source-level type of a SIRS expression or binding.
// It is a sealed variant: every concrete type lives in this file and
// lowering sites switch exhaustively over them.
type Type interface {
	typeNode()
	String() string
}

// PrimKind enumerates the primitive SIRS types.
type PrimKind int

const (
	Void PrimKind = iota
	Bool
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Str
)

var primNames = [...]string{
	"void", "bool",
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"f32", "f64",
	"str",
}

func (pk PrimKind) String() string {
	if int(pk) < len(primNames) {
		return primNames[pk]
	}
	return "unknown"
}

// PrimType is a primitive type: void, bool, a sized number, or str.
type PrimType struct {
	Kind PrimKind
}

// ArrayType is a fixed-size homogeneous array.
type ArrayType struct {
	Elem Type
	Size int
}

// SliceType is a dynamically sized view over elements of one type.
type SliceType struct {
	Elem Type
}

// OptionalType wraps a type that may be absent.
type OptionalType struct {
	Inner Type
}

// StructType is a nominal struct. Lowering does not support it.
type StructType struct {
	Name   string
	Fields []StructField
}

// StructField is a named struct member.
type StructField struct {
	Name string
	Type Type
}

// EnumType is a nominal enum.
type EnumType struct {
	Name string
}

// UnionType is an untagged union over its variants.
type UnionType struct {
	Variants []Type
}

// DiscriminatedUnionType is a tagged union.
type DiscriminatedUnionType struct {
	Name     string
	Variants []Type
}

// MapType is a hashmap from Key to Value.
type MapType struct {
	Key   Type
	Value Type
}

// SetType is a hashset of Elem.
type SetType struct {
	Elem Type
}

// TupleType is a positional product type.
type TupleType struct {
	Elements []Type
}

// RecordType is a structural product type with named fields.
type RecordType struct {
	Fields []StructField
}

// FuncType is a function signature used as a value type.
type FuncType struct {
	Params []Type
	Return Type
}

// InterfaceType is an interface or trait object.
type InterfaceType struct {
	Name string
}

// GenericType is an instantiation of a generic type.
type GenericType struct {
	Name string
	Args []Type
}

// DistributionType is a probability distribution over its support.
type DistributionType struct {
	Name string
}

func (*PrimType) typeNode()               {}
func (*ArrayType) typeNode()              {}
func (*SliceType) typeNode()              {}
func (*OptionalType) typeNode()           {}
func (*StructType) typeNode()             {}
func (*EnumType) typeNode()               {}
func (*UnionType) typeNode()              {}
func (*DiscriminatedUnionType) typeNode() {}
func (*MapType) typeNode()                {}
func (*SetType) typeNode()                {}
func (*TupleType) typeNode()              {}
func (*RecordType) typeNode()             {}
func (*FuncType) typeNode()               {}
func (*InterfaceType) typeNode()          {}
func (*GenericType) typeNode()            {}
func (*DistributionType) typeNode()       {}

func (t *PrimType) String() string     { return t.Kind.String() }
func (t *ArrayType) String() string    { return fmt.Sprintf("array<%s, %d>", t.Elem, t.Size) }
func (t *SliceType) String() string    { return fmt.Sprintf("slice<%s>", t.Elem) }
func (t *OptionalType) String() string { return fmt.Sprintf("optional<%s>", t.Inner) }
func (t *StructType) String() string   { return "struct " + t.Name }
func (t *EnumType) String() string     { return "enum " + t.Name }

func (t *UnionType) String() string {
	parts := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		parts[i] = v.String()
	}
	return strings.Join(parts, " | ")
}

func (t *DiscriminatedUnionType) String() string { return "union " + t.Name }
func (t *MapType) String() string                { return fmt.Sprintf("hashmap<%s, %s>", t.Key, t.Value) }
func (t *SetType) String() string                { return fmt.Sprintf("set<%s>", t.Elem) }

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *RecordType) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t *FuncType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), t.Return)
}

func (t *InterfaceType) String() string { return "interface " + t.Name }

func (t *GenericType) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}

func (t *DistributionType) String() string { return "distribution " + t.Name }
