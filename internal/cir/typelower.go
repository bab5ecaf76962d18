package cir

import (
	"fmt"

	"sever/internal/ast"
)

// lowerType maps a source type to its CIR representation.
//
// Primitives map one to one. str becomes ptr<i8>. Fixed arrays keep
// their size. Slices lower to a bare element pointer (the length is
// dropped) and optionals to a nullable pointer (no discriminant is
// modeled). Every other source type has no CIR representation yet and
// fails with ErrInvalidType.
func (l *Lowering) lowerType(t ast.Type) (Type, error) {
	switch st := t.(type) {
	case *ast.PrimType:
		switch st.Kind {
		case ast.Void:
			return &VoidType{}, nil
		case ast.Bool:
			return &BoolType{}, nil
		case ast.I8:
			return &IntType{Bits: 8, Signed: true}, nil
		case ast.I16:
			return &IntType{Bits: 16, Signed: true}, nil
		case ast.I32:
			return &IntType{Bits: 32, Signed: true}, nil
		case ast.I64:
			return &IntType{Bits: 64, Signed: true}, nil
		case ast.U8:
			return &IntType{Bits: 8}, nil
		case ast.U16:
			return &IntType{Bits: 16}, nil
		case ast.U32:
			return &IntType{Bits: 32}, nil
		case ast.U64:
			return &IntType{Bits: 64}, nil
		case ast.F32:
			return &FloatType{Bits: 32}, nil
		case ast.F64:
			return &FloatType{Bits: 64}, nil
		case ast.Str:
			return strType(), nil
		}

	case *ast.ArrayType:
		elem, err := l.lowerType(st.Elem)
		if err != nil {
			return nil, err
		}
		return &ArrayType{Elem: elem, Size: st.Size}, nil

	case *ast.SliceType:
		elem, err := l.lowerType(st.Elem)
		if err != nil {
			return nil, err
		}
		return &PointerType{Elem: elem}, nil

	case *ast.OptionalType:
		inner, err := l.lowerType(st.Inner)
		if err != nil {
			return nil, err
		}
		return &PointerType{Elem: inner}, nil
	}

	l.diags.Errorf(nil, "type %s has no CIR representation", t)
	return nil, fmt.Errorf("lower type %s: %w", t, ErrInvalidType)
}
