package cir

import (
	"testing"
)

func TestTypeStrings(t *testing.T) {
	testCases := []struct {
		typ      Type
		expected string
	}{
		{&VoidType{}, "void"},
		{&BoolType{}, "i1"},
		{&IntType{Bits: 32, Signed: true}, "i32"},
		{&IntType{Bits: 16}, "u16"},
		{&FloatType{Bits: 64}, "f64"},
		{&PointerType{Elem: &IntType{Bits: 8, Signed: true}}, "ptr<i8>"},
		{&ArrayType{Elem: &FloatType{Bits: 32}, Size: 3}, "[f32 x 3]"},
		{&PointerType{Elem: &PointerType{Elem: &VoidType{}}}, "ptr<ptr<void>>"},
		{
			&FuncType{Params: []Type{i32(), f64()}, Return: &VoidType{}},
			"fn(i32, f64) -> void",
		},
		{
			&RecordType{Fields: []RecordField{
				{Name: "x", Type: i32()},
				{Name: "y", Type: f64()},
			}},
			"record{x: i32, y: f64}",
		},
	}

	for _, tc := range testCases {
		if got := tc.typ.String(); got != tc.expected {
			t.Errorf("%T String() = %q, expected %q", tc.typ, got, tc.expected)
		}
	}
}

func TestValueStrings(t *testing.T) {
	testCases := []struct {
		value    Value
		expected string
	}{
		{&VoidConst{}, "void"},
		{&BoolConst{Val: true}, "true"},
		{&IntConst{Val: -7, Typ: i32()}, "-7"},
		{&FloatConst{Val: 2.5, Typ: f64()}, "2.5"},
		{&StringConst{Val: "hi"}, `"hi"`},
		{&NullConst{}, "null"},
		{&VarRef{Name: "count", Typ: i32()}, "%count"},
		{&Temp{ID: 3, Typ: i32()}, "%t3"},
		{&FuncRef{Name: "main"}, "@main"},
		{&GlobalRef{Name: "stdout"}, "@stdout"},
	}

	for _, tc := range testCases {
		if got := tc.value.String(); got != tc.expected {
			t.Errorf("%T String() = %q, expected %q", tc.value, got, tc.expected)
		}
	}
}

func TestValueTypes(t *testing.T) {
	if got := (&StringConst{Val: "x"}).Type().String(); got != "ptr<i8>" {
		t.Errorf("string constant type = %s, expected ptr<i8>", got)
	}
	if got := (&NullConst{}).Type().String(); got != "ptr<void>" {
		t.Errorf("null constant type = %s, expected ptr<void>", got)
	}
	if (&FuncRef{Name: "f"}).Type() != nil {
		t.Error("function references carry no type")
	}
}
