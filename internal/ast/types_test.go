package ast

import (
	"testing"
)

func TestPrimKindStrings(t *testing.T) {
	testCases := []struct {
		kind     PrimKind
		expected string
	}{
		{Void, "void"},
		{Bool, "bool"},
		{I8, "i8"},
		{I64, "i64"},
		{U8, "u8"},
		{U64, "u64"},
		{F32, "f32"},
		{F64, "f64"},
		{Str, "str"},
		{PrimKind(99), "unknown"},
	}

	for _, tc := range testCases {
		if got := tc.kind.String(); got != tc.expected {
			t.Errorf("PrimKind(%d).String() = %q, expected %q", tc.kind, got, tc.expected)
		}
	}
}

func TestTypeStrings(t *testing.T) {
	testCases := []struct {
		typ      Type
		expected string
	}{
		{&PrimType{Kind: I32}, "i32"},
		{&ArrayType{Elem: &PrimType{Kind: Bool}, Size: 4}, "array<bool, 4>"},
		{&SliceType{Elem: &PrimType{Kind: F64}}, "slice<f64>"},
		{&OptionalType{Inner: &PrimType{Kind: Str}}, "optional<str>"},
		{&StructType{Name: "Point"}, "struct Point"},
		{&EnumType{Name: "Shape"}, "enum Shape"},
		{
			&UnionType{Variants: []Type{&PrimType{Kind: I32}, &PrimType{Kind: Str}}},
			"i32 | str",
		},
		{&DiscriminatedUnionType{Name: "Result"}, "union Result"},
		{
			&MapType{Key: &PrimType{Kind: Str}, Value: &PrimType{Kind: I64}},
			"hashmap<str, i64>",
		},
		{&SetType{Elem: &PrimType{Kind: U32}}, "set<u32>"},
		{
			&TupleType{Elements: []Type{&PrimType{Kind: I32}, &PrimType{Kind: Bool}}},
			"(i32, bool)",
		},
		{
			&RecordType{Fields: []StructField{{Name: "x", Type: &PrimType{Kind: F64}}}},
			"{x: f64}",
		},
		{
			&FuncType{Params: []Type{&PrimType{Kind: I32}}, Return: &PrimType{Kind: Void}},
			"fn(i32) -> void",
		},
		{&InterfaceType{Name: "Reader"}, "interface Reader"},
		{
			&GenericType{Name: "List", Args: []Type{&PrimType{Kind: I8}}},
			"List<i8>",
		},
		{&DistributionType{Name: "Normal"}, "distribution Normal"},
	}

	for _, tc := range testCases {
		if got := tc.typ.String(); got != tc.expected {
			t.Errorf("%T String() = %q, expected %q", tc.typ, got, tc.expected)
		}
	}
}
