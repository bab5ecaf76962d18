package cir

import (
	"errors"
	"testing"

	"sever/internal/ast"
	"sever/internal/diag"
)

func TestLowerPrimitiveTypes(t *testing.T) {
	testCases := []struct {
		kind     ast.PrimKind
		expected string
	}{
		{ast.Void, "void"},
		{ast.Bool, "i1"},
		{ast.I8, "i8"},
		{ast.I16, "i16"},
		{ast.I32, "i32"},
		{ast.I64, "i64"},
		{ast.U8, "u8"},
		{ast.U16, "u16"},
		{ast.U32, "u32"},
		{ast.U64, "u64"},
		{ast.F32, "f32"},
		{ast.F64, "f64"},
		{ast.Str, "ptr<i8>"},
	}

	l := NewLowering(diag.NewReporter())
	for _, tc := range testCases {
		result, err := l.lowerType(&ast.PrimType{Kind: tc.kind})
		if err != nil {
			t.Errorf("lowerType(%s) failed: %v", tc.kind, err)
			continue
		}
		if result.String() != tc.expected {
			t.Errorf("lowerType(%s) = %s, expected %s", tc.kind, result, tc.expected)
		}
	}
}

func TestLowerCompositeTypes(t *testing.T) {
	testCases := []struct {
		name     string
		source   ast.Type
		expected string
	}{
		{
			"fixed array keeps its size",
			&ast.ArrayType{Elem: &ast.PrimType{Kind: ast.I32}, Size: 4},
			"[i32 x 4]",
		},
		{
			"slice drops its length",
			&ast.SliceType{Elem: &ast.PrimType{Kind: ast.F64}},
			"ptr<f64>",
		},
		{
			"optional becomes a nullable pointer",
			&ast.OptionalType{Inner: &ast.PrimType{Kind: ast.Bool}},
			"ptr<i1>",
		},
		{
			"nested array of slices",
			&ast.ArrayType{Elem: &ast.SliceType{Elem: &ast.PrimType{Kind: ast.U8}}, Size: 2},
			"[ptr<u8> x 2]",
		},
	}

	l := NewLowering(diag.NewReporter())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := l.lowerType(tc.source)
			if err != nil {
				t.Fatalf("lowerType failed: %v", err)
			}
			if result.String() != tc.expected {
				t.Errorf("lowerType = %s, expected %s", result, tc.expected)
			}
		})
	}
}

func TestLowerUnrepresentableTypes(t *testing.T) {
	testCases := []struct {
		name   string
		source ast.Type
	}{
		{"struct", &ast.StructType{Name: "Point"}},
		{"enum", &ast.EnumType{Name: "Shape"}},
		{"hashmap", &ast.MapType{Key: &ast.PrimType{Kind: ast.Str}, Value: &ast.PrimType{Kind: ast.I32}}},
		{"tuple", &ast.TupleType{Elements: []ast.Type{&ast.PrimType{Kind: ast.I32}}}},
		{"function", &ast.FuncType{Return: &ast.PrimType{Kind: ast.Void}}},
		{"distribution", &ast.DistributionType{Name: "Normal"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reporter := diag.NewReporter()
			l := NewLowering(reporter)
			_, err := l.lowerType(tc.source)
			if !errors.Is(err, ErrInvalidType) {
				t.Fatalf("expected ErrInvalidType, got %v", err)
			}
			if !reporter.HasErrors() {
				t.Error("expected a reported diagnostic")
			}
		})
	}
}

func TestLowerTypeErrorInsideComposite(t *testing.T) {
	// An unrepresentable element type fails the whole composite.
	l := NewLowering(diag.NewReporter())
	_, err := l.lowerType(&ast.SliceType{Elem: &ast.StructType{Name: "Point"}})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestSignatureWithInvalidParamType(t *testing.T) {
	f := fn("bad")
	f.Params = []ast.Param{{Name: "p", Type: &ast.StructType{Name: "Point"}}}

	_, err := NewLowering(diag.NewReporter()).Lower(program(f), "test")
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}
