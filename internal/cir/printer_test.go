package cir

import (
	"strings"
	"testing"

	"sever/internal/ast"
)

func TestPrintSimpleFunction(t *testing.T) {
	f := fn("double", ret(binOp("*", variable("x"), intLit(2))))
	f.Params = []ast.Param{{Name: "x", Type: i32Type()}}
	module := lowerProgram(t, program(f))

	output := Print(module)

	for _, want := range []string{
		"MODULE test (CIR)",
		"FUNCTION double(x: i32) -> i32:",
		"BLOCK double_entry:",
		"%t0 = mul i32 %x, 2",
		"ret %t0",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestPrintFunctionsInNameOrder(t *testing.T) {
	module := lowerProgram(t, program(
		fn("zebra", ret(intLit(1))),
		fn("apple", ret(intLit(2))),
	))

	output := Print(module)
	apple := strings.Index(output, "FUNCTION apple")
	zebra := strings.Index(output, "FUNCTION zebra")
	if apple == -1 || zebra == -1 {
		t.Fatalf("both functions must be printed:\n%s", output)
	}
	if apple > zebra {
		t.Error("functions must print in name order")
	}
}

func TestPrintDeterministic(t *testing.T) {
	prog := program(
		fn("c", ret(intLit(3))),
		fn("a", ret(intLit(1))),
		fn("b", ret(intLit(2))),
	)

	first := Print(lowerProgram(t, prog))
	for i := 0; i < 10; i++ {
		if again := Print(lowerProgram(t, prog)); again != first {
			t.Fatal("printing the same program twice produced different output")
		}
	}
}

func TestPrintMatchEdges(t *testing.T) {
	match := &ast.MatchStmt{
		Value: intLit(1),
		Cases: []ast.MatchCase{
			{Pattern: &ast.WildcardPattern{}, Body: nil},
		},
	}
	module := lowerProgram(t, program(fn("main", match)))

	output := Print(module)
	for _, want := range []string{
		"BLOCK main_entry:  ; succs: match_case_0_0, match_next_0_0",
		"BLOCK match_case_0_0:  ; preds: main_entry succs: match_cont_0",
		"BLOCK match_cont_0:  ; preds: match_case_0_0, match_next_0_0",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestPrintExternalFunction(t *testing.T) {
	module := NewModule("test")
	module.Functions["print"] = &Function{
		Name:       "print",
		Params:     []Param{{Name: "msg", Type: strType()}},
		ReturnType: &VoidType{},
		External:   true,
	}

	output := Print(module)
	if !strings.Contains(output, "EXTERNAL FUNCTION print(msg: ptr<i8>) -> void:") {
		t.Errorf("external marker missing:\n%s", output)
	}
}
