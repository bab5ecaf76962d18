package cir

import (
	"testing"
)

func TestOpNames(t *testing.T) {
	testCases := []struct {
		op       Op
		expected string
	}{
		{OpAdd, "add"},
		{OpMod, "mod"},
		{OpEq, "eq"},
		{OpGe, "ge"},
		{OpNot, "not"},
		{OpBitXor, "bxor"},
		{OpShr, "shr"},
		{OpAlloca, "alloca"},
		{OpIntToFloat, "itof"},
		{OpCondBranch, "condbr"},
		{OpRet, "ret"},
		{OpUndef, "undef"},
		{Op(999), "unknown"},
	}

	for _, tc := range testCases {
		if got := tc.op.String(); got != tc.expected {
			t.Errorf("Op(%d).String() = %q, expected %q", tc.op, got, tc.expected)
		}
	}
}

func TestInstructionString(t *testing.T) {
	testCases := []struct {
		name     string
		inst     *Instruction
		expected string
	}{
		{
			"result-bearing binary op",
			&Instruction{
				Op:         OpAdd,
				Operands:   []Value{&IntConst{Val: 2, Typ: i32()}, &IntConst{Val: 3, Typ: i32()}},
				ResultType: i32(),
				ResultName: "t0",
			},
			"%t0 = add i32 2, 3",
		},
		{
			"ret with operand",
			&Instruction{Op: OpRet, Operands: []Value{&Temp{ID: 0, Typ: i32()}}},
			"ret %t0",
		},
		{
			"bare ret",
			&Instruction{Op: OpRet},
			"ret",
		},
		{
			"store without result",
			&Instruction{
				Op:       OpStore,
				Operands: []Value{&VarRef{Name: "x", Typ: i32()}, &IntConst{Val: 1, Typ: i32()}},
			},
			"store %x, 1",
		},
		{
			"call with callee and args",
			&Instruction{
				Op:         OpCall,
				Operands:   []Value{&FuncRef{Name: "f"}, &IntConst{Val: 4, Typ: i32()}},
				ResultType: i32(),
				ResultName: "t1",
			},
			"%t1 = call i32 @f, 4",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.inst.String(); got != tc.expected {
				t.Errorf("String() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestBasicBlockLink(t *testing.T) {
	a := NewBasicBlock("a")
	b := NewBasicBlock("b")
	link(a, b)

	if !a.Successors["b"] {
		t.Error("link must record the successor edge")
	}
	if !b.Predecessors["a"] {
		t.Error("link must record the predecessor edge")
	}
	if len(a.Predecessors) != 0 || len(b.Successors) != 0 {
		t.Error("link must not add reverse edges")
	}
}
