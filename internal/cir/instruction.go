package cir

import (
	"strings"
)

// Op enumerates CIR instruction opcodes.
type Op int

const (
	// Arithmetic
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	// Comparison
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// Logical
	OpAnd
	OpOr
	OpNot

	// Bitwise
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot
	OpShl
	OpShr

	// Memory
	OpLoad
	OpStore
	OpAlloca

	// Conversion
	OpBitcast
	OpTrunc
	OpExtend
	OpIntToFloat
	OpFloatToInt

	// Control flow
	OpBranch
	OpCondBranch
	OpCall
	OpRet

	// Special
	OpPhi
	OpUndef
)

var opNames = [...]string{
	"add", "sub", "mul", "div", "mod",
	"eq", "ne", "lt", "le", "gt", "ge",
	"and", "or", "not",
	"band", "bor", "bxor", "bnot", "shl", "shr",
	"load", "store", "alloca",
	"bitcast", "trunc", "extend", "itof", "ftoi",
	"br", "condbr", "call", "ret",
	"phi", "undef",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Instruction is a single CIR operation. Every instruction carries a
// session-unique id; ResultType and ResultName are set only when the
// instruction yields a value.
type Instruction struct {
	ID         int
	Op         Op
	Operands   []Value
	ResultType Type // nil when the instruction yields nothing
	ResultName string
}

func (in *Instruction) String() string {
	var sb strings.Builder

	if in.ResultName != "" {
		sb.WriteString("%")
		sb.WriteString(in.ResultName)
		sb.WriteString(" = ")
	}

	sb.WriteString(in.Op.String())

	if in.ResultType != nil {
		sb.WriteString(" ")
		sb.WriteString(in.ResultType.String())
	}

	for i, operand := range in.Operands {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(operand.String())
	}

	return sb.String()
}
