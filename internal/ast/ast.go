// Package ast defines the SIRS abstract syntax tree: the JSON-encoded
// frontend representation of a Sever program after type checking.
// Lowering to CIR assumes a validated Program; no checking happens here.
package ast

// Program is a single compilation unit: a set of functions keyed by name.
type Program struct {
	Functions map[string]*Function
}

// Function is a typed function with an ordered parameter list and body.
type Function struct {
	Name       string
	Params     []Param
	ReturnType Type
	Body       []Statement
}

// Param is a single typed function parameter.
type Param struct {
	Name string
	Type Type
}
