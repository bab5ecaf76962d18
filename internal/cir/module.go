package cir

// Param is one typed function parameter.
type Param struct {
	Name string
	Type Type
}

// Function owns its basic blocks in emission order.
type Function struct {
	Name       string
	Params     []Param
	ReturnType Type
	Blocks     []*BasicBlock
	External   bool
}

// Module owns every lowered function, keyed by name. The Globals and
// Types maps are populated by later passes, not by lowering.
type Module struct {
	Name      string
	Functions map[string]*Function
	Globals   map[string]Value
	Types     map[string]Type
}

// NewModule creates an empty module with the given name.
func NewModule(name string) *Module {
	return &Module{
		Name:      name,
		Functions: make(map[string]*Function),
		Globals:   make(map[string]Value),
		Types:     make(map[string]Type),
	}
}
