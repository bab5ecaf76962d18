package cir

// BasicBlock is a labeled straight-line instruction sequence. The
// predecessor and successor sets hold the labels of CFG neighbors;
// lowering populates them for every block it synthesizes.
type BasicBlock struct {
	Label        string
	Instructions []*Instruction
	Predecessors map[string]bool
	Successors   map[string]bool
}

// NewBasicBlock creates an empty block with the given label.
func NewBasicBlock(label string) *BasicBlock {
	return &BasicBlock{
		Label:        label,
		Predecessors: make(map[string]bool),
		Successors:   make(map[string]bool),
	}
}

// Append adds an instruction to the end of the block.
func (b *BasicBlock) Append(inst *Instruction) {
	b.Instructions = append(b.Instructions, inst)
}

// link records a CFG edge between two blocks on both endpoints.
func link(from, to *BasicBlock) {
	from.Successors[to.Label] = true
	to.Predecessors[from.Label] = true
}
