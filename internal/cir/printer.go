package cir

import (
	"fmt"
	"sort"
	"strings"
)

// Printer renders a CIR module in a stable, human-readable text form.
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a printer with no indentation.
func NewPrinter() *Printer {
	return &Printer{}
}

// Print returns the text rendering of a module. Functions are printed in
// name order so output is deterministic.
func Print(module *Module) string {
	p := NewPrinter()
	p.printModule(module)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printModule(module *Module) {
	p.writeLine("MODULE %s (CIR)", module.Name)
	p.writeLine("")

	names := make([]string, 0, len(module.Functions))
	for name := range module.Functions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p.printFunction(module.Functions[name])
		p.writeLine("")
	}
}

func (p *Printer) printFunction(fn *Function) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", param.Name, param.Type)
	}

	header := fmt.Sprintf("FUNCTION %s(%s) -> %s", fn.Name, strings.Join(params, ", "), fn.ReturnType)
	if fn.External {
		header = "EXTERNAL " + header
	}
	p.writeLine("%s:", header)

	p.indent++
	for _, block := range fn.Blocks {
		p.printBlock(block)
	}
	p.indent--
}

func (p *Printer) printBlock(block *BasicBlock) {
	p.writeLine("BLOCK %s:%s", block.Label, edgeComment(block))
	p.indent++
	for _, inst := range block.Instructions {
		p.writeLine("%s", inst)
	}
	p.indent--
}

func edgeComment(block *BasicBlock) string {
	var parts []string
	if len(block.Predecessors) > 0 {
		parts = append(parts, "preds: "+joinLabels(block.Predecessors))
	}
	if len(block.Successors) > 0 {
		parts = append(parts, "succs: "+joinLabels(block.Successors))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  ; " + strings.Join(parts, " ")
}

func joinLabels(set map[string]bool) string {
	labels := make([]string, 0, len(set))
	for label := range set {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return strings.Join(labels, ", ")
}
