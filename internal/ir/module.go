package ir

import (
	"fmt"
	"io"
	"strings"
)

// Module is a compilation unit: an ordered list of functions.
type Module struct {
	Name      string
	Functions []*Function
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddFunction appends f to the module.
func (m *Module) AddFunction(f *Function) {
	m.Functions = append(m.Functions, f)
}

// Function returns the function with the given name, or nil.
func (m *Module) Function(name string) *Function {
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// String renders the module:
//
//	module @main
//
//	define i32 @main() {
//	block0:
//	  %instr0 = const i32 0
//	  ret i32 %instr0
//
//	}
func (m *Module) String() string {
	var sb strings.Builder
	Fprint(&sb, m)
	return sb.String()
}

// Fprint writes the textual form of m to w.
func Fprint(w io.Writer, m *Module) error {
	if _, err := fmt.Fprintf(w, "module @%s\n\n", m.Name); err != nil {
		return err
	}
	for _, f := range m.Functions {
		if _, err := io.WriteString(w, f.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Param is a named function parameter.
type Param struct {
	Name string // including the "%" prefix
	Type Type
}

// Function is an ordered list of basic blocks. Blocks[0] is the entry block.
type Function struct {
	Name       string
	ReturnType Type
	Params     []Param
	Blocks     []*Block
}

// NewFunction creates a function with no blocks.
func NewFunction(name string, ret Type) *Function {
	return &Function{Name: name, ReturnType: ret}
}

// NewBlock creates a block with the given name and appends it to f.
func (f *Function) NewBlock(name string) *Block {
	b := &Block{Name: name}
	f.Blocks = append(f.Blocks, b)
	return b
}

// Entry returns the entry block, or nil if f has no blocks.
func (f *Function) Entry() *Block {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// Block returns the block with the given name, or nil.
func (f *Function) Block(name string) *Block {
	for _, b := range f.Blocks {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// NumInstrs returns the total number of instructions across all blocks.
func (f *Function) NumInstrs() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Instrs)
	}
	return n
}

// String renders the function as "define T @name(params) {" followed by
// its blocks and a closing brace.
func (f *Function) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "define %s @%s(", f.ReturnType, f.Name)
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s %s", p.Type, p.Name)
	}
	sb.WriteString(") {\n")
	for _, b := range f.Blocks {
		sb.WriteString(b.String())
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Block is a basic block: a straight-line instruction sequence that ends
// in exactly one terminator (Br, CondBr or Ret).
type Block struct {
	Name   string
	Instrs []Instruction
}

// Append adds instr to the end of b.
func (b *Block) Append(instr Instruction) {
	b.Instrs = append(b.Instrs, instr)
}

// Terminator returns the last instruction if it is a terminator, or nil.
func (b *Block) Terminator() Instruction {
	if len(b.Instrs) == 0 {
		return nil
	}
	last := b.Instrs[len(b.Instrs)-1]
	if !last.Opcode().IsTerminator() {
		return nil
	}
	return last
}

// IsTerminated reports whether b ends in a terminator.
func (b *Block) IsTerminated() bool {
	return b.Terminator() != nil
}

// Succs returns the names of the blocks b branches to.
func (b *Block) Succs() []string {
	switch t := b.Terminator().(type) {
	case *Br:
		return []string{t.Target}
	case *CondBr:
		return []string{t.True, t.False}
	}
	return nil
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString(b.Name + ":\n")
	for _, instr := range b.Instrs {
		sb.WriteString("  ")
		if name := instr.Name(); name != "" {
			sb.WriteString(name + " = ")
		}
		sb.WriteString(instr.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
