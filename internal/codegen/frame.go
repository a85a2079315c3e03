package codegen

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/nexus/internal/ir"
	"github.com/you-not-fish/nexus/internal/rtabi"
)

// frame assigns an rbp-relative stack slot to every parameter and named
// value of a function. Alloca instructions get a second slot for the
// memory they reserve.
type frame struct {
	slots map[string]int // value name -> offset below rbp
	size  int            // total frame size, a multiple of rtabi.StackAlign
}

func newFrame(f *ir.Function) *frame {
	fr := &frame{slots: make(map[string]int)}
	next := func() int {
		fr.size += rtabi.WordSize
		return fr.size
	}
	for _, p := range f.Params {
		fr.slots[p.Name] = next()
	}
	for _, b := range f.Blocks {
		for _, instr := range b.Instrs {
			name := instr.Name()
			if name == "" {
				continue
			}
			if _, ok := instr.(*ir.Alloca); ok {
				fr.slots[allocaMem(name)] = next()
			}
			fr.slots[name] = next()
		}
	}
	if rem := fr.size % rtabi.StackAlign; rem != 0 {
		fr.size += rtabi.StackAlign - rem
	}
	return fr
}

// allocaMem is the frame key of the memory reserved by an alloca.
func allocaMem(name string) string {
	return name + ".mem"
}

// operand returns the memory operand holding value name. Names without a
// slot (values from unreachable code) fall back to a symbolic operand.
func (fr *frame) operand(name string) string {
	if off, ok := fr.slots[name]; ok {
		return fmt.Sprintf("qword [rbp-%d]", off)
	}
	return symbol(name)
}

// address returns the effective address of the slot of name, for lea.
func (fr *frame) address(name string) string {
	if off, ok := fr.slots[name]; ok {
		return fmt.Sprintf("[rbp-%d]", off)
	}
	return "[" + symbol(name) + "]"
}

// symbol turns an IR value name into an assembler-friendly identifier.
func symbol(name string) string {
	return strings.TrimPrefix(name, "%")
}

func stringLabel(i int) string {
	return fmt.Sprintf("str%d", i)
}

// nasmEscape prepares a string constant for a NASM backquoted literal.
// The constant already uses C escape sequences, so only backquotes need
// escaping.
func nasmEscape(s string) string {
	return strings.ReplaceAll(s, "`", "\\`")
}

// sizeKeyword returns the NASM operand size keyword for t.
func sizeKeyword(t ir.Type) string {
	switch t {
	case ir.Bool, ir.Int8:
		return "byte"
	case ir.Int16:
		return "word"
	case ir.Int32, ir.Float:
		return "dword"
	case ir.Int64, ir.Double, ir.Pointer:
		return "qword"
	}
	return "qword"
}
